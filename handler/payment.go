package handler

import (
	"fmt"
	"log"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/model"
	"movie_streaming/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment tạo (hoặc tái sử dụng) bản ghi thanh toán pending cho khách
// hàng đang đăng nhập. Mỗi khách hàng chỉ có tối đa một giao dịch pending.
func CreatePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("CreatePayment").(model.CreatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Người dùng không tồn tại trong hệ thống", nil)
	}

	db := database.DB
	now := time.Now()

	// Gói cước còn hiệu lực thì từ chối, kèm số ngày còn lại
	if customer.ExpiryDate != nil && !customer.ExpiryDate.Before(now) {
		remainingDays := helper.RemainingDays(*customer.ExpiryDate, now)
		detailsMessage := fmt.Sprintf("Thời hạn còn lại: %d ngày (đến %s).",
			remainingDays, customer.ExpiryDate.Format("02/01/2006"))

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":                "Gói cước của bạn vẫn còn hiệu lực.",
			"details":              detailsMessage,
			"isSubscriptionActive": true,
		})
	}

	newExpiryDate := helper.CalculateNewExpiryDate(input.PriceId, customer.ExpiryDate, now)

	var payment model.Payment
	err := db.Where("customer_id = ? AND status = ?", customer.ID, model.PaymentPending).First(&payment).Error

	switch {
	case err == nil:
		// Tái sử dụng giao dịch pending cũ thay vì tạo bản ghi trùng
		log.Printf("Tái sử dụng giao dịch pending cũ ID: %d", payment.ID)

		fields := map[string]interface{}{
			"amount":      input.Amount,
			"price_id":    input.PriceId,
			"expiry_date": newExpiryDate,
		}
		if payment.PaymentMethod != input.PaymentMethod {
			// Đổi phương thức thanh toán: xóa mã giao dịch gateway cũ để
			// không lẫn sang lần thanh toán mới
			fields["payment_method"] = input.PaymentMethod
			fields["vnp_txn_ref"] = nil
			fields["momo_txn_ref"] = nil
		}

		if err := db.Model(&payment).Updates(fields).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

	case err == gorm.ErrRecordNotFound:
		payment = model.Payment{
			CustomerId:    customer.ID,
			PriceId:       input.PriceId,
			Amount:        input.Amount,
			PaymentMethod: input.PaymentMethod,
			Status:        model.PaymentPending,
			PaymentDate:   now,
			ExpiryDate:    newExpiryDate,
		}
		if err := db.Create(&payment).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}

	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Tạo bản ghi thanh toán thành công.",
		"paymentId": payment.ID,
		"amount":    input.Amount,
	})
}

// UpdatePaymentStatus API cập nhật trạng thái thủ công, dùng chung guard
// status = 'pending' với callback gateway
func UpdatePaymentStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("UpdatePaymentStatus").(model.UpdatePaymentStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	newStatus := model.PaymentStatus(input.Status)
	if !newStatus.Valid() || !model.PaymentPending.CanTransition(newStatus) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái không hợp lệ", nil)
	}

	fields := map[string]interface{}{"status": newStatus}
	if input.TransactionId != "" {
		fields["transaction_id"] = input.TransactionId
	}
	if newStatus == model.PaymentSuccess {
		fields["paid_at"] = time.Now()
	}

	result := database.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", input.PaymentId, model.PaymentPending).
		Updates(fields)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi máy chủ nội bộ khi cập nhật trạng thái thanh toán", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, nil)
	}

	log.Printf("Trạng thái giao dịch ID %d đã cập nhật thành: %s", input.PaymentId, newStatus)
	PublishPaymentStatus(input.PaymentId, string(newStatus), "")

	return c.JSON(fiber.Map{
		"message": "Cập nhật trạng thái thanh toán thành công.",
	})
}

// GetRevenue thống kê doanh thu các giao dịch thành công.
// Có month: group theo ngày. Không có month: group theo tháng.
func GetRevenue(c *fiber.Ctx) error {
	now := time.Now()

	year := now.Year()
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		year = y
	}

	var month *int
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = &m
	}

	start, end := helper.RevenueRange(year, month)
	db := database.DB

	type Summary struct {
		TotalRevenue int64 `json:"totalRevenue"`
		OrderCount   int64 `json:"orderCount"`
	}
	var summary Summary
	if err := db.Model(&model.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total_revenue, COUNT(*) AS order_count").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", model.PaymentSuccess, start, end).
		Scan(&summary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi lấy doanh thu", err)
	}

	stats := []model.RevenueStat{}

	if month != nil {
		rows := []struct {
			Day   int
			Total int64
		}{}
		if err := db.Raw(`
            SELECT EXTRACT(DAY FROM paid_at)::int AS day, SUM(amount) AS total
            FROM payments
            WHERE status = ? AND paid_at >= ? AND paid_at < ?
            GROUP BY 1
            ORDER BY 1
        `, model.PaymentSuccess, start, end).Scan(&rows).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi lấy doanh thu", err)
		}
		for _, r := range rows {
			stats = append(stats, model.RevenueStat{Day: utils.Ptr(r.Day), Total: r.Total})
		}
	} else {
		rows := []struct {
			Month int
			Total int64
		}{}
		if err := db.Raw(`
            SELECT EXTRACT(MONTH FROM paid_at)::int AS month, SUM(amount) AS total
            FROM payments
            WHERE status = ? AND paid_at >= ? AND paid_at < ?
            GROUP BY 1
            ORDER BY 1
        `, model.PaymentSuccess, start, end).Scan(&rows).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi lấy doanh thu", err)
		}
		for _, r := range rows {
			stats = append(stats, model.RevenueStat{Month: utils.Ptr(r.Month), Total: r.Total})
		}
	}

	return c.JSON(fiber.Map{
		"year":         year,
		"month":        month,
		"totalRevenue": summary.TotalRevenue,
		"orderCount":   summary.OrderCount,
		"stats":        stats,
	})
}
