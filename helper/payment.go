package helper

import (
	"log"
	"movie_streaming/database"
	"movie_streaming/model"
	"strings"
	"time"
)

// NormalizePriceId chuẩn hóa id gói cước (số hoặc chuỗi) về chữ thường
func NormalizePriceId(priceId string) string {
	return strings.ToLower(strings.TrimSpace(priceId))
}

// MapPriceId ánh xạ id gói cước dạng chuỗi sang PriceId số trên customer
func MapPriceId(priceId string) int {
	switch NormalizePriceId(priceId) {
	case "monthly", "1":
		return 1
	case "yearly", "2":
		return 2
	}
	return 0
}

// CalculateNewExpiryDate tính hạn gói cước mới tại thời điểm tạo giao dịch.
// Nếu hạn cũ còn hiệu lực thì cộng dồn từ hạn cũ, ngược lại tính từ đầu ngày
// hiện tại. Gói không nhận dạng được mặc định 30 ngày.
func CalculateNewExpiryDate(priceId string, currentExpiry *time.Time, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	base := today
	if currentExpiry != nil && currentExpiry.After(today) {
		base = *currentExpiry
	}

	switch NormalizePriceId(priceId) {
	case "monthly", "1":
		return base.AddDate(0, 1, 0)
	case "yearly", "2":
		return base.AddDate(1, 0, 0)
	}

	log.Printf("ERROR: Unknown priceId %q. Defaulting to 30 days.", priceId)
	return base.AddDate(0, 0, 30)
}

// RemainingDays số ngày còn lại của gói cước, dùng cho thông báo từ chối
func RemainingDays(expiry time.Time, now time.Time) int {
	return int(expiry.Sub(now).Hours()/24) + 1
}

// RevenueRange khoảng [start, end) cho thống kê doanh thu theo năm hoặc tháng
func RevenueRange(year int, month *int) (time.Time, time.Time) {
	if month != nil {
		start := time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(1, 0, 0)
}

// GrantSubscription ghi hạn mới đã tính sẵn lên customer sau khi giao dịch
// thành công, rồi đọc lại bản ghi để cấp token. Đây là đường ghi duy nhất
// của ExpiryDate.
func GrantSubscription(payment *model.Payment) (*model.Customer, error) {
	db := database.DB

	if err := db.Model(&model.Customer{}).
		Where("id = ?", payment.CustomerId).
		Updates(map[string]interface{}{
			"expiry_date": payment.ExpiryDate,
			"price_id":    MapPriceId(payment.PriceId),
		}).Error; err != nil {
		return nil, err
	}

	var customer model.Customer
	if err := db.First(&customer, payment.CustomerId).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
