package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"movie_streaming/config"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/model"
	"movie_streaming/utils"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VNPay Service
type VNPay struct {
	Config model.VNPayConfig
}

// NewVNPay nạp cấu hình một lần, adapter giữ config bất biến
func NewVNPay() *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    config.Config("VNP_TMNCODE"),
			HashSecret: config.Config("VNP_HASHSECRET"),
			BaseURL:    config.Config("VNP_URL"),
			ReturnURL:  config.Config("APP_URL") + "/api/v1/vnpay/vnpay_return",
		},
	}
}

// BuildPaymentUrl tạo URL thanh toán đã ký HMAC-SHA512.
// url.Values.Encode() tự sắp xếp key theo thứ tự từ điển và URL-encode giá
// trị, đúng thứ tự VNPay dùng để đối chiếu chữ ký.
func (v *VNPay) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}

	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.Config.TmnCode)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10)) // VND * 100
	params.Add("vnp_CreateDate", time.Now().Format("20060102150405"))
	params.Add("vnp_CurrCode", "VND")
	params.Add("vnp_IpAddr", req.IPAddr)
	params.Add("vnp_Locale", locale)
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", "other")
	params.Add("vnp_ReturnUrl", v.Config.ReturnURL)
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_ExpireDate", time.Now().Add(15*time.Minute).Format("20060102150405"))
	if req.BankCode != "" {
		params.Add("vnp_BankCode", req.BankCode)
	}

	query := params.Encode()
	hash := v.generateHash(query)
	fullQuery := query + "&vnp_SecureHash=" + hash

	return v.Config.BaseURL + "?" + fullQuery, nil
}

// VerifyCallback tính lại chữ ký trên chính tham số của callback.
// IsSuccess chỉ nói lên chữ ký đúng và mã kết quả "00"; đối chiếu số tiền với
// bản ghi là việc của handler.
func (v *VNPay) VerifyCallback(query url.Values) model.PaymentResponse {
	secureHash := query.Get("vnp_SecureHash")
	query.Del("vnp_SecureHash")
	query.Del("vnp_SecureHashType")

	expectedHash := v.generateHash(query.Encode())

	if !hmac.Equal([]byte(secureHash), []byte(expectedHash)) {
		return model.PaymentResponse{SignatureValid: false, Message: "Invalid hash"}
	}

	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	resp := model.PaymentResponse{
		SignatureValid: true,
		TxnRef:         query.Get("vnp_TxnRef"),
		Amount:         amount / 100,
		TransactionId:  query.Get("vnp_TransactionNo"),
		ResponseCode:   query.Get("vnp_ResponseCode"),
	}

	if resp.ResponseCode == "00" {
		resp.IsSuccess = true
		resp.Message = "Giao dịch thành công"
	} else {
		resp.Message = fmt.Sprintf("Giao dịch thất bại. Mã lỗi: %s", resp.ResponseCode)
	}
	return resp
}

func (v *VNPay) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// CreateVNPayUrl tạo URL VNPay cho một giao dịch pending đã tạo trước đó
func CreateVNPayUrl(c *fiber.Ctx) error {
	type CreateUrlInput struct {
		PaymentId uint   `json:"paymentId" validate:"required,gt=0"`
		Amount    int64  `json:"amount" validate:"required,gt=0"`
		BankCode  string `json:"bankCode"`
		Language  string `json:"language"`
	}

	var input CreateUrlInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu tham số bắt buộc: mã giao dịch (paymentId) hoặc số tiền (amount)", err)
	}
	if input.PaymentId == 0 || input.Amount <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu tham số bắt buộc: mã giao dịch (paymentId) hoặc số tiền (amount)", errors.New("paymentId and amount are required"))
	}

	var payment model.Payment
	if err := database.DB.Where("id = ? AND status = ?", input.PaymentId, model.PaymentPending).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	vnpay := NewVNPay()
	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    input.Amount,
		OrderInfo: fmt.Sprintf("Thanh toan goi cuoc GD:%d", payment.ID),
		TxnRef:    strconv.FormatUint(uint64(payment.ID), 10),
		IPAddr:    c.IP(),
		BankCode:  input.BankCode,
		Locale:    input.Language,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo payment URL", err)
	}

	// QR để quét bằng app ngân hàng
	qrBytes, err := utils.GenerateQRCode(paymentUrl, 256)
	var qr string
	if err != nil {
		log.Printf("Lỗi tạo QR cho giao dịch %d: %v", payment.ID, err)
	} else {
		qr = base64.StdEncoding.EncodeToString(qrBytes)
	}

	log.Printf("Generated VNPay URL for Payment ID: %d", payment.ID)
	return c.JSON(fiber.Map{
		"url": paymentUrl,
		"qr":  qr,
	})
}

// VNPayReturn xử lý callback trình duyệt từ VNPay và đối soát giao dịch.
// Mọi nhánh đều kết thúc bằng redirect về client kèm status/message.
func VNPayReturn(c *fiber.Ctx) error {
	vnpay := NewVNPay()
	clientBaseUrl := config.Config("CLIENT_URL")

	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return redirectPaymentResult(c, clientBaseUrl, "error", 0, "", "", "Dữ liệu callback không hợp lệ", "")
	}

	result := vnpay.VerifyCallback(query)
	paymentId := result.TxnRef

	if !result.SignatureValid {
		// Chữ ký sai → không tin bất kỳ tham số nào, không đụng vào DB
		log.Println("ERROR: Sai lệch Secure Hash. Giao dịch bị giả mạo hoặc dữ liệu bị thay đổi.")
		return redirectPaymentResult(c, clientBaseUrl, "failed", 0, paymentId, "", constants.PAYMENT_INVALID_SIGNATURE, "")
	}

	var payment model.Payment
	if err := database.DB.Where("id = ?", result.TxnRef).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return redirectPaymentResult(c, clientBaseUrl, "failed", result.Amount, paymentId, result.ResponseCode, constants.PAYMENT_NOT_FOUND, "")
		}
		log.Printf("Lỗi truy vấn giao dịch %s: %v", result.TxnRef, err)
		return redirectPaymentResult(c, clientBaseUrl, "error", result.Amount, paymentId, result.ResponseCode, "Lỗi máy chủ khi xử lý dữ liệu giao dịch", "")
	}

	// Sai lệch số tiền là nhánh lỗi riêng, không gộp vào thất bại chung
	if payment.Amount != result.Amount {
		log.Printf("ERROR: Sai lệch số tiền GD %d: nhận %d, trên bản ghi %d", payment.ID, result.Amount, payment.Amount)
		markPaymentFailed(&payment, result.TransactionId, result.ResponseCode)
		return redirectPaymentResult(c, clientBaseUrl, "failed", result.Amount, paymentId, result.ResponseCode, constants.PAYMENT_AMOUNT_MISMATCH, "")
	}

	if payment.Status != model.PaymentPending {
		// Gateway gửi lại callback cho giao dịch đã chốt: không đổi trạng
		// thái, chỉ cấp lại token nếu đã thành công
		if payment.Status == model.PaymentSuccess {
			token := reissueTokenFor(payment.CustomerId)
			return redirectPaymentResult(c, clientBaseUrl, "success", result.Amount, paymentId, result.ResponseCode, "Giao dịch thành công & Gói cước đã được kích hoạt.", token)
		}
		return redirectPaymentResult(c, clientBaseUrl, "failed", result.Amount, paymentId, result.ResponseCode, "Giao dịch đã được xử lý trước đó", "")
	}

	if !result.IsSuccess {
		markPaymentFailed(&payment, result.TransactionId, result.ResponseCode)
		PublishPaymentStatus(payment.ID, string(model.PaymentFailed), "")
		return redirectPaymentResult(c, clientBaseUrl, "failed", result.Amount, paymentId, result.ResponseCode, result.Message, "")
	}

	token, err := finalizeSuccess(&payment, result.TransactionId, result.ResponseCode, map[string]interface{}{
		"vnp_txn_ref": result.TxnRef,
	})
	if err != nil {
		log.Printf("Lỗi xử lý Database trong VNPay Return: %v", err)
		return redirectPaymentResult(c, clientBaseUrl, "error", result.Amount, paymentId, result.ResponseCode, "Lỗi máy chủ khi xử lý dữ liệu giao dịch", "")
	}

	return redirectPaymentResult(c, clientBaseUrl, "success", result.Amount, paymentId, result.ResponseCode, "Giao dịch thành công & Gói cước đã được kích hoạt.", token)
}

// finalizeSuccess chốt giao dịch thành công đúng một lần.
// UPDATE có điều kiện status = 'pending' là chốt chặn duy nhất khi hai
// callback cho cùng giao dịch chạy song song: bên thua có RowsAffected = 0
// và chỉ cấp lại token.
func finalizeSuccess(payment *model.Payment, transactionId, responseCode string, extraFields map[string]interface{}) (string, error) {
	if !payment.Status.CanTransition(model.PaymentSuccess) {
		return reissueTokenFor(payment.CustomerId), nil
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":         model.PaymentSuccess,
		"transaction_id": transactionId,
		"response_code":  responseCode,
		"paid_at":        now,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	result := database.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", payment.ID, model.PaymentPending).
		Updates(fields)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		// Callback song song đã chốt trước
		return reissueTokenFor(payment.CustomerId), nil
	}

	customer, err := helper.GrantSubscription(payment)
	if err != nil {
		return "", err
	}

	token, err := helper.TokenForCustomer(customer)
	if err != nil {
		log.Printf("ERROR: Failed to generate new JWT after successful payment: %v", err)
		token = ""
	}

	PublishPaymentStatus(payment.ID, string(model.PaymentSuccess), token)
	return token, nil
}

// markPaymentFailed chuyển giao dịch sang failed, vẫn giữ guard pending
func markPaymentFailed(payment *model.Payment, transactionId, responseCode string) {
	if !payment.Status.CanTransition(model.PaymentFailed) {
		return
	}
	result := database.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", payment.ID, model.PaymentPending).
		Updates(map[string]interface{}{
			"status":         model.PaymentFailed,
			"transaction_id": transactionId,
			"response_code":  responseCode,
		})
	if result.Error != nil {
		log.Printf("Lỗi cập nhật giao dịch %d thành failed: %v", payment.ID, result.Error)
	}
}

func reissueTokenFor(customerId uint) string {
	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		log.Printf("Không tìm thấy khách hàng %d khi cấp lại token: %v", customerId, err)
		return ""
	}
	token, err := helper.TokenForCustomer(&customer)
	if err != nil {
		log.Printf("Lỗi cấp lại token cho khách hàng %d: %v", customerId, err)
		return ""
	}
	return token
}

// redirectPaymentResult đưa khách về trang kết quả của client.
// Token đi qua query param vì gateway trả kết quả bằng redirect trình duyệt.
func redirectPaymentResult(c *fiber.Ctx, clientBaseUrl, status string, amount int64, paymentId, responseCode, message, token string) error {
	redirectUrl := fmt.Sprintf("%s/payment?status=%s&amount=%d&paymentId=%s&vnp_ResponseCode=%s&message=%s&token=%s",
		clientBaseUrl, status, amount, paymentId, responseCode, url.QueryEscape(message), token)
	return c.Redirect(redirectUrl)
}
