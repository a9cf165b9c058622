package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"movie_streaming/config"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/model"
	"movie_streaming/utils"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MoMo Service
type MoMo struct {
	Config model.MoMoConfig
}

func NewMoMo() *MoMo {
	return &MoMo{
		Config: model.MoMoConfig{
			PartnerCode: config.ConfigOrDefault("MOMO_PARTNER_CODE", "MOMO"),
			AccessKey:   config.Config("MOMO_ACCESS_KEY"),
			SecretKey:   config.Config("MOMO_SECRET_KEY"),
			CreateURL:   config.ConfigOrDefault("MOMO_CREATE_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create"),
			RedirectURL: config.Config("APP_URL") + "/api/v1/momo/momo_return",
			IPNUrl:      config.Config("APP_URL") + "/api/v1/momo/momo_return",
		},
	}
}

// BuildRawSignature raw signature theo đúng thứ tự field MoMo quy định
func (m *MoMo) BuildRawSignature(amount int64, extraData, orderId, orderInfo, requestId, requestType string) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		m.Config.AccessKey,
		amount,
		extraData,
		m.Config.IPNUrl,
		orderId,
		orderInfo,
		m.Config.PartnerCode,
		m.Config.RedirectURL,
		requestId,
		requestType,
	)
}

// Ký HMAC-SHA256
func (m *MoMo) Sign(raw string) string {
	h := hmac.New(sha256.New, []byte(m.Config.SecretKey))
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyCallback tính lại chữ ký trên tham số của chính callback
func (m *MoMo) VerifyCallback(cb model.MoMoCallback) bool {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.Config.AccessKey,
		cb.Amount,
		cb.ExtraData,
		cb.Message,
		cb.OrderId,
		cb.OrderInfo,
		cb.OrderType,
		cb.PartnerCode,
		cb.PayType,
		cb.RequestId,
		cb.ResponseTime,
		cb.ResultCode,
		cb.TransId,
	)
	expected := m.Sign(raw)
	return hmac.Equal([]byte(expected), []byte(cb.Signature))
}

// CreatePayUrl gọi MoMo create API, trả về payUrl cho client
func (m *MoMo) CreatePayUrl(paymentId uint, amount int64) (string, error) {
	// orderId và requestId phải duy nhất cho mỗi lần gọi MoMo,
	// kể cả khi retry cùng một giao dịch nội bộ
	uniqueSuffix := time.Now().UnixMilli()
	orderId := fmt.Sprintf("%d_%d", paymentId, uniqueSuffix)
	requestId := fmt.Sprintf("%d_req_%d", paymentId, uniqueSuffix)

	requestType := "payWithMethod"
	orderInfo := fmt.Sprintf("Thanh toan goi cuoc GD:%d", paymentId)
	extraData := ""

	signature := m.Sign(m.BuildRawSignature(amount, extraData, orderId, orderInfo, requestId, requestType))

	body := map[string]interface{}{
		"partnerCode": m.Config.PartnerCode,
		"accessKey":   m.Config.AccessKey,
		"requestId":   requestId,
		"amount":      amount,
		"orderId":     orderId,
		"orderInfo":   orderInfo,
		"redirectUrl": m.Config.RedirectURL,
		"ipnUrl":      m.Config.IPNUrl,
		"requestType": requestType,
		"extraData":   extraData,
		"signature":   signature,
		"lang":        "vi",
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(m.Config.CreateURL, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var momoResp model.MoMoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&momoResp); err != nil {
		return "", fmt.Errorf("decode momo response error: %w", err)
	}

	if momoResp.PayUrl == "" {
		return "", fmt.Errorf("lỗi từ MoMo API: %s", momoResp.Message)
	}
	return momoResp.PayUrl, nil
}

// CreateMoMoPayment tạo URL thanh toán MoMo cho một giao dịch pending
func CreateMoMoPayment(c *fiber.Ctx) error {
	type CreateInput struct {
		PaymentId uint  `json:"paymentId" validate:"required,gt=0"`
		Amount    int64 `json:"amount" validate:"required,gt=0"`
	}

	var input CreateInput
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

	momo := NewMoMo()
	payUrl, err := momo.CreatePayUrl(payment.ID, input.Amount)
	if err != nil {
		log.Printf("Lỗi khi tạo MoMo payment URL: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi server khi kết nối MoMo", err)
	}

	qrBytes, err := utils.GenerateQRCode(payUrl, 256)
	var qr string
	if err != nil {
		log.Printf("Lỗi tạo QR cho giao dịch %d: %v", payment.ID, err)
	} else {
		qr = base64.StdEncoding.EncodeToString(qrBytes)
	}

	log.Printf("MoMo URL tạo thành công cho Payment ID: %d", payment.ID)
	return c.JSON(fiber.Map{
		"url": payUrl,
		"qr":  qr,
	})
}

// ParseMoMoOrderId tách paymentId nội bộ từ orderId MoMo (dạng "<id>_<suffix>")
func ParseMoMoOrderId(orderId string) (uint, error) {
	if orderId == "" {
		return 0, errors.New("orderId rỗng")
	}
	idPart := strings.SplitN(orderId, "_", 2)[0]
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("orderId không hợp lệ: %q", orderId)
	}
	return uint(id), nil
}

// MoMoReturn xử lý kết quả MoMo POST về. MoMo gửi qua POST nên redirect cuối
// dùng trang HTML meta-refresh thay vì 302.
func MoMoReturn(c *fiber.Ctx) error {
	momo := NewMoMo()
	clientBaseUrl := config.Config("CLIENT_URL")

	var cb model.MoMoCallback
	if err := c.BodyParser(&cb); err != nil {
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", 0, "", "Dữ liệu callback không hợp lệ", "")
	}

	paymentIdStr := strings.SplitN(cb.OrderId, "_", 2)[0]

	if !momo.VerifyCallback(cb) {
		log.Printf("ERROR: Sai lệch chữ ký MoMo cho orderId %q", cb.OrderId)
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr, constants.PAYMENT_INVALID_SIGNATURE, "")
	}

	paymentId, err := ParseMoMoOrderId(cb.OrderId)
	if err != nil {
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr, constants.PAYMENT_NOT_FOUND, "")
	}

	var payment model.Payment
	if err := database.DB.First(&payment, paymentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr, constants.PAYMENT_NOT_FOUND, "")
		}
		log.Printf("Lỗi DB/Server khi xử lý MoMo return: %v", err)
		return htmlRedirectPaymentResult(c, clientBaseUrl, "error", cb.Amount, paymentIdStr, "Lỗi xử lý server nội bộ", "")
	}

	if payment.Amount != cb.Amount {
		log.Printf("ERROR: Sai lệch số tiền GD %d: nhận %d, trên bản ghi %d", payment.ID, cb.Amount, payment.Amount)
		markPaymentFailed(&payment, strconv.FormatInt(cb.TransId, 10), strconv.Itoa(cb.ResultCode))
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr, constants.PAYMENT_AMOUNT_MISMATCH, "")
	}

	if payment.Status != model.PaymentPending {
		if payment.Status == model.PaymentSuccess {
			token := reissueTokenFor(payment.CustomerId)
			return htmlRedirectPaymentResult(c, clientBaseUrl, "success", cb.Amount, paymentIdStr, "Giao dịch MoMo thành công", token)
		}
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr, "Giao dịch đã được xử lý trước đó", "")
	}

	if cb.ResultCode != 0 {
		markPaymentFailed(&payment, strconv.FormatInt(cb.TransId, 10), strconv.Itoa(cb.ResultCode))
		PublishPaymentStatus(payment.ID, string(model.PaymentFailed), "")
		return htmlRedirectPaymentResult(c, clientBaseUrl, "failed", cb.Amount, paymentIdStr,
			fmt.Sprintf("Giao dịch thất bại. Mã lỗi MoMo: %d", cb.ResultCode), "")
	}

	token, err := finalizeSuccess(&payment, strconv.FormatInt(cb.TransId, 10), strconv.Itoa(cb.ResultCode), map[string]interface{}{
		"momo_txn_ref": cb.OrderId,
	})
	if err != nil {
		log.Printf("Lỗi DB/Server khi xử lý MoMo return: %v", err)
		return htmlRedirectPaymentResult(c, clientBaseUrl, "error", cb.Amount, paymentIdStr, "Lỗi xử lý server nội bộ", "")
	}

	return htmlRedirectPaymentResult(c, clientBaseUrl, "success", cb.Amount, paymentIdStr, "Giao dịch MoMo thành công", token)
}

func htmlRedirectPaymentResult(c *fiber.Ctx, clientBaseUrl, status string, amount int64, paymentId, message, token string) error {
	redirectUrl := fmt.Sprintf("%s/payment?status=%s&amount=%d&paymentId=%s&message=%s&token=%s",
		clientBaseUrl, status, amount, paymentId, url.QueryEscape(message), token)

	html := fmt.Sprintf(`<html><head><title>Chuyển hướng...</title>
<meta http-equiv="refresh" content="0; url=%s" />
</head><body><p>Đang chuyển hướng đến trang kết quả thanh toán của bạn...</p></body></html>`, redirectUrl)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}
