package model

import "time"

// PaymentStatus là trạng thái giao dịch: pending → success | failed.
// Hai trạng thái cuối là terminal, không cho phép quay lại.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

// CanTransition kiểm tra chuyển trạng thái hợp lệ. Bên cạnh guard này,
// mọi UPDATE đều kèm điều kiện status = 'pending' để chống callback song song.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return s == PaymentPending && (to == PaymentSuccess || to == PaymentFailed)
}

type Payment struct {
	DTO
	CustomerId uint   `gorm:"not null;index" json:"customerId"`
	PriceId    string `gorm:"not null" json:"priceId"`
	Amount     int64  `gorm:"not null" json:"amount"`

	PaymentMethod string        `gorm:"not null" json:"paymentMethod"` // vnpay | momo
	Status        PaymentStatus `gorm:"type:varchar(10);default:pending;index" json:"status"`

	VnpTxnRef     *string `gorm:"index" json:"vnpTxnRef"`
	MomoTxnRef    *string `gorm:"index" json:"momoTxnRef"`
	TransactionId *string `json:"transactionId"`
	ResponseCode  *string `json:"responseCode"`

	PaymentDate time.Time  `gorm:"not null" json:"paymentDate"`
	ExpiryDate  time.Time  `gorm:"not null" json:"expiryDate"` // hạn mới tính sẵn lúc tạo giao dịch
	PaidAt      *time.Time `json:"paidAt"`

	Customer Customer `gorm:"foreignKey:CustomerId" json:"-"`
}

type CreatePaymentInput struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	PriceId       string `json:"priceId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=vnpay momo"`
}

type UpdatePaymentStatusInput struct {
	PaymentId     uint   `json:"paymentId" validate:"required,gt=0"`
	Status        string `json:"status" validate:"required,oneof=success failed"`
	TransactionId string `json:"transactionId"`
}

// RevenueStat một dòng thống kê theo tháng (xem theo năm) hoặc theo ngày (xem theo tháng)
type RevenueStat struct {
	Month *int  `json:"month,omitempty"`
	Day   *int  `json:"day,omitempty"`
	Total int64 `json:"total"`
}
