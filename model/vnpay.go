package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
}

type PaymentRequest struct {
	Amount    int64  `json:"amount"`
	OrderInfo string `json:"orderInfo"`
	TxnRef    string `json:"txnRef"`
	IPAddr    string `json:"ipAddr"`
	BankCode  string `json:"bankCode"`
	Locale    string `json:"locale"`
}

type PaymentResponse struct {
	SignatureValid bool   `json:"-"`
	IsSuccess      bool   `json:"isSuccess"`
	TxnRef         string `json:"txnRef"`
	Amount         int64  `json:"amount"`
	TransactionId  string `json:"transactionId"`
	ResponseCode   string `json:"responseCode"`
	Message        string `json:"message"`
	AmountMismatch bool   `json:"-"`
}
