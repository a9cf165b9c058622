package model

type MoMoConfig struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	CreateURL   string
	RedirectURL string
	IPNUrl      string
}

// MoMoCreateResponse phần cần dùng từ response của MoMo create API
type MoMoCreateResponse struct {
	PayUrl     string `json:"payUrl"`
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
}

// MoMoCallback body MoMo POST về redirectUrl/ipnUrl
type MoMoCallback struct {
	PartnerCode  string `json:"partnerCode"`
	OrderId      string `json:"orderId"` // dạng <paymentId>_<suffix>
	RequestId    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransId      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}
