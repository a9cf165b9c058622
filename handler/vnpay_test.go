package handler

import (
	"movie_streaming/model"
	"net/url"
	"strings"
	"testing"
)

func testVNPay() *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    "TESTCODE",
			HashSecret: "testsecret",
			BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:  "http://localhost:8002/api/v1/vnpay/vnpay_return",
		},
	}
}

func TestBuildPaymentUrlSignsOwnParams(t *testing.T) {
	vnpay := testVNPay()

	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    50000,
		OrderInfo: "Thanh toan goi cuoc GD:42",
		TxnRef:    "42",
		IPAddr:    "127.0.0.1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.SplitN(paymentUrl, "?", 2)
	if len(parts) != 2 {
		t.Fatalf("malformed url: %s", paymentUrl)
	}
	query, err := url.ParseQuery(parts[1])
	if err != nil {
		t.Fatalf("cannot parse query: %v", err)
	}

	if got := query.Get("vnp_Amount"); got != "5000000" {
		t.Errorf("vnp_Amount = %s, want 5000000", got)
	}
	if got := query.Get("vnp_TxnRef"); got != "42" {
		t.Errorf("vnp_TxnRef = %s, want 42", got)
	}
	if query.Get("vnp_SecureHash") == "" {
		t.Fatal("missing vnp_SecureHash")
	}
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	vnpay := testVNPay()

	params := url.Values{}
	params.Add("vnp_Amount", "5000000")
	params.Add("vnp_TxnRef", "42")
	params.Add("vnp_TransactionNo", "14400996")
	params.Add("vnp_ResponseCode", "00")
	params.Add("vnp_TmnCode", "TESTCODE")
	params.Add("vnp_SecureHash", vnpay.generateHash(params.Encode()))

	result := vnpay.VerifyCallback(params)

	if !result.SignatureValid {
		t.Fatal("expected signature to be valid")
	}
	if !result.IsSuccess {
		t.Fatal("expected success for response code 00")
	}
	if result.Amount != 50000 {
		t.Errorf("amount = %d, want 50000", result.Amount)
	}
	if result.TxnRef != "42" {
		t.Errorf("txnRef = %s, want 42", result.TxnRef)
	}
	if result.TransactionId != "14400996" {
		t.Errorf("transactionId = %s, want 14400996", result.TransactionId)
	}
}

func TestVerifyCallbackFailureCode(t *testing.T) {
	vnpay := testVNPay()

	params := url.Values{}
	params.Add("vnp_Amount", "5000000")
	params.Add("vnp_TxnRef", "42")
	params.Add("vnp_ResponseCode", "24")
	params.Add("vnp_SecureHash", vnpay.generateHash(params.Encode()))

	result := vnpay.VerifyCallback(params)

	if !result.SignatureValid {
		t.Fatal("expected signature to be valid")
	}
	if result.IsSuccess {
		t.Fatal("expected failure for response code 24")
	}
}

func TestVerifyCallbackTamperedAmount(t *testing.T) {
	vnpay := testVNPay()

	params := url.Values{}
	params.Add("vnp_Amount", "5000000")
	params.Add("vnp_TxnRef", "42")
	params.Add("vnp_ResponseCode", "00")
	params.Add("vnp_SecureHash", vnpay.generateHash(params.Encode()))

	// Sửa số tiền sau khi đã ký
	params.Set("vnp_Amount", "100")

	result := vnpay.VerifyCallback(params)
	if result.SignatureValid {
		t.Fatal("expected tampered callback to be rejected")
	}
	if result.IsSuccess {
		t.Fatal("tampered callback must never be treated as success")
	}
}

func TestVerifyCallbackWrongSecret(t *testing.T) {
	signer := testVNPay()
	verifier := testVNPay()
	verifier.Config.HashSecret = "othersecret"

	params := url.Values{}
	params.Add("vnp_Amount", "5000000")
	params.Add("vnp_TxnRef", "42")
	params.Add("vnp_ResponseCode", "00")
	params.Add("vnp_SecureHash", signer.generateHash(params.Encode()))

	if verifier.VerifyCallback(params).SignatureValid {
		t.Fatal("expected signature check with wrong secret to fail")
	}
}
