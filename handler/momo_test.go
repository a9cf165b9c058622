package handler

import (
	"movie_streaming/model"
	"testing"
)

func testMoMo() *MoMo {
	return &MoMo{
		Config: model.MoMoConfig{
			PartnerCode: "MOMO",
			AccessKey:   "testaccess",
			SecretKey:   "testsecret",
			RedirectURL: "http://localhost:8002/api/v1/momo/momo_return",
			IPNUrl:      "http://localhost:8002/api/v1/momo/ipn",
		},
	}
}

func TestBuildRawSignatureFieldOrder(t *testing.T) {
	momo := testMoMo()

	raw := momo.BuildRawSignature(50000, "", "7_1700000000000", "Thanh toan goi cuoc GD:7", "req_7", "payWithMethod")

	want := "accessKey=testaccess&amount=50000&extraData=&ipnUrl=http://localhost:8002/api/v1/momo/ipn" +
		"&orderId=7_1700000000000&orderInfo=Thanh toan goi cuoc GD:7&partnerCode=MOMO" +
		"&redirectUrl=http://localhost:8002/api/v1/momo/momo_return&requestId=req_7&requestType=payWithMethod"
	if raw != want {
		t.Fatalf("raw signature mismatch:\n got %s\nwant %s", raw, want)
	}
}

func TestVerifyCallbackValidSignature(t *testing.T) {
	momo := testMoMo()

	cb := model.MoMoCallback{
		PartnerCode:  "MOMO",
		OrderId:      "7_1700000000000",
		RequestId:    "req_7",
		Amount:       50000,
		OrderInfo:    "Thanh toan goi cuoc GD:7",
		OrderType:    "momo_wallet",
		TransId:      4088878653,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1700000123456,
	}
	raw := "accessKey=testaccess&amount=50000&extraData=&message=Successful.&orderId=7_1700000000000" +
		"&orderInfo=Thanh toan goi cuoc GD:7&orderType=momo_wallet&partnerCode=MOMO&payType=qr" +
		"&requestId=req_7&responseTime=1700000123456&resultCode=0&transId=4088878653"
	cb.Signature = momo.Sign(raw)

	if !momo.VerifyCallback(cb) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifyCallbackTamperedResult(t *testing.T) {
	momo := testMoMo()

	cb := model.MoMoCallback{
		PartnerCode:  "MOMO",
		OrderId:      "7_1700000000000",
		RequestId:    "req_7",
		Amount:       50000,
		OrderInfo:    "Thanh toan goi cuoc GD:7",
		OrderType:    "momo_wallet",
		TransId:      4088878653,
		ResultCode:   1006,
		Message:      "Transaction denied by user.",
		PayType:      "qr",
		ResponseTime: 1700000123456,
	}
	raw := "accessKey=testaccess&amount=50000&extraData=&message=Transaction denied by user.&orderId=7_1700000000000" +
		"&orderInfo=Thanh toan goi cuoc GD:7&orderType=momo_wallet&partnerCode=MOMO&payType=qr" +
		"&requestId=req_7&responseTime=1700000123456&resultCode=1006&transId=4088878653"
	cb.Signature = momo.Sign(raw)

	// Đổi resultCode thành công sau khi đã ký
	cb.ResultCode = 0

	if momo.VerifyCallback(cb) {
		t.Fatal("expected tampered callback to be rejected")
	}
}

func TestParseMoMoOrderId(t *testing.T) {
	id, err := ParseMoMoOrderId("123_1700000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 123 {
		t.Fatalf("expected 123, got %d", id)
	}

	if _, err := ParseMoMoOrderId("abc_123"); err == nil {
		t.Fatal("expected error for non numeric paymentId")
	}
	if _, err := ParseMoMoOrderId(""); err == nil {
		t.Fatal("expected error for empty orderId")
	}
}
