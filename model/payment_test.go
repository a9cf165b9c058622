package model

import "testing"

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentSuccess, PaymentFailed} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if PaymentStatus("cancelled").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestPaymentStatusCanTransition(t *testing.T) {
	cases := []struct {
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{PaymentPending, PaymentSuccess, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentPending, false},
		{PaymentSuccess, PaymentFailed, false},
		{PaymentSuccess, PaymentPending, false},
		{PaymentFailed, PaymentSuccess, false},
		{PaymentFailed, PaymentPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("CanTransition(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
