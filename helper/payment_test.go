package helper

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateNewExpiryDateNoSubscription(t *testing.T) {
	now := time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

	got := CalculateNewExpiryDate("monthly", nil, now)
	want := date(2024, time.February, 10)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCalculateNewExpiryDateExtendsActiveSubscription(t *testing.T) {
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	currentExpiry := date(2024, time.March, 1)

	got := CalculateNewExpiryDate("yearly", &currentExpiry, now)
	want := date(2025, time.March, 1)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCalculateNewExpiryDateExpiredSubscription(t *testing.T) {
	now := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)
	currentExpiry := date(2024, time.January, 1)

	// Hạn cũ đã qua thì tính từ đầu ngày hiện tại, không cộng dồn
	got := CalculateNewExpiryDate("1", &currentExpiry, now)
	want := date(2024, time.July, 15)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCalculateNewExpiryDateUnknownTier(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	got := CalculateNewExpiryDate("lifetime", nil, now)
	want := date(2024, time.January, 10).AddDate(0, 0, 30)
	if !got.Equal(want) {
		t.Fatalf("expected 30 day fallback %v, got %v", want, got)
	}
}

func TestMapPriceId(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"monthly", 1},
		{"MONTHLY", 1},
		{"1", 1},
		{"yearly", 2},
		{" Yearly ", 2},
		{"2", 2},
		{"weekly", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := MapPriceId(tc.input); got != tc.want {
			t.Errorf("MapPriceId(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestRemainingDays(t *testing.T) {
	now := date(2024, time.January, 10)

	expiry := time.Date(2024, time.January, 12, 12, 0, 0, 0, time.UTC)
	if got := RemainingDays(expiry, now); got != 3 {
		t.Fatalf("expected 3 remaining days, got %d", got)
	}
}

func TestRevenueRangeByYear(t *testing.T) {
	start, end := RevenueRange(2024, nil)

	if start.Year() != 2024 || start.Month() != time.January || start.Day() != 1 {
		t.Fatalf("unexpected start: %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.January || end.Day() != 1 {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestRevenueRangeByMonth(t *testing.T) {
	month := 2
	start, end := RevenueRange(2024, &month)

	if start.Month() != time.February || start.Day() != 1 {
		t.Fatalf("unexpected start: %v", start)
	}
	// Khoảng nửa mở, end là ngày đầu tháng sau
	if end.Month() != time.March || end.Day() != 1 {
		t.Fatalf("unexpected end: %v", end)
	}
}
