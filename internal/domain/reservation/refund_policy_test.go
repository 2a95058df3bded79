package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func refundDay(d int) time.Time {
	return time.Date(2026, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestRefundTiers(t *testing.T) {
	now := refundDay(10)
	advance := 2000.0

	cases := []struct {
		name    string
		checkIn time.Time
		want    float64
	}{
		{"check-in today", refundDay(10), 0},
		{"check-in passed", refundDay(8), 0},
		{"3 days out belongs to the charge tier", refundDay(13), 0},
		{"4 days out earns 50%", refundDay(14), 1000},
		{"6 days out still 50%", refundDay(16), 1000},
		{"7 days out earns 85%", refundDay(17), 1700},
		{"10 days out earns 85%", refundDay(20), 1700},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateRefund(tc.checkIn, advance, nil, now)
			assert.Equal(t, tc.want, got.Amount)
			assert.NotEmpty(t, got.Policy)
		})
	}
}

func TestRefundRounding(t *testing.T) {
	now := refundDay(1)
	got := CalculateRefund(refundDay(20), 999.99, nil, now)
	// 85% of 999.99 = 849.9915 -> 849.99.
	assert.Equal(t, 849.99, got.Amount)
}

func TestRefundCustomOverride(t *testing.T) {
	now := refundDay(10)
	custom := 1234.56
	got := CalculateRefund(refundDay(10), 2000, &custom, now)
	assert.Equal(t, custom, got.Amount)
	assert.Equal(t, "Custom", got.Policy)
}

func TestRefundIgnoresTimeOfDay(t *testing.T) {
	// Cancellation late in the evening still counts whole calendar days.
	now := time.Date(2026, time.April, 10, 23, 30, 0, 0, time.UTC)
	got := CalculateRefund(refundDay(17), 2000, nil, now)
	assert.Equal(t, 1700.0, got.Amount)
}
