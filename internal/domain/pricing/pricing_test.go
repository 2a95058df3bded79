package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resortdesk/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC)
}

func TestVAT(t *testing.T) {
	assert.Equal(t, 125.0, VAT(5000, true))
	assert.Equal(t, 262.5, VAT(10500, true))
	assert.Equal(t, 0.0, VAT(5000, false))
	assert.Equal(t, 0.0, VAT(0, true))
}

func TestVATRoundsHalfAwayFromZeroNotCeiling(t *testing.T) {
	// 2.5% of 119.76 is 2.994. The calculators round half away from zero,
	// so the cent stays at .99; a ceiling mode would land on 3.00.
	assert.InDelta(t, 2.99, VAT(119.76, true), 1e-9)
	assert.InDelta(t, 3.00, money.RoundUp(119.76*VATRate), 1e-9)
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 5125.0, TotalPrice(5000, 125))
	assert.Equal(t, 5000.0, TotalPrice(5000, 0))
}

func TestCheckoutPayable(t *testing.T) {
	assert.Equal(t, 3125.0, CheckoutPayable(5125, 2000, 0, 0))
	assert.Equal(t, 3300.0, CheckoutPayable(5125, 2000, 500, 325))
	// Overpaid bookings go negative; the caller decides presentation.
	assert.Equal(t, -875.0, CheckoutPayable(5125, 6000, 0, 0))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 1, Nights(day(1), day(2)))
	assert.Equal(t, 3, Nights(day(1), day(4)))
	// Never below one, even for degenerate input.
	assert.Equal(t, 1, Nights(day(2), day(2)))
	assert.Equal(t, 1, Nights(day(3), day(1)))
}

func TestMultiRoomTotal(t *testing.T) {
	stays := []StayLine{
		{PricePerNight: 5000, CheckIn: day(1), CheckOut: day(2)},
		{PricePerNight: 5500, CheckIn: day(2), CheckOut: day(3)},
	}

	quote := MultiRoomTotal(stays, true, 0)
	// 2.5% of 5000 = 125, of 5500 = 137.50; VAT 262.50 -> rounds to 262.5.
	assert.Equal(t, 262.5, quote.VATAmount)
	assert.Equal(t, 10762.5, quote.TotalPrice)
}

func TestMultiRoomTotalMultipleNights(t *testing.T) {
	stays := []StayLine{
		{PricePerNight: 4000, CheckIn: day(1), CheckOut: day(4)}, // 3 nights
		{PricePerNight: 6000, CheckIn: day(2), CheckOut: day(4)}, // 2 nights
	}

	quote := MultiRoomTotal(stays, true, 0)
	// Lines 12000 and 12000; VAT 300 each.
	assert.Equal(t, 600.0, quote.VATAmount)
	assert.Equal(t, 24600.0, quote.TotalPrice)
}

func TestMultiRoomTotalExemptAndAdjusted(t *testing.T) {
	stays := []StayLine{
		{PricePerNight: 5000, CheckIn: day(1), CheckOut: day(3)},
	}

	exempt := MultiRoomTotal(stays, false, 0)
	assert.Equal(t, 0.0, exempt.VATAmount)
	assert.Equal(t, 10000.0, exempt.TotalPrice)

	adjusted := MultiRoomTotal(stays, true, -50)
	assert.Equal(t, 200.0, adjusted.VATAmount)
	assert.Equal(t, 10200.0, adjusted.TotalPrice)
}
