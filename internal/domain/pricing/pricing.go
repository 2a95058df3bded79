// Package pricing holds the deterministic booking arithmetic: VAT, totals,
// checkout-payable balances, multi-room aggregates, and nights counts. All
// functions are pure; callers validate dates and amounts before invoking.
package pricing

import (
	"time"

	"resortdesk/internal/domain/shared/dates"
	"resortdesk/internal/domain/shared/money"
)

// VATRate is the statutory 2.5% rate applied to room charges.
const VATRate = 0.025

// VAT returns the tax on price, zero when the booking is VAT-exempt.
func VAT(price float64, applicable bool) float64 {
	if !applicable {
		return 0
	}
	return money.Round(price * VATRate)
}

// TotalPrice is the VAT-inclusive booking total.
func TotalPrice(price, vatAmount float64) float64 {
	return money.Round(price + vatAmount)
}

// CheckoutPayable is the balance owed at physical checkout. May be negative
// when the guest overpaid; presentation is the caller's concern.
func CheckoutPayable(totalPrice, advance, extraIncome, discount float64) float64 {
	return money.Round(totalPrice - advance + extraIncome - discount)
}

// Nights counts the calendar nights between check-in and check-out, never
// less than one.
func Nights(checkIn, checkOut time.Time) int {
	n := dates.DaysBetween(checkIn, checkOut)
	if n < 1 {
		return 1
	}
	return n
}

// StayLine is the per-room input to MultiRoomTotal.
type StayLine struct {
	PricePerNight float64
	CheckIn       time.Time
	CheckOut      time.Time
}

// MultiRoomQuote aggregates a multi-room booking's totals.
type MultiRoomQuote struct {
	TotalPrice float64
	VATAmount  float64
}

// MultiRoomTotal prices each stay independently (nights x nightly rate),
// accumulating VAT per line. vatAdjustment is added to the summed VAT before
// the grand total is formed.
func MultiRoomTotal(stays []StayLine, vatApplicable bool, vatAdjustment float64) MultiRoomQuote {
	var totalPrice, totalVAT float64
	for _, stay := range stays {
		nights := dates.DaysBetween(stay.CheckIn, stay.CheckOut)
		lineTotal := stay.PricePerNight * float64(nights)
		totalPrice += lineTotal
		if vatApplicable {
			totalVAT += money.Round(lineTotal * VATRate)
		}
	}
	vatAmount := money.Round(totalVAT) + vatAdjustment
	return MultiRoomQuote{
		TotalPrice: money.Round(totalPrice + vatAmount),
		VATAmount:  vatAmount,
	}
}
