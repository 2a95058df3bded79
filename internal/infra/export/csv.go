// Package export renders reservation reports for download or archival.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/shared/money"
)

const exportDateLayout = "2006-01-02"

// ReservationsCSV renders the reservation book as CSV.
func ReservationsCSV(items []*reservation.Reservation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"booking_number", "guest_name", "guest_phone", "check_in", "check_out",
		"rooms", "status", "price", "vat_amount", "advance_paid",
		"checkout_payable", "revenue", "refund_amount",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	for _, res := range items {
		record := []string{
			res.BookingNumber,
			res.GuestName,
			res.GuestPhone,
			res.CheckIn.Format(exportDateLayout),
			res.CheckOut.Format(exportDateLayout),
			roomsColumn(res),
			string(res.Status),
			money.Format(res.Price),
			money.Format(res.VATAmount),
			money.Format(res.AdvancePaid),
			money.Format(res.CheckoutPayable),
			money.Format(res.Revenue),
			money.Format(res.RefundAmount),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func roomsColumn(res *reservation.Reservation) string {
	if !res.MultiRoom() {
		return string(res.RoomID)
	}
	out := ""
	for i, stay := range res.Stays {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s %s..%s",
			stay.RoomID,
			stay.CheckIn.Format(exportDateLayout),
			stay.CheckOut.Format(exportDateLayout),
		)
	}
	return out
}
