package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/shared/money"
)

// ReservationsPDF renders the reservation book as a landscape A4 table.
func ReservationsPDF(title string, items []*reservation.Reservation) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	headers := []string{"Booking", "Guest", "Check-in", "Check-out", "Status", "Price", "VAT", "Advance", "Payable", "Revenue"}
	widths := []float64{28, 52, 26, 26, 26, 26, 22, 26, 26, 26}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, res := range items {
		cols := []string{
			res.BookingNumber,
			res.GuestName,
			res.CheckIn.Format(exportDateLayout),
			res.CheckOut.Format(exportDateLayout),
			string(res.Status),
			money.Format(res.Price),
			money.Format(res.VATAmount),
			money.Format(res.AdvancePaid),
			money.Format(res.CheckoutPayable),
			money.Format(res.Revenue),
		}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
