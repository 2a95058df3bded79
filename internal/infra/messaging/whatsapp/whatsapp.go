// Package whatsapp renders booking messages and wa.me deep links. Delivery
// is manual: the operator opens the link and the prefilled message in the
// WhatsApp client.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"resortdesk/internal/domain/pricing"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/money"
)

const dateLayout = "02 Jan 2006"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`Dear {{.GuestName}},

Your booking at {{.ResortName}} is confirmed!

Booking No: {{.BookingNumber}}
{{- range .Lines}}
{{.}}
{{- end}}
Check-in: {{.CheckIn}}{{if .CheckInTime}} ({{.CheckInTime}}){{end}}
Check-out: {{.CheckOut}}{{if .CheckOutTime}} ({{.CheckOutTime}}){{end}}
Guests: {{.Adults}} adult(s)

Total: Rs. {{.Total}}
Advance paid: Rs. {{.Advance}}
Balance at checkout: Rs. {{.Payable}}

We look forward to welcoming you!
{{.ResortName}}{{if .ResortPhone}} | {{.ResortPhone}}{{end}}`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(
	`Dear {{.GuestName}},

Your booking {{.BookingNumber}} at {{.ResortName}} has been cancelled.

Refund: Rs. {{.Refund}} ({{.Policy}})

We hope to host you another time.
{{.ResortName}}{{if .ResortPhone}} | {{.ResortPhone}}{{end}}`))

// Builder renders messages for a specific resort identity.
type Builder struct {
	ResortName  string
	ResortPhone string
}

// RoomLookup resolves room names for message lines.
type RoomLookup func(id room.RoomID) string

// Confirmation renders the booking confirmation text.
func (b Builder) Confirmation(res *reservation.Reservation, lookup RoomLookup) (string, error) {
	lines := b.roomLines(res, lookup)
	data := map[string]any{
		"GuestName":     res.GuestName,
		"ResortName":    b.ResortName,
		"ResortPhone":   b.ResortPhone,
		"BookingNumber": res.BookingNumber,
		"Lines":         lines,
		"CheckIn":       res.CheckIn.Format(dateLayout),
		"CheckOut":      res.CheckOut.Format(dateLayout),
		"CheckInTime":   res.CheckInTime,
		"CheckOutTime":  res.CheckOutTime,
		"Adults":        res.Adults,
		"Total":         money.Format(res.Price + res.VATAmount),
		"Advance":       money.Format(res.AdvancePaid),
		"Payable":       money.Format(res.CheckoutPayable),
	}
	return render(confirmationTmpl, data)
}

// Cancellation renders the cancellation notice.
func (b Builder) Cancellation(res *reservation.Reservation, refund reservation.Refund) (string, error) {
	data := map[string]any{
		"GuestName":     res.GuestName,
		"ResortName":    b.ResortName,
		"ResortPhone":   b.ResortPhone,
		"BookingNumber": res.BookingNumber,
		"Refund":        money.Format(refund.Amount),
		"Policy":        refund.Policy,
	}
	return render(cancellationTmpl, data)
}

// Link builds a wa.me deep link with the message prefilled.
func (b Builder) Link(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

func (b Builder) roomLines(res *reservation.Reservation, lookup RoomLookup) []string {
	name := func(id room.RoomID) string {
		if lookup != nil {
			if n := lookup(id); n != "" {
				return n
			}
		}
		return string(id)
	}
	if !res.MultiRoom() {
		nights := pricing.Nights(res.CheckIn, res.CheckOut)
		return []string{fmt.Sprintf("Room: %s (%d night(s))", name(res.RoomID), nights)}
	}
	lines := make([]string, 0, len(res.Stays))
	for _, stay := range res.Stays {
		lines = append(lines, fmt.Sprintf(
			"Room: %s, %s - %s (%d night(s) @ Rs. %s)",
			name(stay.RoomID),
			stay.CheckIn.Format(dateLayout),
			stay.CheckOut.Format(dateLayout),
			stay.Nights,
			money.Format(stay.PricePerNight),
		))
	}
	return lines
}

func render(tmpl *template.Template, data map[string]any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("whatsapp: render: %w", err)
	}
	return sb.String(), nil
}
