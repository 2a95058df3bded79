package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain/reservation"
)

func sample() []*reservation.Reservation {
	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
	}
	return []*reservation.Reservation{
		{
			BookingNumber:   "BK-4001",
			GuestName:       "Asha Perera",
			GuestPhone:      "+94771234567",
			CheckIn:         day(10),
			CheckOut:        day(12),
			RoomID:          "room-a",
			Price:           5000,
			VATAmount:       125,
			AdvancePaid:     2000,
			CheckoutPayable: 3125,
			Status:          reservation.StatusConfirmed,
		},
		{
			BookingNumber: "BK-4002",
			GuestName:     "Kamala Dias",
			CheckIn:       day(10),
			CheckOut:      day(13),
			Status:        reservation.StatusConfirmed,
			Stays: []reservation.RoomStay{
				{RoomID: "room-a", CheckIn: day(10), CheckOut: day(11)},
				{RoomID: "room-b", CheckIn: day(11), CheckOut: day(13)},
			},
		},
	}
}

func TestReservationsCSV(t *testing.T) {
	out, err := ReservationsCSV(sample())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "booking_number", records[0][0])
	assert.Equal(t, "BK-4001", records[1][0])
	assert.Equal(t, "room-a", records[1][5])
	assert.Equal(t, "3125.00", records[1][10])
	assert.Equal(t, "room-a 2026-08-10..2026-08-11; room-b 2026-08-11..2026-08-13", records[2][5])
}

func TestReservationsPDF(t *testing.T) {
	out, err := ReservationsPDF("Reservations", sample())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
