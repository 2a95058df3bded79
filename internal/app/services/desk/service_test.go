package desk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain/availability"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
	"resortdesk/internal/infra/storage/memory"
)

type sinkRecorder struct {
	events []string
}

func (s *sinkRecorder) Enqueue(_ context.Context, name, _ string, _ any) error {
	s.events = append(s.events, name)
	return nil
}

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T) (*Service, *sinkRecorder) {
	t.Helper()
	rooms := memory.NewRoomRepository()
	for _, rm := range []*room.Room{
		{ID: "room-a", Name: "Lagoon A", Capacity: 2, Category: "Deluxe"},
		{ID: "room-b", Name: "Lagoon B", Capacity: 3, Category: "Family"},
	} {
		require.NoError(t, rooms.Save(context.Background(), rm))
	}
	sink := &sinkRecorder{}
	svc := &Service{
		Reservations: memory.NewReservationRepository(),
		Rooms:        rooms,
		Events:       sink,
		Now:          func() time.Time { return day(1) },
	}
	return svc, sink
}

func singleInput(roomID room.RoomID, in, out int) CreateInput {
	return CreateInput{
		BookingNumber: "BK-2001",
		GuestName:     "Nimal Silva",
		GuestPhone:    "+94770000000",
		Adults:        2,
		CheckIn:       day(in),
		CheckOut:      day(out),
		RoomID:        roomID,
		Price:         5000,
		AdvancePaid:   2000,
		VATApplicable: true,
	}
}

func TestCreateSingleRoom(t *testing.T) {
	svc, sink := newService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, res.Status)
	assert.Equal(t, 125.0, res.VATAmount)
	assert.Equal(t, 3125.0, res.CheckoutPayable)
	assert.Equal(t, []string{"reservation.confirmed"}, sink.events)

	stored, err := svc.Reservations.ByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.BookingNumber, stored.BookingNumber)
}

func TestCreateRejectsConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, singleInput("room-a", 10, 13))
	require.NoError(t, err)

	_, err = svc.Create(ctx, singleInput("room-a", 12, 14))
	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Nimal Silva", conflict.Blocking.GuestName)
}

func TestCreateAllowsAdjacency(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)

	_, err = svc.Create(ctx, singleInput("room-a", 12, 14))
	assert.NoError(t, err)
}

func TestCreateUnknownRoom(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(context.Background(), singleInput("room-z", 10, 12))
	assert.ErrorIs(t, err, ErrUnknownRoom)
}

func TestCreateMultiRoom(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	input := CreateInput{
		BookingNumber: "BK-2002",
		GuestName:     "Kamala Dias",
		GuestPhone:    "+94771111111",
		Adults:        4,
		CheckIn:       day(10),
		CheckOut:      day(13),
		VATApplicable: true,
		AdvancePaid:   5000,
		Stays: []StayInput{
			{RoomID: "room-a", CheckIn: day(10), CheckOut: day(11), PricePerNight: 5000},
			{RoomID: "room-b", CheckIn: day(11), CheckOut: day(12), PricePerNight: 5500},
		},
	}
	res, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.True(t, res.MultiRoom())
	assert.Equal(t, 10500.0, res.Price)
	assert.Equal(t, 262.5, res.VATAmount)
	assert.Equal(t, 5762.5, res.CheckoutPayable)
	require.Len(t, res.Stays, 2)
	assert.Equal(t, 1, res.Stays[0].Nights)
	assert.Equal(t, 5000.0, res.Stays[0].LineTotal)
	assert.Equal(t, 137.5, res.Stays[1].VATAmount)

	// A later single-room booking collides with one of the stays.
	_, err = svc.Create(ctx, singleInput("room-b", 11, 12))
	var conflict *availability.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestMarkPaidFlow(t *testing.T) {
	svc, sink := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)

	res, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusPaid, res.Status)
	assert.Contains(t, sink.events, "reservation.paid")

	// Only a Confirmed booking can be marked paid.
	_, err = svc.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, reservation.ErrInvalidState)

	// Paid bookings still block their dates.
	_, err = svc.Create(ctx, singleInput("room-a", 11, 13))
	var conflict *availability.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCheckoutFlow(t *testing.T) {
	svc, sink := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)

	res, err := svc.Checkout(ctx, created.ID, 500, 200)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCheckedOut, res.Status)
	assert.Equal(t, 3425.0, res.Revenue)
	assert.Equal(t, 0.0, res.CheckoutPayable)
	assert.Contains(t, sink.events, "reservation.checked_out")

	// Room frees immediately for the overlapping range.
	_, err = svc.Create(ctx, singleInput("room-a", 11, 13))
	assert.NoError(t, err)
}

func TestCancelFlow(t *testing.T) {
	svc, sink := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 11, 13)) // 10 days out
	require.NoError(t, err)

	res, refund, err := svc.Cancel(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, res.Status)
	assert.Equal(t, 1700.0, refund.Amount)
	assert.Equal(t, 300.0, res.Revenue)
	assert.Contains(t, sink.events, "reservation.cancelled")
}

func TestCancelSameDayNoRefund(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 1, 3))
	require.NoError(t, err)

	_, refund, err := svc.Cancel(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, refund.Amount)
}

func TestCancelCustomRefund(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 11, 13))
	require.NoError(t, err)

	custom := 1500.0
	_, refund, err := svc.Cancel(ctx, created.ID, &custom)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, refund.Amount)
	assert.Equal(t, "Custom", refund.Policy)
}

func TestPendingReport(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)
	_, err = svc.Create(ctx, singleInput("room-b", 10, 12))
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, first.ID, 0, 0)
	require.NoError(t, err)

	pending, err := svc.PendingReport(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 3125.0, pending[0].PendingAmount)
}

func TestCheckAvailabilityProbe(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)

	probe := []availability.Candidate{{
		RoomID: "room-a",
		Range:  dates.Range{CheckIn: day(11), CheckOut: day(13)},
	}}
	res, err := svc.CheckAvailability(ctx, probe)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, singleInput("room-a", 10, 12))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Reservations.ByID(ctx, created.ID)
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}
