package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
)

func day(d int) time.Time {
	return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC)
}

func singleRoom(id string, roomID room.RoomID, in, out int, status reservation.Status) *reservation.Reservation {
	return &reservation.Reservation{
		ID:        reservation.ReservationID(id),
		GuestName: "Guest " + id,
		RoomID:    roomID,
		CheckIn:   day(in),
		CheckOut:  day(out),
		Status:    status,
	}
}

func candidate(roomID room.RoomID, in, out int) Candidate {
	return Candidate{RoomID: roomID, Range: dates.Range{CheckIn: day(in), CheckOut: day(out)}}
}

func TestCheckRoomOverlap(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-a", 1, 3, reservation.StatusConfirmed),
	}

	res := CheckRoom(candidate("room-a", 2, 4), pool)
	require.True(t, res.Conflict)
	assert.Equal(t, reservation.ReservationID("r1"), res.Blocking.ID)
}

func TestCheckRoomAdjacencyAllowed(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-a", 1, 2, reservation.StatusConfirmed),
	}

	// Same-day turnover: existing check-out equals candidate check-in.
	res := CheckRoom(candidate("room-a", 2, 3), pool)
	assert.False(t, res.Conflict)
	assert.Nil(t, res.Blocking)

	// Mirror case: candidate check-out equals existing check-in.
	pool = []*reservation.Reservation{
		singleRoom("r2", "room-a", 3, 5, reservation.StatusConfirmed),
	}
	res = CheckRoom(candidate("room-a", 1, 3), pool)
	assert.False(t, res.Conflict)
}

func TestCheckRoomDifferentRoomNeverConflicts(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-a", 1, 10, reservation.StatusConfirmed),
	}
	res := CheckRoom(candidate("room-b", 1, 10), pool)
	assert.False(t, res.Conflict)
}

func TestCheckRoomTerminalStatusesNeverBlock(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-a", 1, 10, reservation.StatusCancelled),
		singleRoom("r2", "room-a", 1, 10, reservation.StatusCheckedOut),
	}
	res := CheckRoom(candidate("room-a", 2, 4), pool)
	assert.False(t, res.Conflict)
}

func TestCheckRoomPaidStatusBlocks(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-a", 1, 5, reservation.StatusPaid),
	}
	res := CheckRoom(candidate("room-a", 4, 6), pool)
	assert.True(t, res.Conflict)
}

func TestCheckRoomAgainstMultiRoomStays(t *testing.T) {
	multi := &reservation.Reservation{
		ID:        "m1",
		GuestName: "Multi Guest",
		CheckIn:   day(1),
		CheckOut:  day(5),
		Status:    reservation.StatusConfirmed,
		Stays: []reservation.RoomStay{
			{RoomID: "room-a", CheckIn: day(1), CheckOut: day(3)},
			{RoomID: "room-b", CheckIn: day(2), CheckOut: day(5)},
		},
	}
	pool := []*reservation.Reservation{multi}

	res := CheckRoom(candidate("room-b", 4, 6), pool)
	require.True(t, res.Conflict)
	assert.Equal(t, reservation.ReservationID("m1"), res.Blocking.ID)

	// room-a is free again from day 3.
	res = CheckRoom(candidate("room-a", 3, 6), pool)
	assert.False(t, res.Conflict)
}

func TestCheckRoomFirstConflictWins(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("first", "room-a", 1, 4, reservation.StatusConfirmed),
		singleRoom("second", "room-a", 2, 6, reservation.StatusConfirmed),
	}
	res := CheckRoom(candidate("room-a", 2, 3), pool)
	require.True(t, res.Conflict)
	assert.Equal(t, reservation.ReservationID("first"), res.Blocking.ID)
}

func TestCheckStays(t *testing.T) {
	pool := []*reservation.Reservation{
		singleRoom("r1", "room-b", 2, 4, reservation.StatusConfirmed),
	}

	clear := []Candidate{
		candidate("room-a", 1, 3),
		candidate("room-b", 4, 6), // adjacent to r1
	}
	assert.False(t, CheckStays(clear, pool).Conflict)

	conflicting := []Candidate{
		candidate("room-a", 1, 3),
		candidate("room-b", 3, 5),
	}
	res := CheckStays(conflicting, pool)
	require.True(t, res.Conflict)
	assert.Equal(t, reservation.ReservationID("r1"), res.Blocking.ID)
}

func TestCheckStaysSiblingsNotCrossChecked(t *testing.T) {
	// Two candidates for the same room with overlapping dates pass when the
	// existing pool is empty; siblings are only validated against the pool.
	siblings := []Candidate{
		candidate("room-a", 1, 3),
		candidate("room-a", 2, 4),
	}
	assert.False(t, CheckStays(siblings, nil).Conflict)
}

func TestConflictErrorMessage(t *testing.T) {
	blocking := singleRoom("r1", "room-a", 1, 3, reservation.StatusConfirmed)
	err := &ConflictError{Candidate: candidate("room-a", 2, 4), Blocking: blocking}
	assert.Contains(t, err.Error(), "Guest r1")
	assert.Contains(t, err.Error(), "2026-02-01")
	assert.Contains(t, err.Error(), "2026-02-03")
}
