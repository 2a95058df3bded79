// Package availability decides whether a proposed booking may be accepted
// without double-booking a room. The overlap test is date-granular with
// strict inequalities, so back-to-back stays (one guest's check-out day equal
// to the next guest's check-in day) are always allowed.
package availability

import (
	"fmt"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
)

// Candidate is one proposed room + date range.
type Candidate struct {
	RoomID room.RoomID
	Range  dates.Range
}

// Result reports the first conflict found, if any. Blocking is nil when
// Conflict is false.
type Result struct {
	Conflict bool
	Blocking *reservation.Reservation
}

// ConflictError names the blocking guest and dates for user-facing messages.
type ConflictError struct {
	Candidate Candidate
	Blocking  *reservation.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"room %s is already booked by %s from %s to %s",
		e.Candidate.RoomID,
		e.Blocking.GuestName,
		e.Blocking.CheckIn.Format("2006-01-02"),
		e.Blocking.CheckOut.Format("2006-01-02"),
	)
}

// CheckRoom tests a single candidate against every non-terminal reservation
// in pool. Checked-out and cancelled reservations never block. Returns the
// first blocking reservation in pool order; it does not enumerate all
// conflicts.
func CheckRoom(candidate Candidate, pool []*reservation.Reservation) Result {
	for _, existing := range pool {
		if existing.Status.Terminal() {
			continue
		}
		if blocks(candidate, existing) {
			return Result{Conflict: true, Blocking: existing}
		}
	}
	return Result{}
}

// CheckStays validates each candidate of a multi-room submission against the
// existing reservation pool, outer loop in candidate order. Candidates are
// not cross-checked against their siblings in the same submission; each room
// is an independent resource validated against the same pool.
func CheckStays(candidates []Candidate, pool []*reservation.Reservation) Result {
	for _, candidate := range candidates {
		if res := CheckRoom(candidate, pool); res.Conflict {
			return res
		}
	}
	return Result{}
}

// blocks reports whether existing claims the candidate's room on an
// overlapping date range. Multi-room reservations block through any of their
// stays on the candidate's room.
func blocks(candidate Candidate, existing *reservation.Reservation) bool {
	if existing.MultiRoom() {
		for _, stay := range existing.Stays {
			if stay.RoomID == candidate.RoomID && candidate.Range.Overlaps(stay.Range()) {
				return true
			}
		}
		return false
	}
	return existing.RoomID == candidate.RoomID && candidate.Range.Overlaps(existing.Range())
}
