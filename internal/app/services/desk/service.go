// Package desk orchestrates the booking workflows: availability-checked
// creation, checkout, cancellation, and deletion. It owns no arithmetic of
// its own; conflict detection and money math live in the domain packages.
package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"resortdesk/internal/domain/availability"
	"resortdesk/internal/domain/pricing"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
)

var ErrUnknownRoom = errors.New("desk: unknown room")

// EventSink records a lifecycle event for asynchronous publication.
type EventSink interface {
	Enqueue(ctx context.Context, name, aggregateID string, payload any) error
}

// Clock returns the current time; injected for testability.
type Clock func() time.Time

type Service struct {
	Reservations reservation.Repository
	Rooms        room.Repository
	Events       EventSink
	Logger       *slog.Logger
	Now          Clock
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// StayInput is one room + date range of a create request.
type StayInput struct {
	RoomID        room.RoomID
	CheckIn       time.Time
	CheckOut      time.Time
	PricePerNight float64
}

// CreateInput carries a draft reservation from the HTTP layer.
type CreateInput struct {
	BookingNumber string
	GuestName     string
	GuestPhone    string
	GuestEmail    string
	Adults        int
	CheckIn       time.Time
	CheckOut      time.Time
	CheckInTime   string
	CheckOutTime  string
	RoomID        room.RoomID
	Stays         []StayInput
	Price         float64
	AdvancePaid   float64
	VATApplicable bool
	VATAdjustment float64
}

// Create runs the availability check against a fresh snapshot of active
// reservations, prices the booking, re-fetches and re-checks immediately
// before insert to narrow the check-to-insert window, then persists. The
// window cannot be fully closed without a storage-level exclusion constraint;
// two concurrent submissions can still both pass.
func (s *Service) Create(ctx context.Context, input CreateInput) (*reservation.Reservation, error) {
	candidates, err := s.candidates(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkAvailability(ctx, candidates); err != nil {
		return nil, err
	}

	params, err := s.price(input)
	if err != nil {
		return nil, err
	}
	res, err := reservation.NewReservation(params)
	if err != nil {
		return nil, err
	}

	// Second pass right before the write.
	if err := s.checkAvailability(ctx, candidates); err != nil {
		return nil, err
	}
	if err := s.Reservations.Insert(ctx, res); err != nil {
		return nil, fmt.Errorf("desk: insert reservation: %w", err)
	}
	s.log().Info("reservation created",
		"reservation_id", res.ID,
		"booking_number", res.BookingNumber,
		"multi_room", res.MultiRoom(),
	)
	s.emit(ctx, "reservation.confirmed", res)
	return res, nil
}

// CheckAvailability exposes the conflict check for the pre-submit probe the
// booking form runs.
func (s *Service) CheckAvailability(ctx context.Context, candidates []availability.Candidate) (availability.Result, error) {
	pool, err := s.Reservations.List(ctx)
	if err != nil {
		return availability.Result{}, fmt.Errorf("desk: load reservations: %w", err)
	}
	return availability.CheckStays(candidates, pool), nil
}

// MarkPaid records settlement of the remaining balance before arrival.
func (s *Service) MarkPaid(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Update(ctx, res); err != nil {
		return nil, fmt.Errorf("desk: update reservation: %w", err)
	}
	s.log().Info("reservation marked paid", "reservation_id", res.ID)
	s.emit(ctx, "reservation.paid", res)
	return res, nil
}

// Checkout completes a stay and settles its balance.
func (s *Service) Checkout(ctx context.Context, id reservation.ReservationID, extraIncome, discount float64) (*reservation.Reservation, error) {
	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.Checkout(extraIncome, discount, s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Update(ctx, res); err != nil {
		return nil, fmt.Errorf("desk: update reservation: %w", err)
	}
	s.log().Info("reservation checked out", "reservation_id", res.ID, "revenue", res.Revenue)
	s.emit(ctx, "reservation.checked_out", res)
	return res, nil
}

// Cancel voids a stay, applying the refund policy (or a negotiated override).
func (s *Service) Cancel(ctx context.Context, id reservation.ReservationID, customRefund *float64) (*reservation.Reservation, reservation.Refund, error) {
	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, reservation.Refund{}, err
	}
	refund := reservation.CalculateRefund(res.CheckIn, res.AdvancePaid, customRefund, s.now())
	if err := res.Cancel(refund.Amount, s.now()); err != nil {
		return nil, reservation.Refund{}, err
	}
	if err := s.Reservations.Update(ctx, res); err != nil {
		return nil, reservation.Refund{}, fmt.Errorf("desk: update reservation: %w", err)
	}
	s.log().Info("reservation cancelled",
		"reservation_id", res.ID,
		"refund", refund.Amount,
		"policy", refund.Policy,
	)
	s.emit(ctx, "reservation.cancelled", res)
	return res, refund, nil
}

// Delete removes a reservation. Room stays are embedded in the reservation
// document, so they go with it.
func (s *Service) Delete(ctx context.Context, id reservation.ReservationID) error {
	if err := s.Reservations.Delete(ctx, id); err != nil {
		return err
	}
	s.log().Info("reservation deleted", "reservation_id", id)
	return nil
}

// PendingReport lists non-terminal reservations still carrying a balance.
func (s *Service) PendingReport(ctx context.Context) ([]*reservation.Reservation, error) {
	active, err := s.Reservations.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]*reservation.Reservation, 0, len(active))
	for _, res := range active {
		if res.PendingAmount > 0 {
			pending = append(pending, res)
		}
	}
	return pending, nil
}

func (s *Service) candidates(ctx context.Context, input CreateInput) ([]availability.Candidate, error) {
	if len(input.Stays) > 0 {
		out := make([]availability.Candidate, 0, len(input.Stays))
		for _, stay := range input.Stays {
			if _, err := s.Rooms.ByID(ctx, stay.RoomID); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, stay.RoomID)
			}
			out = append(out, availability.Candidate{
				RoomID: stay.RoomID,
				Range:  dates.Range{CheckIn: stay.CheckIn, CheckOut: stay.CheckOut},
			})
		}
		return out, nil
	}
	if _, err := s.Rooms.ByID(ctx, input.RoomID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, input.RoomID)
	}
	return []availability.Candidate{{
		RoomID: input.RoomID,
		Range:  dates.Range{CheckIn: input.CheckIn, CheckOut: input.CheckOut},
	}}, nil
}

func (s *Service) checkAvailability(ctx context.Context, candidates []availability.Candidate) error {
	pool, err := s.Reservations.List(ctx)
	if err != nil {
		return fmt.Errorf("desk: load reservations: %w", err)
	}
	if res := availability.CheckStays(candidates, pool); res.Conflict {
		blocked := candidates[0]
		for _, c := range candidates {
			if availability.CheckRoom(c, pool).Conflict {
				blocked = c
				break
			}
		}
		return &availability.ConflictError{Candidate: blocked, Blocking: res.Blocking}
	}
	return nil
}

func (s *Service) price(input CreateInput) (reservation.CreateParams, error) {
	params := reservation.CreateParams{
		ID:            reservation.ReservationID(uuid.NewString()),
		BookingNumber: input.BookingNumber,
		GuestName:     input.GuestName,
		GuestPhone:    input.GuestPhone,
		GuestEmail:    input.GuestEmail,
		Adults:        input.Adults,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		CheckInTime:   input.CheckInTime,
		CheckOutTime:  input.CheckOutTime,
		AdvancePaid:   input.AdvancePaid,
		VATApplicable: input.VATApplicable,
		CreatedAt:     s.now(),
	}
	if len(input.Stays) > 0 {
		lines := make([]pricing.StayLine, 0, len(input.Stays))
		stays := make([]reservation.RoomStay, 0, len(input.Stays))
		var base float64
		for _, stay := range input.Stays {
			nights := pricing.Nights(stay.CheckIn, stay.CheckOut)
			lineTotal := stay.PricePerNight * float64(nights)
			base += lineTotal
			lines = append(lines, pricing.StayLine{
				PricePerNight: stay.PricePerNight,
				CheckIn:       stay.CheckIn,
				CheckOut:      stay.CheckOut,
			})
			stays = append(stays, reservation.RoomStay{
				RoomID:        stay.RoomID,
				CheckIn:       stay.CheckIn,
				CheckOut:      stay.CheckOut,
				PricePerNight: stay.PricePerNight,
				Nights:        nights,
				LineTotal:     lineTotal,
				VATAmount:     pricing.VAT(lineTotal, input.VATApplicable),
			})
		}
		quote := pricing.MultiRoomTotal(lines, input.VATApplicable, input.VATAdjustment)
		params.Stays = stays
		params.Price = base
		params.VATAmount = quote.VATAmount
		params.Payable = pricing.CheckoutPayable(quote.TotalPrice, input.AdvancePaid, 0, 0)
		return params, nil
	}
	vat := pricing.VAT(input.Price, input.VATApplicable)
	total := pricing.TotalPrice(input.Price, vat)
	params.RoomID = input.RoomID
	params.Price = input.Price
	params.VATAmount = vat
	params.Payable = pricing.CheckoutPayable(total, input.AdvancePaid, 0, 0)
	return params, nil
}

func (s *Service) emit(ctx context.Context, name string, res *reservation.Reservation) {
	if s.Events == nil {
		return
	}
	payload := map[string]any{
		"reservation_id": string(res.ID),
		"booking_number": res.BookingNumber,
		"status":         string(res.Status),
		"check_in":       res.CheckIn.Format("2006-01-02"),
		"check_out":      res.CheckOut.Format("2006-01-02"),
	}
	if err := s.Events.Enqueue(ctx, name, string(res.ID), payload); err != nil {
		s.log().Error("event enqueue failed", "event", name, "reservation_id", res.ID, "error", err)
	}
}
