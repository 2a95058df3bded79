package reservation

import (
	"context"
	"errors"
	"time"

	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
	"resortdesk/internal/domain/shared/money"
)

var (
	ErrInvalidDates        = errors.New("reservation: check-in must precede check-out")
	ErrInvalidStayDates    = errors.New("reservation: room stay check-in must precede its check-out")
	ErrRoomRequired        = errors.New("reservation: either a room or room stays required")
	ErrAmbiguousRooms      = errors.New("reservation: cannot have both a room and room stays")
	ErrGuestNameRequired   = errors.New("reservation: guest name required")
	ErrInvalidState        = errors.New("reservation: invalid state transition")
	ErrReservationNotFound = errors.New("reservation: not found")
)

type ReservationID string

type Status string

const (
	StatusConfirmed  Status = "Confirmed"
	StatusPaid       Status = "Paid"
	StatusCheckedOut Status = "Checked-out"
	StatusCancelled  Status = "Cancelled"
)

// Terminal reports whether the status frees the room for availability
// purposes. Checked-out and cancelled stays never block a new booking.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// RoomStay is one room's slice of a multi-room reservation. Stays are owned
// by their parent and persisted inside its document, so they share its fate.
type RoomStay struct {
	RoomID        room.RoomID
	CheckIn       time.Time
	CheckOut      time.Time
	PricePerNight float64
	Nights        int
	LineTotal     float64
	VATAmount     float64
}

func (s RoomStay) Range() dates.Range {
	return dates.Range{CheckIn: s.CheckIn, CheckOut: s.CheckOut}
}

// Reservation is a guest booking. Exactly one of RoomID / Stays is set:
// RoomID for a single-room booking, a non-empty Stays list for multi-room.
type Reservation struct {
	ID            ReservationID
	BookingNumber string

	GuestName  string
	GuestPhone string
	GuestEmail string
	Adults     int

	CheckIn      time.Time
	CheckOut     time.Time
	CheckInTime  string
	CheckOutTime string

	RoomID room.RoomID
	Stays  []RoomStay

	Price           float64
	AdvancePaid     float64
	VATApplicable   bool
	VATAmount       float64
	CheckoutPayable float64
	Revenue         float64
	PendingAmount   float64
	RefundAmount    float64
	ExtraIncome     float64
	Discount        float64

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MultiRoom reports whether the reservation is composed of room stays.
func (r *Reservation) MultiRoom() bool {
	return r.RoomID == "" && len(r.Stays) > 0
}

func (r *Reservation) Range() dates.Range {
	return dates.Range{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
	ListActive(ctx context.Context) ([]*Reservation, error)
	Insert(ctx context.Context, r *Reservation) error
	Update(ctx context.Context, r *Reservation) error
	Delete(ctx context.Context, id ReservationID) error
}

type CreateParams struct {
	ID            ReservationID
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
	Stays         []RoomStay
	Price         float64
	AdvancePaid   float64
	VATApplicable bool
	VATAmount     float64
	Payable       float64
	CreatedAt     time.Time
}

// NewReservation validates the booking shape and returns a confirmed
// reservation. Monetary fields are taken as computed by the pricing
// calculator; the aggregate does not re-derive them.
func NewReservation(params CreateParams) (*Reservation, error) {
	if params.GuestName == "" {
		return nil, ErrGuestNameRequired
	}
	if params.RoomID == "" && len(params.Stays) == 0 {
		return nil, ErrRoomRequired
	}
	if params.RoomID != "" && len(params.Stays) > 0 {
		return nil, ErrAmbiguousRooms
	}
	overall := dates.Range{CheckIn: params.CheckIn, CheckOut: params.CheckOut}
	if !overall.Valid() {
		return nil, ErrInvalidDates
	}
	for _, stay := range params.Stays {
		if !stay.Range().Valid() {
			return nil, ErrInvalidStayDates
		}
	}
	now := params.CreatedAt.UTC()
	return &Reservation{
		ID:              params.ID,
		BookingNumber:   params.BookingNumber,
		GuestName:       params.GuestName,
		GuestPhone:      params.GuestPhone,
		GuestEmail:      params.GuestEmail,
		Adults:          params.Adults,
		CheckIn:         params.CheckIn,
		CheckOut:        params.CheckOut,
		CheckInTime:     params.CheckInTime,
		CheckOutTime:    params.CheckOutTime,
		RoomID:          params.RoomID,
		Stays:           append([]RoomStay(nil), params.Stays...),
		Price:           params.Price,
		AdvancePaid:     params.AdvancePaid,
		VATApplicable:   params.VATApplicable,
		VATAmount:       params.VATAmount,
		CheckoutPayable: params.Payable,
		PendingAmount:   params.Payable,
		Status:          StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// MarkPaid records full advance settlement ahead of checkout.
func (r *Reservation) MarkPaid(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrInvalidState
	}
	r.Status = StatusPaid
	r.UpdatedAt = now.UTC()
	return nil
}

// Checkout completes the stay. The guest settles the outstanding payable
// (adjusted by extra income and discount), so the advance becomes the full
// VAT-inclusive total and nothing remains pending.
func (r *Reservation) Checkout(extraIncome, discount float64, now time.Time) error {
	if r.Status.Terminal() {
		return ErrInvalidState
	}
	settled := money.Round(r.CheckoutPayable + extraIncome - discount)
	r.Revenue = money.Round(r.Revenue + settled)
	r.AdvancePaid = money.Round(r.Price + r.VATAmount)
	r.ExtraIncome = extraIncome
	r.Discount = discount
	r.CheckoutPayable = 0
	r.PendingAmount = 0
	r.Status = StatusCheckedOut
	r.UpdatedAt = now.UTC()
	return nil
}

// Cancel voids the stay, retaining the refund produced by the refund policy.
// What was not refunded from the advance is kept as revenue; VAT on a
// cancelled booking is dropped.
func (r *Reservation) Cancel(refundAmount float64, now time.Time) error {
	if r.Status.Terminal() {
		return ErrInvalidState
	}
	r.RefundAmount = money.Round(refundAmount)
	r.Revenue = money.Round(r.AdvancePaid - r.RefundAmount)
	r.AdvancePaid = money.Round(r.AdvancePaid - r.RefundAmount)
	r.CheckoutPayable = 0
	r.PendingAmount = 0
	r.VATAmount = 0
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	return nil
}
