package dto

import (
	"time"

	"resortdesk/internal/domain/expense"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
)

type RoomStay struct {
	RoomID        string    `json:"room_id"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	PricePerNight float64   `json:"price_per_night"`
	Nights        int       `json:"nights"`
	LineTotal     float64   `json:"line_total"`
	VATAmount     float64   `json:"vat_amount"`
}

type Reservation struct {
	ID              string     `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	GuestName       string     `json:"guest_name"`
	GuestPhone      string     `json:"guest_phone"`
	GuestEmail      string     `json:"guest_email,omitempty"`
	Adults          int        `json:"adults"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	CheckInTime     string     `json:"check_in_time,omitempty"`
	CheckOutTime    string     `json:"check_out_time,omitempty"`
	RoomID          *string    `json:"room_id"`
	TotalRooms      int        `json:"total_rooms,omitempty"`
	Stays           []RoomStay `json:"booking_rooms,omitempty"`
	Price           float64    `json:"price"`
	AdvancePaid     float64    `json:"advance_paid"`
	VATApplicable   bool       `json:"vat_applicable"`
	VATAmount       float64    `json:"vat_amount"`
	CheckoutPayable float64    `json:"checkout_payable"`
	Revenue         float64    `json:"revenue"`
	PendingAmount   float64    `json:"pending_amount"`
	RefundAmount    float64    `json:"refund_amount"`
	ExtraIncome     float64    `json:"extra_income,omitempty"`
	Discount        float64    `json:"discount,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

func MapReservation(res *reservation.Reservation) Reservation {
	out := Reservation{
		ID:              string(res.ID),
		BookingNumber:   res.BookingNumber,
		GuestName:       res.GuestName,
		GuestPhone:      res.GuestPhone,
		GuestEmail:      res.GuestEmail,
		Adults:          res.Adults,
		CheckIn:         res.CheckIn,
		CheckOut:        res.CheckOut,
		CheckInTime:     res.CheckInTime,
		CheckOutTime:    res.CheckOutTime,
		Price:           res.Price,
		AdvancePaid:     res.AdvancePaid,
		VATApplicable:   res.VATApplicable,
		VATAmount:       res.VATAmount,
		CheckoutPayable: res.CheckoutPayable,
		Revenue:         res.Revenue,
		PendingAmount:   res.PendingAmount,
		RefundAmount:    res.RefundAmount,
		ExtraIncome:     res.ExtraIncome,
		Discount:        res.Discount,
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt,
	}
	if res.MultiRoom() {
		out.TotalRooms = len(res.Stays)
		out.Stays = make([]RoomStay, 0, len(res.Stays))
		for _, stay := range res.Stays {
			out.Stays = append(out.Stays, RoomStay{
				RoomID:        string(stay.RoomID),
				CheckInDate:   stay.CheckIn,
				CheckOutDate:  stay.CheckOut,
				PricePerNight: stay.PricePerNight,
				Nights:        stay.Nights,
				LineTotal:     stay.LineTotal,
				VATAmount:     stay.VATAmount,
			})
		}
	} else {
		id := string(res.RoomID)
		out.RoomID = &id
	}
	return out
}

func MapReservations(items []*reservation.Reservation) []Reservation {
	out := make([]Reservation, 0, len(items))
	for _, res := range items {
		out = append(out, MapReservation(res))
	}
	return out
}

type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Category string `json:"category"`
}

func MapRoom(rm *room.Room) Room {
	return Room{
		ID:       string(rm.ID),
		Name:     rm.Name,
		Capacity: rm.Capacity,
		Category: rm.Category,
	}
}

type Expense struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func MapExpense(e *expense.Expense) Expense {
	return Expense{
		ID:        string(e.ID),
		Date:      e.Date,
		Category:  e.Category,
		Note:      e.Note,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}
