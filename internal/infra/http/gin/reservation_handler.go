package ginserver

import (
	"errors"
	"io"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/app/dto"
	"resortdesk/internal/app/services/desk"
	"resortdesk/internal/domain/availability"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/infra/messaging/whatsapp"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	Desk     *desk.Service
	Rooms    room.Repository
	Messages whatsapp.Builder
}

type stayRequest struct {
	RoomID        string  `json:"room_id" binding:"required"`
	CheckInDate   string  `json:"check_in_date" binding:"required"`
	CheckOutDate  string  `json:"check_out_date" binding:"required"`
	PricePerNight float64 `json:"price_per_night"`
}

type createReservationRequest struct {
	BookingNumber string        `json:"booking_number" binding:"required"`
	GuestName     string        `json:"guest_name" binding:"required"`
	GuestPhone    string        `json:"guest_phone" binding:"required"`
	GuestEmail    string        `json:"guest_email"`
	Adults        int           `json:"adults"`
	CheckIn       string        `json:"check_in" binding:"required"`
	CheckOut      string        `json:"check_out" binding:"required"`
	CheckInTime   string        `json:"check_in_time"`
	CheckOutTime  string        `json:"check_out_time"`
	RoomID        string        `json:"room_id"`
	Stays         []stayRequest `json:"booking_rooms"`
	Price         float64       `json:"price"`
	AdvancePaid   float64       `json:"advance_paid"`
	VATApplicable bool          `json:"vat_applicable"`
	VATAdjustment float64       `json:"vat_adjustment"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Desk.Create(c.Request.Context(), input)
	if err != nil {
		var conflict *availability.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.MapReservation(res))
}

func (h ReservationHandler) List(c *gin.Context) {
	items, err := h.Desk.Reservations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.MapReservations(items)})
}

func (h ReservationHandler) Get(c *gin.Context) {
	res, err := h.Desk.Reservations.ByID(c.Request.Context(), reservation.ReservationID(c.Param("id")))
	if err != nil {
		respondReservationErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) Delete(c *gin.Context) {
	if err := h.Desk.Delete(c.Request.Context(), reservation.ReservationID(c.Param("id"))); err != nil {
		respondReservationErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReservationHandler) Pay(c *gin.Context) {
	res, err := h.Desk.MarkPaid(c.Request.Context(), reservation.ReservationID(c.Param("id")))
	if err != nil {
		respondReservationErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

type checkoutRequest struct {
	ExtraIncome float64 `json:"extra_income"`
	Discount    float64 `json:"discount"`
}

func (h ReservationHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	// Every field is optional; an absent body means no adjustments.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Desk.Checkout(c.Request.Context(), reservation.ReservationID(c.Param("id")), req.ExtraIncome, req.Discount)
	if err != nil {
		respondReservationErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

type cancelRequest struct {
	CustomRefund *float64 `json:"custom_refund"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	// An absent body means the tiered policy applies, no override.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, refund, err := h.Desk.Cancel(c.Request.Context(), reservation.ReservationID(c.Param("id")), req.CustomRefund)
	if err != nil {
		respondReservationErr(c, err)
		return
	}
	message, _ := h.Messages.Cancellation(res, refund)
	c.JSON(http.StatusOK, gin.H{
		"reservation":   dto.MapReservation(res),
		"refund_amount": refund.Amount,
		"refund_policy": refund.Policy,
		"message":       message,
		"whatsapp_link": h.Messages.Link(res.GuestPhone, message),
	})
}

func (h ReservationHandler) Pending(c *gin.Context) {
	items, err := h.Desk.PendingReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.MapReservations(items)})
}

func (h ReservationHandler) WhatsApp(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.Desk.Reservations.ByID(ctx, reservation.ReservationID(c.Param("id")))
	if err != nil {
		respondReservationErr(c, err)
		return
	}
	lookup := func(id room.RoomID) string {
		rm, err := h.Rooms.ByID(ctx, id)
		if err != nil {
			return ""
		}
		return rm.Name
	}
	message, err := h.Messages.Confirmation(res, lookup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       message,
		"whatsapp_link": h.Messages.Link(res.GuestPhone, message),
	})
}

func (r createReservationRequest) toInput() (desk.CreateInput, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return desk.CreateInput{}, err
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return desk.CreateInput{}, err
	}
	input := desk.CreateInput{
		BookingNumber: r.BookingNumber,
		GuestName:     r.GuestName,
		GuestPhone:    r.GuestPhone,
		GuestEmail:    r.GuestEmail,
		Adults:        r.Adults,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		CheckInTime:   r.CheckInTime,
		CheckOutTime:  r.CheckOutTime,
		RoomID:        room.RoomID(r.RoomID),
		Price:         r.Price,
		AdvancePaid:   r.AdvancePaid,
		VATApplicable: r.VATApplicable,
		VATAdjustment: r.VATAdjustment,
	}
	for _, stay := range r.Stays {
		in, err := time.Parse(dateLayout, stay.CheckInDate)
		if err != nil {
			return desk.CreateInput{}, err
		}
		out, err := time.Parse(dateLayout, stay.CheckOutDate)
		if err != nil {
			return desk.CreateInput{}, err
		}
		input.Stays = append(input.Stays, desk.StayInput{
			RoomID:        room.RoomID(stay.RoomID),
			CheckIn:       in,
			CheckOut:      out,
			PricePerNight: stay.PricePerNight,
		})
	}
	return input, nil
}

func respondReservationErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ ReservationHTTP = ReservationHandler{}
