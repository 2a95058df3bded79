package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/app/services/desk"
	"resortdesk/internal/domain/availability"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/domain/shared/dates"
)

type AvailabilityHandler struct {
	Desk *desk.Service
}

type availabilityCheckRequest struct {
	Candidates []struct {
		RoomID   string `json:"room_id" binding:"required"`
		CheckIn  string `json:"check_in" binding:"required"`
		CheckOut string `json:"check_out" binding:"required"`
	} `json:"candidates" binding:"required,min=1"`
}

// Check is the pre-submit probe the booking form runs before the operator
// commits a reservation.
func (h AvailabilityHandler) Check(c *gin.Context) {
	var req availabilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	candidates := make([]availability.Candidate, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		checkIn, err := time.Parse(dateLayout, cand.CheckIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		checkOut, err := time.Parse(dateLayout, cand.CheckOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		candidates = append(candidates, availability.Candidate{
			RoomID: room.RoomID(cand.RoomID),
			Range:  dates.Range{CheckIn: checkIn, CheckOut: checkOut},
		})
	}
	result, err := h.Desk.CheckAvailability(c.Request.Context(), candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"conflict": result.Conflict}
	if result.Conflict {
		resp["blocking"] = gin.H{
			"booking_number": result.Blocking.BookingNumber,
			"guest_name":     result.Blocking.GuestName,
			"check_in":       result.Blocking.CheckIn.Format(dateLayout),
			"check_out":      result.Blocking.CheckOut.Format(dateLayout),
		}
	}
	c.JSON(http.StatusOK, resp)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
