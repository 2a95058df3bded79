package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/app/dto"
	"resortdesk/internal/domain/room"
)

type RoomHandler struct {
	Rooms room.Repository
}

func (h RoomHandler) List(c *gin.Context) {
	items, err := h.Rooms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.Room, 0, len(items))
	for _, rm := range items {
		out = append(out, dto.MapRoom(rm))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

var _ RoomHTTP = RoomHandler{}
