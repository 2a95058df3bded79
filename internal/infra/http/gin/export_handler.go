package ginserver

import (
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/infra/export"
	"resortdesk/internal/infra/storage/s3"
)

type ExportHandler struct {
	Reservations reservation.Repository
	Archive      s3.Uploader
	ResortName   string
}

func (h ExportHandler) ReservationsCSV(c *gin.Context) {
	items, err := h.Reservations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out, err := export.ReservationsCSV(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.archive(c, "csv", out, "text/csv")
	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

func (h ExportHandler) ReservationsPDF(c *gin.Context) {
	items, err := h.Reservations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	title := h.ResortName + " Reservations"
	out, err := export.ReservationsPDF(title, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.archive(c, "pdf", out, "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="reservations.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

// archive best-effort copies the report to object storage; download still
// succeeds when archival fails.
func (h ExportHandler) archive(c *gin.Context, ext string, content []byte, contentType string) {
	if h.Archive == nil {
		return
	}
	key := fmt.Sprintf("reservations/%s.%s", time.Now().UTC().Format("2006-01-02T150405"), ext)
	_ = h.Archive.Upload(c.Request.Context(), key, content, contentType)
}

var _ ExportHTTP = ExportHandler{}
