package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	"github.com/BruksfildServices01/salon-sync/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/salon-sync/internal/usecase/booking"
)

type IngestHandler struct {
	ingest *ucBooking.IngestBooking
}

func NewIngestHandler(ingest *ucBooking.IngestBooking) *IngestHandler {
	return &IngestHandler{ingest: ingest}
}

// Create accepts a raw booking document from the WhatsApp bot.
func (h *IngestHandler) Create(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid_request", "Body must be a JSON object.")
		return
	}

	id, err := h.ingest.Execute(c.Request.Context(), data)
	if err != nil {
		httperr.FromError(c, err, "booking_create_failed", "Failed to store booking.")
		return
	}

	httpresp.Created(c, gin.H{"id": id})
}
