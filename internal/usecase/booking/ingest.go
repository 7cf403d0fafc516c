package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

// IngestBooking stores a booking document exactly as the bot sent it.
// Normalization happens on read, so either naming convention is accepted.
type IngestBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	newID func() string
}

func NewIngestBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *IngestBooking {
	return &IngestBooking{
		repo:  repo,
		audit: audit,
		newID: uuid.NewString,
	}
}

// Execute stores data and returns the document id: data's own "id" when it
// is a non-empty string, a fresh one otherwise.
func (uc *IngestBooking) Execute(ctx context.Context, data map[string]any) (string, error) {
	if len(data) == 0 {
		return "", httperr.ErrBusiness("empty_booking")
	}

	body := make(models.JSONB, len(data))
	for k, v := range data {
		body[k] = v
	}

	id, _ := body["id"].(string)
	id = strings.TrimSpace(id)
	delete(body, "id")
	if id == "" {
		id = uc.newID()
	}

	doc := &models.BookingDocument{ID: id, Data: body}
	if err := uc.repo.CreateDocument(ctx, doc); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    "bot",
		Action:   "booking_ingested",
		Entity:   "booking",
		EntityID: id,
	})

	return id, nil
}
