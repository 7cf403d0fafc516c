package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/models"
)

const (
	DefaultBarber = "Unknown"
	DefaultSource = "whatsapp"
)

// Booking is the canonical appointment shape. BarberName and Date are never
// empty once a record went through Normalize.
type Booking struct {
	ID          string     `json:"id"`
	ContactName string     `json:"contactName"`
	Phone       string     `json:"phone"`
	ServiceName string     `json:"serviceName"`
	ServiceID   string     `json:"serviceId"`
	BarberName  string     `json:"barberName"`
	TimeSlot    string     `json:"timeSlot"`
	Date        string     `json:"date"`
	Source      string     `json:"source"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type Repository interface {
	ListDocuments(ctx context.Context) ([]models.BookingDocument, error)

	CreateDocument(
		ctx context.Context,
		doc *models.BookingDocument,
	) error
}
