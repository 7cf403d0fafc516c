package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-sync/internal/models"
)

// Repository is the salon aggregate store. Lookups of a missing id return
// an error matching storeerr.ErrNotFound.
type Repository interface {
	// -------- Salon --------
	CreateSalon(ctx context.Context, s *models.Salon) error
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	ListSalons(ctx context.Context, f SalonFilter) ([]models.Salon, error)
	UpdateSalon(ctx context.Context, id string, p SalonPatch) error

	// -------- Connection --------
	CreateConnection(ctx context.Context, c *models.SalonConnection) error
	ListConnections(ctx context.Context, f ConnectionFilter) ([]models.SalonConnection, error)
	UpdateConnection(ctx context.Context, id string, p ConnectionPatch) error

	// -------- QR Session --------
	CreateSession(ctx context.Context, s *models.QRSession) error
	ListSessions(ctx context.Context, f SessionFilter) ([]models.QRSession, error)
	UpdateSession(ctx context.Context, id string, p SessionPatch) error
}
