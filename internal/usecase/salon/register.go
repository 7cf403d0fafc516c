package salon

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type RegisterSalonInput struct {
	Name      string
	OwnerName string
	Phone     string
	Email     string
	Address   string
}

// RegisterSalon stores a new, disconnected salon. Input is validated by
// the caller.
type RegisterSalon struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now   func() time.Time
	newID func() string
}

func NewRegisterSalon(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterSalon {
	return &RegisterSalon{
		repo:  repo,
		audit: audit,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (uc *RegisterSalon) Execute(
	ctx context.Context,
	in RegisterSalonInput,
) (*models.Salon, error) {

	s := &models.Salon{
		ID:                uc.newID(),
		Name:              in.Name,
		OwnerName:         in.OwnerName,
		Phone:             in.Phone,
		Email:             in.Email,
		Address:           in.Address,
		WhatsAppConnected: false,
		CreatedAt:         uc.now(),
	}

	if err := uc.repo.CreateSalon(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  s.ID,
		Action:   "salon_registered",
		Entity:   "salon",
		EntityID: s.ID,
	})

	return s, nil
}
