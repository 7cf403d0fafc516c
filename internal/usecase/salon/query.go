package salon

import (
	"context"

	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

type GetSalon struct {
	repo domain.Repository
}

func NewGetSalon(repo domain.Repository) *GetSalon {
	return &GetSalon{repo: repo}
}

func (uc *GetSalon) Execute(ctx context.Context, salonID string) (*models.Salon, error) {
	return uc.repo.GetSalon(ctx, salonID)
}

// ListSalons lists every salon, or only connected / disconnected ones when
// connected is set.
type ListSalons struct {
	repo domain.Repository
}

func NewListSalons(repo domain.Repository) *ListSalons {
	return &ListSalons{repo: repo}
}

func (uc *ListSalons) Execute(ctx context.Context, connected *bool) ([]models.Salon, error) {
	out, err := uc.repo.ListSalons(ctx, domain.SalonFilter{Connected: connected})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Salon{}
	}
	return out, nil
}

// IsSalonConnected reports whether the salon has a live connection row.
// An unknown salon is not connected.
type IsSalonConnected struct {
	repo domain.Repository
}

func NewIsSalonConnected(repo domain.Repository) *IsSalonConnected {
	return &IsSalonConnected{repo: repo}
}

func (uc *IsSalonConnected) Execute(ctx context.Context, salonID string) (bool, error) {
	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		if storeerr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return hasLiveConnection(ctx, uc.repo, salonID)
}

func hasLiveConnection(ctx context.Context, repo domain.Repository, salonID string) (bool, error) {
	conns, err := repo.ListConnections(ctx, domain.ConnectionFilter{
		SalonID: salonID,
		Status:  domain.ConnectionConnected,
	})
	if err != nil {
		return false, err
	}
	return len(conns) > 0, nil
}

func liveSessions(ctx context.Context, repo domain.Repository, salonID string) ([]models.QRSession, error) {
	return repo.ListSessions(ctx, domain.SessionFilter{
		SalonID:  salonID,
		Statuses: domain.LiveSessionStatuses,
	})
}
