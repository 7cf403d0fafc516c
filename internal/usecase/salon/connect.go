package salon

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

// MarkSalonConnected records a WhatsApp instance as connected for a salon
// and closes out its live QR sessions.
type MarkSalonConnected struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now   func() time.Time
	newID func() string
}

func NewMarkSalonConnected(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkSalonConnected {
	return &MarkSalonConnected{
		repo:  repo,
		audit: audit,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (uc *MarkSalonConnected) Execute(
	ctx context.Context,
	salonID string,
	instanceID string,
) (*models.SalonConnection, error) {

	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}

	now := uc.now()
	conn := &models.SalonConnection{
		ID:                 uc.newID(),
		SalonID:            salonID,
		WhatsAppInstanceID: instanceID,
		Status:             string(domain.ConnectionConnected),
		ConnectedAt:        &now,
		LastHeartbeat:      &now,
	}
	if err := uc.repo.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}

	connected := true
	if err := uc.repo.UpdateSalon(ctx, salonID, domain.SalonPatch{
		WhatsAppConnected: &connected,
		ConnectionDate:    &now,
		LastActive:        &now,
		UpdatedAt:         &now,
	}); err != nil {
		return nil, err
	}

	live, err := liveSessions(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}
	status := domain.SessionConnected
	for _, s := range live {
		if err := uc.repo.UpdateSession(ctx, s.ID, domain.SessionPatch{Status: &status}); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Action:   "salon_connected",
		Entity:   "salon_connection",
		EntityID: conn.ID,
		Metadata: map[string]any{"whatsapp_instance_id": instanceID},
	})

	return conn, nil
}

// DisconnectSalon ends every live connection of a salon. It returns how
// many connection rows were closed.
type DisconnectSalon struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewDisconnectSalon(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DisconnectSalon {
	return &DisconnectSalon{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *DisconnectSalon) Execute(ctx context.Context, salonID string) (int, error) {
	conns, err := uc.repo.ListConnections(ctx, domain.ConnectionFilter{
		SalonID: salonID,
		Status:  domain.ConnectionConnected,
	})
	if err != nil {
		return 0, err
	}

	status := domain.ConnectionDisconnected
	for _, c := range conns {
		if err := uc.repo.UpdateConnection(ctx, c.ID, domain.ConnectionPatch{Status: &status}); err != nil {
			return 0, err
		}
	}

	now := uc.now()
	connected := false
	if err := uc.repo.UpdateSalon(ctx, salonID, domain.SalonPatch{
		WhatsAppConnected: &connected,
		UpdatedAt:         &now,
	}); err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Action:   "salon_disconnected",
		Entity:   "salon",
		EntityID: salonID,
		Metadata: map[string]any{"connections": len(conns)},
	})

	return len(conns), nil
}

// UpdateHeartbeat stamps the live connections and the salon as active now.
type UpdateHeartbeat struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUpdateHeartbeat(repo domain.Repository) *UpdateHeartbeat {
	return &UpdateHeartbeat{repo: repo, now: time.Now}
}

func (uc *UpdateHeartbeat) Execute(ctx context.Context, salonID string) error {
	conns, err := uc.repo.ListConnections(ctx, domain.ConnectionFilter{
		SalonID: salonID,
		Status:  domain.ConnectionConnected,
	})
	if err != nil {
		return err
	}

	now := uc.now()
	for _, c := range conns {
		if err := uc.repo.UpdateConnection(ctx, c.ID, domain.ConnectionPatch{LastHeartbeat: &now}); err != nil {
			return err
		}
	}

	return uc.repo.UpdateSalon(ctx, salonID, domain.SalonPatch{
		LastActive: &now,
		UpdatedAt:  &now,
	})
}
