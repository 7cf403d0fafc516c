package salon

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/qrcode"
)

type Renderer interface {
	Render(ctx context.Context, content, caption, key string) (string, error)
}

// QRCode is an issued (or still live) connection code.
type QRCode struct {
	SessionID string    `json:"session_id"`
	Payload   string    `json:"qr_code"`
	Content   string    `json:"connect_url"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	Reused    bool      `json:"reused"`
}

func qrFromSession(s *models.QRSession, reused bool) *QRCode {
	return &QRCode{
		SessionID: s.ID,
		Payload:   s.QRCode,
		Content:   s.ConnectURL,
		Status:    s.Status,
		ExpiresAt: s.ExpiresAt,
		Reused:    reused,
	}
}

// GenerateQRCode issues a connection code for a disconnected salon. It
// returns nil when the salon is already connected and the existing code
// while a session is still live.
type GenerateQRCode struct {
	repo     domain.Repository
	renderer Renderer
	audit    *audit.Dispatcher

	now   func() time.Time
	newID func() string
}

func NewGenerateQRCode(
	repo domain.Repository,
	renderer Renderer,
	audit *audit.Dispatcher,
) *GenerateQRCode {
	return &GenerateQRCode{
		repo:     repo,
		renderer: renderer,
		audit:    audit,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (uc *GenerateQRCode) Execute(ctx context.Context, salonID string) (*QRCode, error) {
	salon, err := uc.repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	connected, err := hasLiveConnection(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, nil
	}

	live, err := liveSessions(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}
	if len(live) > 0 {
		uc.audit.Dispatch(audit.Event{
			SalonID:  salonID,
			Action:   "qr_reused",
			Entity:   "qr_session",
			EntityID: live[0].ID,
		})
		return qrFromSession(&live[0], true), nil
	}

	now := uc.now()
	sessionID := uc.newID()
	content := qrcode.ConnectURL(salonID, sessionID, now)

	payload, err := uc.renderer.Render(
		ctx,
		content,
		qrcode.Caption(salon.Name),
		"qr/"+salonID+"/"+sessionID,
	)
	if err != nil {
		return nil, err
	}

	session := &models.QRSession{
		ID:         sessionID,
		SalonID:    salonID,
		QRCode:     payload,
		ConnectURL: content,
		Status:     string(domain.SessionActive),
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.QRSessionTTL),
	}
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSalon(ctx, salonID, domain.SalonPatch{
		QRCodeURL: &payload,
		UpdatedAt: &now,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Action:   "qr_issued",
		Entity:   "qr_session",
		EntityID: sessionID,
		Metadata: map[string]any{"expires_at": session.ExpiresAt},
	})

	return qrFromSession(session, false), nil
}
