package salon

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

// CleanupExpiredSessions marks live QR sessions past their expiry as
// expired. It runs on a schedule, never as a side effect of reads.
type CleanupExpiredSessions struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewCleanupExpiredSessions(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CleanupExpiredSessions {
	return &CleanupExpiredSessions{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Pending lists the sessions the next Execute would expire.
func (uc *CleanupExpiredSessions) Pending(ctx context.Context) ([]models.QRSession, error) {
	now := uc.now()
	return uc.repo.ListSessions(ctx, domain.SessionFilter{
		Statuses:      domain.LiveSessionStatuses,
		ExpiresBefore: &now,
	})
}

// Execute returns how many sessions were expired.
func (uc *CleanupExpiredSessions) Execute(ctx context.Context) (int, error) {
	expired, err := uc.Pending(ctx)
	if err != nil {
		return 0, err
	}

	status := domain.SessionExpired
	for _, s := range expired {
		if err := uc.repo.UpdateSession(ctx, s.ID, domain.SessionPatch{Status: &status}); err != nil {
			return 0, err
		}
	}

	if len(expired) > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "sessions_expired",
			Entity:   "qr_session",
			Metadata: map[string]any{"count": len(expired)},
		})
	}

	return len(expired), nil
}
