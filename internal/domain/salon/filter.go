package salon

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type SalonFilter struct {
	Connected *bool
}

func (f SalonFilter) Match(s *models.Salon) bool {
	return f.Connected == nil || s.WhatsAppConnected == *f.Connected
}

type ConnectionFilter struct {
	SalonID string
	Status  ConnectionStatus
}

func (f ConnectionFilter) Match(c *models.SalonConnection) bool {
	if f.SalonID != "" && c.SalonID != f.SalonID {
		return false
	}
	return f.Status == "" || c.Status == string(f.Status)
}

// SessionFilter selects QR sessions. ExpiresBefore is exclusive.
type SessionFilter struct {
	SalonID       string
	Statuses      []SessionStatus
	ExpiresBefore *time.Time
}

func (f SessionFilter) Match(s *models.QRSession) bool {
	if f.SalonID != "" && s.SalonID != f.SalonID {
		return false
	}
	if f.ExpiresBefore != nil && !s.ExpiresAt.Before(*f.ExpiresBefore) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if s.Status == string(st) {
			return true
		}
	}
	return false
}

// StatusStrings is the filter's statuses as stored column values.
func (f SessionFilter) StatusStrings() []string {
	out := make([]string, len(f.Statuses))
	for i, st := range f.Statuses {
		out[i] = string(st)
	}
	return out
}

// Listing order shared by every backend: salons oldest first, connections
// and sessions newest first.

func SortSalons(ss []models.Salon) {
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].CreatedAt.Before(ss[j].CreatedAt)
	})
}

func SortConnections(cs []models.SalonConnection) {
	sort.SliceStable(cs, func(i, j int) bool {
		return timeOrZero(cs[i].ConnectedAt).After(timeOrZero(cs[j].ConnectedAt))
	})
}

func SortSessions(ss []models.QRSession) {
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].CreatedAt.After(ss[j].CreatedAt)
	})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
