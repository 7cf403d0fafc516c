package salon

import (
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/models"
)

// Patches carry only the fields an operation changes; nil means untouched.

type SalonPatch struct {
	WhatsAppConnected *bool
	QRCodeURL         *string
	ConnectionDate    *time.Time
	LastActive        *time.Time
	UpdatedAt         *time.Time
}

func (p SalonPatch) Apply(s *models.Salon) {
	if p.WhatsAppConnected != nil {
		s.WhatsAppConnected = *p.WhatsAppConnected
	}
	if p.QRCodeURL != nil {
		s.QRCodeURL = *p.QRCodeURL
	}
	if p.ConnectionDate != nil {
		s.ConnectionDate = p.ConnectionDate
	}
	if p.LastActive != nil {
		s.LastActive = p.LastActive
	}
	if p.UpdatedAt != nil {
		s.UpdatedAt = p.UpdatedAt
	}
}

type ConnectionPatch struct {
	Status        *ConnectionStatus
	LastHeartbeat *time.Time
}

func (p ConnectionPatch) Apply(c *models.SalonConnection) {
	if p.Status != nil {
		c.Status = string(*p.Status)
	}
	if p.LastHeartbeat != nil {
		c.LastHeartbeat = p.LastHeartbeat
	}
}

type SessionPatch struct {
	Status *SessionStatus
}

func (p SessionPatch) Apply(s *models.QRSession) {
	if p.Status != nil {
		s.Status = string(*p.Status)
	}
}
