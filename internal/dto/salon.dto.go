package dto

import "time"

type SalonStatusDTO struct {
	SalonID           string     `json:"salon_id"`
	Connected         bool       `json:"connected"`
	WhatsAppConnected bool       `json:"whatsapp_connected"`
	LastActive        *time.Time `json:"last_active,omitempty"`
}
