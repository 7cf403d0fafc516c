package models

import "time"

// SalonConnection is one connection attempt of a salon's WhatsApp
// instance. Historical rows are kept.
type SalonConnection struct {
	ID                 string `gorm:"primaryKey;size:64" json:"id"`
	SalonID            string `gorm:"size:64;index;not null" json:"salon_id"`
	WhatsAppInstanceID string `gorm:"column:whatsapp_instance_id;size:100" json:"whatsapp_instance_id"`
	Status             string `gorm:"size:20;index;not null" json:"status"`

	ConnectedAt   *time.Time `json:"connected_at,omitempty"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
}

func (SalonConnection) TableName() string {
	return "salon_connections"
}
