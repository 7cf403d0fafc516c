package models

import "time"

type QRSession struct {
	ID      string `gorm:"primaryKey;size:64" json:"session_id"`
	SalonID string `gorm:"size:64;index;not null" json:"salon_id"`

	// QRCode is the rendered image payload; ConnectURL is the encoded content.
	QRCode     string `gorm:"column:qr_code;type:text" json:"qr_code"`
	ConnectURL string `gorm:"type:text" json:"connect_url"`

	Status    string    `gorm:"size:20;index;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (QRSession) TableName() string {
	return "qr_sessions"
}
