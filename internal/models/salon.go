package models

import "time"

type Salon struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	OwnerName string `gorm:"size:100;not null" json:"owner_name"`
	Phone     string `gorm:"size:20;not null" json:"phone"`
	Email     string `gorm:"size:100" json:"email,omitempty"`
	Address   string `gorm:"size:255" json:"address,omitempty"`

	WhatsAppConnected bool   `gorm:"column:whatsapp_connected;default:false;index" json:"whatsapp_connected"`
	QRCodeURL         string `gorm:"column:qr_code_url;type:text" json:"qr_code_url,omitempty"`

	ConnectionDate *time.Time `json:"connection_date,omitempty"`
	LastActive     *time.Time `json:"last_active,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (Salon) TableName() string {
	return "salons"
}
