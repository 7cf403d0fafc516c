package models

import "time"

// BookingDocument is a booking exactly as the WhatsApp bot wrote it. Data
// may use either field naming convention; nothing reads it without going
// through the booking normalizer.
type BookingDocument struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Data JSONB  `gorm:"type:jsonb;not null;default:'{}'" json:"data"`

	InsertedAt time.Time `gorm:"autoCreateTime;index" json:"inserted_at"`
}

func (BookingDocument) TableName() string {
	return "bookings"
}
