package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
)

// BookingCSV is one exported row.
type BookingCSV struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	TimeSlot    string `csv:"time_slot"`
	BarberName  string `csv:"barber_name"`
	ContactName string `csv:"contact_name"`
	Phone       string `csv:"phone"`
	ServiceName string `csv:"service_name"`
	ServiceID   string `csv:"service_id"`
	Source      string `csv:"source"`
	Status      string `csv:"status"`
	CreatedAt   string `csv:"created_at"`
}

func NewBookingCSVRows(bs []booking.Booking, loc *time.Location) []*BookingCSV {
	rows := make([]*BookingCSV, 0, len(bs))
	for _, b := range bs {
		rows = append(rows, &BookingCSV{
			ID:          b.ID,
			Date:        b.Date,
			TimeSlot:    b.TimeSlot,
			BarberName:  b.BarberName,
			ContactName: b.ContactName,
			Phone:       b.Phone,
			ServiceName: b.ServiceName,
			ServiceID:   b.ServiceID,
			Source:      b.Source,
			Status:      string(b.Status),
			CreatedAt:   b.CreatedAt.In(loc).Format(time.RFC3339),
		})
	}
	return rows
}
