package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	ucBooking "github.com/BruksfildServices01/salon-sync/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-sync/internal/view"
)

type FiltersDTO struct {
	Barber *string `json:"barber"`
	Date   string  `json:"date"`
}

type DashboardDTO struct {
	Bookings  []booking.Booking  `json:"bookings"`
	Barbers   []view.BarberCount `json:"barbers"`
	Stats     view.Stats         `json:"stats"`
	Filters   FiltersDTO         `json:"filters"`
	DateLabel string             `json:"dateLabel"`
	AllCount  int                `json:"allCount"`
	Loading   bool               `json:"loading"`
	Error     string             `json:"error,omitempty"`
	Version   uint64             `json:"version"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

func NewDashboardDTO(st ucBooking.State, d view.Dashboard) DashboardDTO {
	out := DashboardDTO{
		Bookings:  d.Bookings,
		Barbers:   d.Barbers,
		Stats:     d.Stats,
		Filters:   FiltersDTO{Date: string(d.Filters.Date)},
		DateLabel: d.DateLabel,
		AllCount:  d.AllCount,
		Loading:   st.Loading,
		Error:     st.Error,
		Version:   st.Version,
	}
	if d.Filters.Barber != "" {
		barber := d.Filters.Barber
		out.Filters.Barber = &barber
	}
	if !st.UpdatedAt.IsZero() {
		t := st.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
