package view

import (
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
)

type Stats struct {
	Total           int `json:"total"`
	Today           int `json:"today"`
	UniqueCustomers int `json:"uniqueCustomers"`
}

// ComputeStats summarises bs. Today counts bookings created on now's local
// day. Customers are told apart by phone, or by name when the phone is
// missing; bookings with neither are not counted as customers.
func ComputeStats(bs []booking.Booking, now time.Time) Stats {
	today := dayKey(now)
	seen := make(map[string]struct{}, len(bs))

	st := Stats{Total: len(bs)}
	for _, b := range bs {
		if dayKey(b.CreatedAt.In(now.Location())) == today {
			st.Today++
		}
		if key := customerKey(b); key != "" {
			seen[key] = struct{}{}
		}
	}
	st.UniqueCustomers = len(seen)
	return st
}

func customerKey(b booking.Booking) string {
	switch {
	case b.Phone != "":
		return "phone:" + b.Phone
	case b.ContactName != "":
		return "name:" + b.ContactName
	}
	return ""
}
