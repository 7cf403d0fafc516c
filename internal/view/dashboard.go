package view

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
)

type Filters struct {
	Barber string
	Date   DateFilter
}

// Dashboard is one rendering of the booking screen. Barbers is computed
// over the full snapshot; Bookings and Stats over the filtered set.
type Dashboard struct {
	Bookings  []booking.Booking
	Barbers   []BarberCount
	Stats     Stats
	Filters   Filters
	DateLabel string
	AllCount  int
}

func Build(all []booking.Booking, f Filters, now time.Time) Dashboard {
	if f.Date == "" {
		f.Date = DateAll
	}

	active := FilterByDate(FilterByBarber(all, f.Barber), f.Date, now)

	return Dashboard{
		Bookings:  active,
		Barbers:   BarberCounts(all),
		Stats:     ComputeStats(active, now),
		Filters:   f,
		DateLabel: DateFilterLabel(f.Date, len(active)),
		AllCount:  len(all),
	}
}

type memoKey struct {
	version uint64
	filters Filters
	day     int
}

// Memo caches the last Build per snapshot version, filters and local day,
// so repeated reads of an unchanged snapshot cost nothing.
type Memo struct {
	mu   sync.Mutex
	key  memoKey
	val  Dashboard
	full bool
}

func (m *Memo) Build(version uint64, all []booking.Booking, f Filters, now time.Time) Dashboard {
	if f.Date == "" {
		f.Date = DateAll
	}
	key := memoKey{version: version, filters: f, day: dayKey(now)}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.full && m.key == key {
		return m.val
	}

	m.val = Build(all, f, now)
	m.key = key
	m.full = true
	return m.val
}
