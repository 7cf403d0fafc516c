// Package view derives what the dashboard shows from a booking snapshot:
// the barber frequency table, the barber and date filters and the summary
// stats. Everything here is a pure function of its inputs.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
	"github.com/BruksfildServices01/salon-sync/internal/timezone"
)

type DateFilter string

const (
	DateAll      DateFilter = "all"
	DateToday    DateFilter = "today"
	DateTomorrow DateFilter = "tomorrow"
	DateThisWeek DateFilter = "this-week"
)

// ParseDateFilter accepts the four filter modes. Empty means all.
func ParseDateFilter(s string) (DateFilter, error) {
	switch f := DateFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return DateAll, nil
	case DateAll, DateToday, DateTomorrow, DateThisWeek:
		return f, nil
	}
	return "", httperr.ErrBusiness("invalid_date_filter")
}

func DateFilterLabel(f DateFilter, count int) string {
	switch f {
	case DateToday:
		return fmt.Sprintf("Today (%d)", count)
	case DateTomorrow:
		return fmt.Sprintf("Tomorrow (%d)", count)
	case DateThisWeek:
		return fmt.Sprintf("This Week (%d)", count)
	default:
		return fmt.Sprintf("All Dates (%d)", count)
	}
}

type BarberCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BarberCounts tallies bookings per barber, most booked first. Ties keep
// the order in which barbers first appear in bs.
func BarberCounts(bs []booking.Booking) []BarberCount {
	index := make(map[string]int)
	out := make([]BarberCount, 0)

	for _, b := range bs {
		i, ok := index[b.BarberName]
		if !ok {
			i = len(out)
			index[b.BarberName] = i
			out = append(out, BarberCount{Name: b.BarberName})
		}
		out[i].Count++
	}

	// insertion sort keeps equal counts in encounter order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// FilterByBarber keeps exact matches on barber. An empty barber clears the
// filter and returns bs itself.
func FilterByBarber(bs []booking.Booking, barber string) []booking.Booking {
	if barber == "" {
		return bs
	}

	out := make([]booking.Booking, 0, len(bs))
	for _, b := range bs {
		if b.BarberName == barber {
			out = append(out, b)
		}
	}
	return out
}

// FilterByDate keeps bookings whose day falls in f's window around now's
// local day. DateAll returns bs itself. Dates that are not YYYY-MM-DD never
// match a window.
func FilterByDate(bs []booking.Booking, f DateFilter, now time.Time) []booking.Booking {
	if f == DateAll || f == "" {
		return bs
	}

	from, to := window(f, now)

	out := make([]booking.Booking, 0, len(bs))
	for _, b := range bs {
		d, err := timezone.ParseDate(b.Date, now.Location())
		if err != nil {
			continue
		}
		if k := dayKey(d); k >= from && k <= to {
			out = append(out, b)
		}
	}
	return out
}

// window returns the inclusive day range for f. The week runs from today
// to the coming Sunday boundary: today + (7 - weekday) days.
func window(f DateFilter, now time.Time) (int, int) {
	today := dayKey(now)
	switch f {
	case DateToday:
		return today, today
	case DateTomorrow:
		tomorrow := dayKey(addDays(now, 1))
		return tomorrow, tomorrow
	case DateThisWeek:
		return today, dayKey(addDays(now, 7-int(now.Weekday())))
	}
	return 0, -1
}

func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 12, 0, 0, 0, t.Location())
}

// dayKey encodes t's calendar day as yyyymmdd so days compare as ints.
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
