package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

// DateLayout is the calendar-day format used by booking documents.
const DateLayout = "2006-01-02"

var (
	mu      sync.RWMutex
	current = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault changes the zone used by Now and Default. Invalid names are
// ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	mu.Lock()
	current = tz
	mu.Unlock()
	return true
}

func Default() *time.Location {
	mu.RLock()
	tz := current
	mu.RUnlock()
	return Location(tz)
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Default())
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateString formats t's calendar day as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
