package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/timezone"
)

// Normalize builds the canonical booking for rec. For every field the
// current key wins over the legacy key, which wins over the default. now
// supplies both the fallback creation time and the day used for a missing
// date.
func Normalize(rec Record, now time.Time) Booking {
	cur, old := rec.Current, rec.Legacy

	b := Booking{
		ID:          rec.ID,
		ContactName: firstNonBlank(cur.ContactName, cur.CustomerName, old.CustomerName),
		Phone:       firstNonBlank(cur.Phone, old.PhoneNumber),
		ServiceName: firstNonBlank(cur.ServiceName, old.Service),
		ServiceID:   firstNonBlank(cur.ServiceID, old.ServiceID),
		BarberName:  firstNonBlank(cur.BarberName, old.Barber, DefaultBarber),
		TimeSlot:    firstNonBlank(cur.TimeSlot, old.TimeSlot),
		Date:        normalizeDate(cur.Date, now),
		Source:      firstNonBlank(cur.Source, old.BookingSource, DefaultSource),
		Status:      ParseStatus(cur.Status),
	}

	if t, ok := firstTimestamp(now.Location(), cur.CreatedAt, old.CreatedAt); ok {
		b.CreatedAt = t
	} else {
		// Unreadable creation times sort as the newest booking.
		b.CreatedAt = now
	}

	if t, ok := firstTimestamp(now.Location(), cur.UpdatedAt, old.UpdatedAt); ok {
		b.UpdatedAt = &t
	}

	return b
}

// NormalizeDocuments decodes, normalizes and orders a full snapshot of the
// bookings collection, newest first.
func NormalizeDocuments(docs []models.BookingDocument, now time.Time) []Booking {
	out := make([]Booking, 0, len(docs))
	for _, doc := range docs {
		rec, err := DecodeRecord(doc.ID, doc.Data)
		if err != nil {
			rec = Record{ID: doc.ID}
		}
		out = append(out, Normalize(rec, now))
	}
	SortByCreatedDesc(out)
	return out
}

// SortByCreatedDesc orders bookings newest first. Equal timestamps keep
// their store order.
func SortByCreatedDesc(bs []Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].CreatedAt.After(bs[j].CreatedAt)
	})
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// normalizeDate renders v as YYYY-MM-DD when it can be read as a day. A
// present but unreadable value is kept verbatim for display.
func normalizeDate(v any, now time.Time) string {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return timezone.DateString(now)
		}
		if _, err := timezone.ParseDate(s, now.Location()); err == nil {
			return s
		}
		if t, err := dateparse.ParseIn(s, now.Location()); err == nil {
			return timezone.DateString(t.In(now.Location()))
		}
		return s
	}

	if t, ok := parseTimestamp(v, now.Location()); ok {
		return timezone.DateString(t.In(now.Location()))
	}
	if v != nil {
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			return s
		}
	}
	return timezone.DateString(now)
}

func firstTimestamp(loc *time.Location, values ...any) (time.Time, bool) {
	for _, v := range values {
		if t, ok := parseTimestamp(v, loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseTimestamp accepts time values, RFC 3339 and other common textual
// layouts, unix seconds or milliseconds, and {seconds, nanoseconds} maps as
// exported by document databases.
func parseTimestamp(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		parsed, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case map[string]any:
		return parseSecondsMap(t)
	case bool:
		return time.Time{}, false
	}

	n, err := cast.ToInt64E(v)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(n), true
	}
	return time.Unix(n, 0), true
}

func parseSecondsMap(m map[string]any) (time.Time, bool) {
	secs, ok := lookupInt(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := lookupInt(m, "nanoseconds", "_nanoseconds")
	return time.Unix(secs, nanos), true
}

func lookupInt(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		if raw, ok := m[k]; ok {
			if n, err := cast.ToInt64E(raw); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
