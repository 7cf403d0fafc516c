package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-sync/internal/timezone"
)

// --------------------------------------------------
// Calendar-day query params
// --------------------------------------------------

// dayRange turns ?from=YYYY-MM-DD&to=YYYY-MM-DD into a half-open window
// in loc. to is inclusive of its whole day. Unparseable bounds are
// ignored.
func dayRange(fromStr, toStr string, loc *time.Location) (from, to *time.Time) {
	if fromStr != "" {
		if t, err := timezone.ParseDate(fromStr, loc); err == nil {
			from = &t
		}
	}

	if toStr != "" {
		if t, err := timezone.ParseDate(toStr, loc); err == nil {
			end := t.AddDate(0, 0, 1)
			to = &end
		}
	}

	return from, to
}
