package booking

import "strings"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// DefaultStatus is what the bot means when it writes no status at all.
const DefaultStatus = StatusConfirmed

// ParseStatus maps a stored value onto the known statuses. Anything
// unrecognised is treated as confirmed.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted:
		return st
	}
	return DefaultStatus
}
