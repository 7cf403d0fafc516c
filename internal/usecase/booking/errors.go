package booking

import "github.com/BruksfildServices01/salon-sync/internal/storeerr"

const (
	MsgPermissionDenied = "Permission denied. Please check the booking store access rules."
	MsgUnavailable      = "Booking service temporarily unavailable. Please try again."
	MsgUnauthenticated  = "Authentication required. Please check the booking store credentials."
	MsgFetchFailed      = "Failed to fetch bookings"
	MsgInitFailed       = "Failed to initialize bookings"
)

// ErrorMessage is the user-facing text for a failed subscription.
func ErrorMessage(err error) string {
	switch storeerr.CategoryOf(err) {
	case storeerr.CategoryPermissionDenied:
		return MsgPermissionDenied
	case storeerr.CategoryUnavailable:
		return MsgUnavailable
	case storeerr.CategoryUnauthenticated:
		return MsgUnauthenticated
	}
	return MsgFetchFailed
}
