package stay

import (
	"time"

	"golang.org/x/exp/slices"
)

// Booking statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ActiveStatuses are the states that block a date range from re-booking.
// Pending requests do not hold dates; the range is only taken once the host
// confirms.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn, StatusCheckedOut}

// IsActive reports whether a booking in the given status blocks its range.
func IsActive(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

// transitions is the booking state machine:
// pending -> confirmed -> checked_in -> checked_out -> completed, with
// cancellation allowed from pending or confirmed. completed and cancelled
// are terminal.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {StatusCompleted},
}

// CanTransition reports whether a booking may move from one status to
// another. No transition skips states except cancellation.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// ConfirmWindowOpen reports whether a pending request is still inside its
// confirmation window. A zero ExpiresAt means no window was set.
func ConfirmWindowOpen(expiresAt, now time.Time) bool {
	return expiresAt.IsZero() || now.Before(expiresAt)
}
