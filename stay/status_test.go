package stay

import (
	"testing"
	"time"
)

func TestIsActive(t *testing.T) {
	for _, s := range []string{StatusConfirmed, StatusCheckedIn, StatusCheckedOut} {
		if !IsActive(s) {
			t.Fatalf("%s should block the date range", s)
		}
	}
	for _, s := range []string{StatusPending, StatusCompleted, StatusCancelled} {
		if IsActive(s) {
			t.Fatalf("%s should not block the date range", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusCancelled},
		{StatusCheckedIn, StatusCheckedOut},
		{StatusCheckedOut, StatusCompleted},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{StatusPending, StatusCheckedIn},  // no skipping
		{StatusConfirmed, StatusCompleted},
		{StatusCheckedIn, StatusCancelled}, // too late to cancel
		{StatusCompleted, StatusConfirmed}, // terminal
		{StatusCancelled, StatusPending},   // terminal
		{StatusCheckedOut, StatusCheckedIn},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be denied", tr[0], tr[1])
		}
	}
}

func TestConfirmWindowOpen(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	if !ConfirmWindowOpen(now.Add(time.Hour), now) {
		t.Fatal("a future deadline must keep the window open")
	}
	if ConfirmWindowOpen(now.Add(-time.Hour), now) {
		t.Fatal("an expired request must not be confirmable")
	}
	if ConfirmWindowOpen(now, now) {
		t.Fatal("the deadline itself is outside the window")
	}
	if !ConfirmWindowOpen(time.Time{}, now) {
		t.Fatal("no deadline means no expiry")
	}
}
