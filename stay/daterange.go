// Package stay holds the booking availability, pricing and calendar logic.
// Everything here is pure: no persistence, no framework types. Handlers load
// rows, feed them in, and render the result.
package stay

import "time"

// DateLayout is the wire format for all dates in the API.
const DateLayout = "2006-01-02"

// DateRange is a half-open interval [CheckIn, CheckOut): the checkout day
// itself is excluded, which is what allows same-day turnover.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange normalizes both endpoints to midnight UTC.
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the range is well-formed (check-in strictly before
// check-out).
func (r DateRange) Valid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

// Nights is the stay length in whole days.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps is the interval-overlap test for half-open ranges:
// [a, b) and [c, d) overlap iff a < d && c < b. A checkout day equal to
// another booking's check-in day is NOT an overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Contains reports whether the date d falls inside [CheckIn, CheckOut).
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Dates enumerates every night of the stay, check-out day excluded.
func (r DateRange) Dates() []time.Time {
	if !r.Valid() {
		return nil
	}
	dates := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// AnyOverlap reports whether the range collides with at least one of the
// given ranges.
func AnyOverlap(r DateRange, existing []DateRange) bool {
	for _, e := range existing {
		if r.Overlaps(e) {
			return true
		}
	}
	return false
}
