package stay

import "time"

// Day statuses for the calendar view.
const (
	DayAvailable = "available"
	DayBooked    = "booked"
	DayBlocked   = "blocked"
)

// BookingSpan is the slice of a booking the calendar needs.
type BookingSpan struct {
	ID        uint
	GuestName string
	Range     DateRange
}

// CalendarDay is one cell of the month view. BookingID and GuestName are
// only set on booked days; handlers strip GuestName for viewers who are not
// the owner or an admin.
type CalendarDay struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
	BookingID uint    `json:"bookingID,omitempty"`
	GuestName string  `json:"guestName,omitempty"`
}

// BuildMonth merges bookings, blocked ranges and the rate card into a
// per-day map for the given month. Status priority: booked > blocked >
// available. The resolved nightly price is attached regardless of status,
// for display purposes.
func BuildMonth(year int, month time.Month, bookings []BookingSpan, blocks []DateRange, rates RateCard) map[string]CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	days := make(map[string]CalendarDay, next.Sub(first)/(24*time.Hour))
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		day := CalendarDay{
			Date:   d.Format(DateLayout),
			Status: DayAvailable,
			Price:  rates.PriceFor(d),
		}

		for _, block := range blocks {
			if block.Contains(d) {
				day.Status = DayBlocked
				break
			}
		}

		for _, booking := range bookings {
			if booking.Range.Contains(d) {
				day.Status = DayBooked
				day.BookingID = booking.ID
				day.GuestName = booking.GuestName
				break
			}
		}

		days[day.Date] = day
	}

	return days
}
