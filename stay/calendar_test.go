package stay

import (
	"testing"
	"time"
)

func TestBuildMonthStatuses(t *testing.T) {
	rates := baseRates()
	rates.CustomPrices = map[string]float64{"2025-06-15": 175}

	bookings := []BookingSpan{
		{ID: 7, GuestName: "Aicha Mint", Range: rng("2025-06-10", "2025-06-12")},
	}
	blocks := []DateRange{
		// overlaps the booking on the 11th: booked wins
		rng("2025-06-11", "2025-06-14"),
	}

	days := BuildMonth(2025, time.June, bookings, blocks, rates)

	if len(days) != 30 {
		t.Fatalf("June has 30 days, got %d", len(days))
	}

	if d := days["2025-06-01"]; d.Status != DayAvailable || d.Price != 100 {
		t.Fatalf("unexpected day: %+v", d)
	}

	booked := days["2025-06-10"]
	if booked.Status != DayBooked || booked.BookingID != 7 || booked.GuestName != "Aicha Mint" {
		t.Fatalf("unexpected booked day: %+v", booked)
	}

	// booked takes priority over blocked
	if d := days["2025-06-11"]; d.Status != DayBooked {
		t.Fatalf("expected booked to win over blocked, got %+v", d)
	}

	// checkout day is not booked; here it is still blocked
	if d := days["2025-06-12"]; d.Status != DayBlocked {
		t.Fatalf("expected blocked on checkout day, got %+v", d)
	}
	if d := days["2025-06-13"]; d.Status != DayBlocked {
		t.Fatalf("expected blocked, got %+v", d)
	}
	// block end date is exclusive
	if d := days["2025-06-14"]; d.Status != DayAvailable {
		t.Fatalf("expected available after block, got %+v", d)
	}

	// price is attached regardless of status
	if d := days["2025-06-15"]; d.Price != 175 {
		t.Fatalf("expected custom price on the 15th, got %+v", d)
	}
}

func TestBuildMonthFebruary(t *testing.T) {
	days := BuildMonth(2024, time.February, nil, nil, baseRates())
	if len(days) != 29 {
		t.Fatalf("February 2024 has 29 days, got %d", len(days))
	}
	for _, d := range days {
		if d.Status != DayAvailable {
			t.Fatalf("empty month must be fully available, got %+v", d)
		}
		if d.BookingID != 0 || d.GuestName != "" {
			t.Fatalf("available day must not carry booking data: %+v", d)
		}
	}
}
