package stay

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(checkIn, checkOut string) DateRange {
	return NewDateRange(date(checkIn), date(checkOut))
}

func TestNights(t *testing.T) {
	// a 1-night stay
	if n := rng("2025-06-01", "2025-06-02").Nights(); n != 1 {
		t.Fatalf("expected 1 night, got %d", n)
	}
	if n := rng("2025-06-01", "2025-06-08").Nights(); n != 7 {
		t.Fatalf("expected 7 nights, got %d", n)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"identical", rng("2025-06-01", "2025-06-05"), rng("2025-06-01", "2025-06-05"), true},
		{"partial", rng("2025-06-01", "2025-06-05"), rng("2025-06-04", "2025-06-10"), true},
		{"contained", rng("2025-06-01", "2025-06-10"), rng("2025-06-03", "2025-06-05"), true},
		{"disjoint", rng("2025-06-01", "2025-06-05"), rng("2025-06-10", "2025-06-12"), false},
		// same-day turnover: checkout day equals the other booking's check-in
		{"same day turnover", rng("2025-06-05", "2025-06-10"), rng("2025-06-01", "2025-06-05"), false},
		{"same day turnover reversed", rng("2025-06-01", "2025-06-05"), rng("2025-06-05", "2025-06-10"), false},
	}

	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// the predicate is symmetric
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Fatalf("%s: reversed Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	r := rng("2025-06-01", "2025-06-03")

	if !r.Contains(date("2025-06-01")) {
		t.Fatal("check-in day must be inside the range")
	}
	if !r.Contains(date("2025-06-02")) {
		t.Fatal("middle day must be inside the range")
	}
	if r.Contains(date("2025-06-03")) {
		t.Fatal("check-out day must be outside the range")
	}
}

func TestDates(t *testing.T) {
	dates := rng("2025-06-01", "2025-06-03").Dates()
	if len(dates) != 2 {
		t.Fatalf("expected 2 nights, got %d", len(dates))
	}
	if dates[0].Format(DateLayout) != "2025-06-01" || dates[1].Format(DateLayout) != "2025-06-02" {
		t.Fatalf("unexpected dates: %v", dates)
	}

	if got := rng("2025-06-03", "2025-06-01").Dates(); got != nil {
		t.Fatalf("inverted range should enumerate no dates, got %v", got)
	}
}

func TestAnyOverlap(t *testing.T) {
	existing := []DateRange{
		rng("2025-06-01", "2025-06-05"),
		rng("2025-06-20", "2025-06-25"),
	}

	if !AnyOverlap(rng("2025-06-04", "2025-06-06"), existing) {
		t.Fatal("expected overlap with first range")
	}
	if AnyOverlap(rng("2025-06-05", "2025-06-10"), existing) {
		t.Fatal("back-to-back range must not conflict")
	}
	if AnyOverlap(rng("2025-06-10", "2025-06-12"), nil) {
		t.Fatal("no ranges, no conflict")
	}
}
