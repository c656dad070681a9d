package stay

import "testing"

func baseRates() RateCard {
	return RateCard{
		NightlyPrice:    100,
		CleaningFee:     30,
		SecurityDeposit: 200,
		MinNights:       1,
		MaxGuests:       4,
	}
}

func TestCalculateCustomPriceOverride(t *testing.T) {
	rates := baseRates()
	rates.CustomPrices = map[string]float64{"2025-06-02": 150}

	quote, err := Calculate(rates, TaxPolicy{}, rng("2025-06-01", "2025-06-03"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Nights != 2 {
		t.Fatalf("expected 2 nights, got %d", quote.Nights)
	}
	// 100 base + 150 override
	if quote.Subtotal != 250 {
		t.Fatalf("expected subtotal 250, got %v", quote.Subtotal)
	}
	if len(quote.NightlyRates) != 2 {
		t.Fatalf("expected 2 nightly rates, got %d", len(quote.NightlyRates))
	}
	if quote.NightlyRates[0].Price != 100 || quote.NightlyRates[1].Price != 150 {
		t.Fatalf("unexpected breakdown: %+v", quote.NightlyRates)
	}
}

func TestCalculateTaxesAndTotal(t *testing.T) {
	quote, err := Calculate(baseRates(), TaxPolicy{RatePercent: 10}, rng("2025-06-01", "2025-06-03"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// taxes = 10% of (subtotal + cleaning fee) = 10% of 230
	if quote.Taxes != 23 {
		t.Fatalf("expected taxes 23, got %v", quote.Taxes)
	}
	if quote.TotalPrice != 453 {
		t.Fatalf("expected total 453, got %v", quote.TotalPrice)
	}
}

func TestCalculateTotalIsExactSumOfParts(t *testing.T) {
	rates := baseRates()
	rates.NightlyPrice = 99.99
	rates.CleaningFee = 33.33
	rates.SecurityDeposit = 150.55
	rates.CustomPrices = map[string]float64{"2025-06-02": 110.01}

	quote, err := Calculate(rates, TaxPolicy{RatePercent: 7.5}, rng("2025-06-01", "2025-06-04"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := round2(quote.Subtotal + quote.CleaningFee + quote.SecurityDeposit + quote.Taxes)
	if quote.TotalPrice != want {
		t.Fatalf("total %v drifted from the sum of its parts %v", quote.TotalPrice, want)
	}
}

func TestCalculateRejectsInvalidRange(t *testing.T) {
	_, err := Calculate(baseRates(), TaxPolicy{}, rng("2025-06-03", "2025-06-01"), 2)
	inputErr := IsInputError(err)
	if inputErr == nil {
		t.Fatalf("expected input error, got %v", err)
	}
	if !inputErr.Has("checkIn") {
		t.Fatalf("expected checkIn violation, got %v", inputErr.Fields())
	}
}

func TestCalculateRejectsTooManyGuests(t *testing.T) {
	// guests=5 against maxGuests=4
	_, err := Calculate(baseRates(), TaxPolicy{}, rng("2025-06-01", "2025-06-03"), 5)
	inputErr := IsInputError(err)
	if inputErr == nil {
		t.Fatalf("expected input error, got %v", err)
	}
	if !inputErr.Has("guests") {
		t.Fatalf("expected guests violation, got %v", inputErr.Fields())
	}
}

func TestCalculateEnforcesNightBounds(t *testing.T) {
	rates := baseRates()
	rates.MinNights = 3
	rates.MaxNights = 5

	_, err := Calculate(rates, TaxPolicy{}, rng("2025-06-01", "2025-06-03"), 2)
	if inputErr := IsInputError(err); inputErr == nil || !inputErr.Has("nights") {
		t.Fatalf("expected nights violation for a too-short stay, got %v", err)
	}

	_, err = Calculate(rates, TaxPolicy{}, rng("2025-06-01", "2025-06-10"), 2)
	if inputErr := IsInputError(err); inputErr == nil || !inputErr.Has("nights") {
		t.Fatalf("expected nights violation for a too-long stay, got %v", err)
	}

	if _, err = Calculate(rates, TaxPolicy{}, rng("2025-06-01", "2025-06-05"), 2); err != nil {
		t.Fatalf("4 nights within [3,5] should pass, got %v", err)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	rates := baseRates()
	rates.CustomPrices = map[string]float64{"2025-06-02": 150}

	a, err := Calculate(rates, TaxPolicy{RatePercent: 10}, rng("2025-06-01", "2025-06-05"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Calculate(rates, TaxPolicy{RatePercent: 10}, rng("2025-06-01", "2025-06-05"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TotalPrice != b.TotalPrice || a.Subtotal != b.Subtotal || a.Taxes != b.Taxes {
		t.Fatalf("repeated calls disagree: %+v vs %+v", a, b)
	}
}
