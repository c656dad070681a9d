package stay

import (
	"math"
	"time"
)

// RateCard carries everything the calculator needs to know about a property,
// decoupled from the persistence layer.
type RateCard struct {
	NightlyPrice    float64
	CleaningFee     float64
	SecurityDeposit float64
	MinNights       int
	MaxNights       int // 0 = no upper bound
	MaxGuests       int

	// CustomPrices overrides the base nightly price per date,
	// keyed by DateLayout.
	CustomPrices map[string]float64
}

// PriceFor resolves the nightly price for a single date.
func (rc RateCard) PriceFor(date time.Time) float64 {
	if p, ok := rc.CustomPrices[Day(date).Format(DateLayout)]; ok {
		return p
	}
	return rc.NightlyPrice
}

// TaxPolicy is the configured tax rule: a percentage applied to the subtotal
// plus the cleaning fee. It must be the same policy at quote time and at
// booking-persist time.
type TaxPolicy struct {
	RatePercent float64
}

func (tp TaxPolicy) taxOn(subtotal, cleaningFee float64) float64 {
	return (subtotal + cleaningFee) * tp.RatePercent / 100
}

// NightRate is one line of the per-night breakdown.
type NightRate struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Quote is a full pricing breakdown. Monetary fields are rounded to
// 2 decimals at final aggregation only, so Total is exactly the sum of its
// parts.
type Quote struct {
	Nights          int         `json:"nights"`
	NightlyRates    []NightRate `json:"nightlyRates"`
	Subtotal        float64     `json:"subtotal"`
	CleaningFee     float64     `json:"cleaningFee"`
	SecurityDeposit float64     `json:"securityDeposit"`
	Taxes           float64     `json:"taxes"`
	TotalPrice      float64     `json:"totalPrice"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r DateRange) validate(rates RateCard, guests int) error {
	inputErr := newInputError()

	if !r.Valid() {
		inputErr.addError("checkIn", "checkIn must be before checkOut")
		return inputErr
	}

	nights := r.Nights()
	if guests < 1 {
		inputErr.addError("guests", "at least one guest is required")
	}
	if rates.MaxGuests > 0 && guests > rates.MaxGuests {
		inputErr.addError("guests", "guest count exceeds the property capacity")
	}
	if rates.MinNights > 0 && nights < rates.MinNights {
		inputErr.addError("nights", "stay is shorter than the minimum nights")
	}
	if rates.MaxNights > 0 && nights > rates.MaxNights {
		inputErr.addError("nights", "stay is longer than the maximum nights")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// Calculate prices a stay: per-night custom prices (base price fallback),
// flat cleaning fee and security deposit, taxes per policy. Intermediate
// sums stay unrounded to avoid compounding per-night rounding errors.
func Calculate(rates RateCard, tax TaxPolicy, r DateRange, guests int) (*Quote, error) {
	r = NewDateRange(r.CheckIn, r.CheckOut)

	if err := r.validate(rates, guests); err != nil {
		return nil, err
	}

	var subtotal float64
	nightlyRates := make([]NightRate, 0, r.Nights())
	for _, date := range r.Dates() {
		price := rates.PriceFor(date)
		subtotal += price
		nightlyRates = append(nightlyRates, NightRate{
			Date:  date.Format(DateLayout),
			Price: price,
		})
	}

	quote := &Quote{
		Nights:          r.Nights(),
		NightlyRates:    nightlyRates,
		Subtotal:        round2(subtotal),
		CleaningFee:     round2(rates.CleaningFee),
		SecurityDeposit: round2(rates.SecurityDeposit),
		Taxes:           round2(tax.taxOn(subtotal, rates.CleaningFee)),
	}
	quote.TotalPrice = round2(quote.Subtotal + quote.CleaningFee + quote.SecurityDeposit + quote.Taxes)

	return quote, nil
}
