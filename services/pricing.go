package services

import (
	"github.com/shopspring/decimal"
)

// Duration-tier discount rates. The four tiers are the only rental durations
// the storefront sells.
var discountRates = map[int]decimal.Decimal{
	1:  decimal.Zero,
	3:  decimal.NewFromFloat(0.04),
	6:  decimal.NewFromFloat(0.08),
	12: decimal.NewFromFloat(0.12),
}

var insuranceMultiplier = decimal.NewFromFloat(1.10)

// ValidDuration reports whether months is a sellable rental duration.
func ValidDuration(months int) bool {
	_, ok := discountRates[months]
	return ok
}

// QuoteInput carries everything the pricing engine needs. All prices are
// integer ISK; legacy free-text prices must go through utils.ParsePriceISK
// before they get here.
type QuoteInput struct {
	BasePrice      int64
	DurationMonths int

	// One entry per selected optional accessory (screen, keyboard, mouse).
	AddOnPrices []int64

	// Extra controllers: per-unit price times a count clamped into
	// [0, MaxControllers].
	ControllerUnitPrice int64
	ControllerCount     int
	MaxControllers      int

	Insured bool
}

// Quote is the computed pricing breakdown. Every intermediate value is kept
// for display and auditing; only MonthlyPrice is copied onto the order row.
type Quote struct {
	DurationMonths      int             `json:"duration_months"`
	DiscountRate        decimal.Decimal `json:"discount_rate"`
	DiscountedBase      int64           `json:"discounted_base"`
	AddOnSubtotal       int64           `json:"addon_subtotal"`
	InsuranceMultiplier decimal.Decimal `json:"insurance_multiplier"`
	RawPrice            decimal.Decimal `json:"raw_price"`
	MonthlyPrice        int64           `json:"monthly_price"`
}

// ComputeQuote prices one month of a rental: tiered discount on the base
// price, add-on subtotal, insurance multiplier, then ceiling to the nearest
// 10 kr. Pure; no I/O.
func ComputeQuote(in QuoteInput) (Quote, error) {
	rate, ok := discountRates[in.DurationMonths]
	if !ok {
		return Quote{}, validation("duration must be 1, 3, 6 or 12 months, got %d", in.DurationMonths)
	}
	if in.BasePrice < 0 {
		return Quote{}, validation("base price must not be negative")
	}

	// Discounted base, rounded half-up to whole ISK.
	discounted := decimal.NewFromInt(in.BasePrice).
		Mul(decimal.NewFromInt(1).Sub(rate)).
		Round(0).
		IntPart()

	var addOns int64
	for _, p := range in.AddOnPrices {
		if p > 0 {
			addOns += p
		}
	}
	count := in.ControllerCount
	if count < 0 {
		count = 0
	}
	if count > in.MaxControllers {
		count = in.MaxControllers
	}
	if in.ControllerUnitPrice > 0 {
		addOns += in.ControllerUnitPrice * int64(count)
	}

	mult := decimal.NewFromInt(1)
	if in.Insured {
		mult = insuranceMultiplier
	}
	raw := decimal.NewFromInt(discounted + addOns).Mul(mult)

	// Ceiling to the nearest multiple of 10; smallest billed granularity.
	final := raw.Div(decimal.NewFromInt(10)).Ceil().Mul(decimal.NewFromInt(10)).IntPart()

	return Quote{
		DurationMonths:      in.DurationMonths,
		DiscountRate:        rate,
		DiscountedBase:      discounted,
		AddOnSubtotal:       addOns,
		InsuranceMultiplier: mult,
		RawPrice:            raw,
		MonthlyPrice:        final,
	}, nil
}
