package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tolvuleiga/utils"
)

func TestComputeQuoteDiscountTiers(t *testing.T) {
	cases := []struct {
		months         int
		base           int64
		wantDiscounted int64
	}{
		{1, 10000, 10000},
		{3, 10000, 9600},
		{6, 10000, 9200},
		{12, 10000, 8800},
		// Round-half-up on the discount step.
		{6, 19990, 18391}, // 19990*0.92 = 18390.8
	}
	for _, tc := range cases {
		q, err := ComputeQuote(QuoteInput{BasePrice: tc.base, DurationMonths: tc.months})
		assert.NoError(t, err)
		assert.Equal(t, tc.wantDiscounted, q.DiscountedBase, "%d months on %d", tc.months, tc.base)
		assert.Equal(t, int64(0), q.MonthlyPrice%10, "price must end in 0")
	}
}

func TestComputeQuoteRejectsBadInput(t *testing.T) {
	_, err := ComputeQuote(QuoteInput{BasePrice: 1000, DurationMonths: 2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ComputeQuote(QuoteInput{BasePrice: -1, DurationMonths: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComputeQuoteInsuranceAppliedOnce(t *testing.T) {
	// Insurance multiplies the pre-insurance subtotal by exactly 1.10, and
	// rounding happens once, after the multiplier.
	q, err := ComputeQuote(QuoteInput{BasePrice: 10000, DurationMonths: 1, Insured: true})
	assert.NoError(t, err)
	assert.True(t, q.RawPrice.Equal(decimal.NewFromInt(11000)), "raw price %s", q.RawPrice)
	assert.Equal(t, int64(11000), q.MonthlyPrice)

	uninsured, err := ComputeQuote(QuoteInput{BasePrice: 10000, DurationMonths: 1})
	assert.NoError(t, err)
	expected := decimal.NewFromInt(uninsured.DiscountedBase).Mul(decimal.NewFromFloat(1.10))
	assert.True(t, q.RawPrice.Equal(expected))
}

func TestComputeQuoteControllerClamp(t *testing.T) {
	base := QuoteInput{BasePrice: 9990, DurationMonths: 1, ControllerUnitPrice: 1500, MaxControllers: 2}

	over := base
	over.ControllerCount = 99
	q, err := ComputeQuote(over)
	assert.NoError(t, err)
	assert.Equal(t, int64(3000), q.AddOnSubtotal)

	negative := base
	negative.ControllerCount = -5
	q, err = ComputeQuote(negative)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), q.AddOnSubtotal)
}

func TestComputeQuoteWorkedExample(t *testing.T) {
	// 19990 kr at 6 months with a 2000 kr screen and insurance:
	// discount 8% -> 18391, +2000 = 20391, *1.10 = 22430.1, ceil10 -> 22440.
	q, err := ComputeQuote(QuoteInput{
		BasePrice:      utils.ParsePriceISK("19990 kr"),
		DurationMonths: 6,
		AddOnPrices:    []int64{utils.ParsePriceISK("2000 kr")},
		Insured:        true,
	})
	assert.NoError(t, err)
	assert.True(t, q.DiscountRate.Equal(decimal.NewFromFloat(0.08)))
	assert.Equal(t, int64(18391), q.DiscountedBase)
	assert.Equal(t, int64(2000), q.AddOnSubtotal)
	assert.True(t, q.RawPrice.Equal(decimal.NewFromFloat(22430.1)), "raw price %s", q.RawPrice)
	assert.Equal(t, int64(22440), q.MonthlyPrice)
}

func TestComputeQuoteCeilingToTen(t *testing.T) {
	// 9991 has no discount or add-ons; the only rounding is the final ceiling.
	q, err := ComputeQuote(QuoteInput{BasePrice: 9991, DurationMonths: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), q.MonthlyPrice)

	// Already a multiple of 10 stays put.
	q, err = ComputeQuote(QuoteInput{BasePrice: 9990, DurationMonths: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(9990), q.MonthlyPrice)
}
