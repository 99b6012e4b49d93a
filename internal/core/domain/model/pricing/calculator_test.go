package pricing_test

import (
	"errors"
	"testing"

	"printdelivery/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Calculate(t *testing.T) {
	calc := testCalculator(t)

	t.Run("should price a colour A4 single-sided job in the first tier without discount", func(t *testing.T) {
		req := mustRequest(t, pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided, 15, false)

		res, err := calc.Calculate(req)

		require.NoError(t, err)
		assert.Equal(t, "1–20 pages", res.TierLabel)
		assert.True(t, res.UnitPrice.Equal(d(500)))
		assert.True(t, res.Subtotal.Equal(d(7500)))
		assert.True(t, res.Discount.IsZero())
		assert.True(t, res.Total.Equal(d(7500)))
		assert.Equal(t, "VND", res.Currency)
		assert.False(t, res.LargeFormat)
	})

	t.Run("should apply the monochrome discount and report the post-discount unit price", func(t *testing.T) {
		req := mustRequest(t, pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided, 15, true)

		res, err := calc.Calculate(req)

		require.NoError(t, err)
		assert.True(t, res.Subtotal.Equal(d(7500)))
		assert.True(t, res.Discount.Equal(d(1500)))
		assert.True(t, res.Total.Equal(d(6000)))
		assert.True(t, res.UnitPrice.Equal(d(400)))
	})

	t.Run("should resolve tiers at every breakpoint", func(t *testing.T) {
		cases := []struct {
			pages int
			rate  int64
			label string
		}{
			{1, 500, "1–20 pages"},
			{20, 500, "1–20 pages"},
			{21, 400, "21–100 pages"},
			{100, 400, "21–100 pages"},
			{101, 350, "101–500 pages"},
			{500, 350, "101–500 pages"},
			{501, 300, "501+ pages"},
			{10000, 300, "501+ pages"},
		}
		for _, tc := range cases {
			res, err := calc.Calculate(mustRequest(t, pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided, tc.pages, false))

			require.NoError(t, err)
			assert.True(t, res.UnitPrice.Equal(d(tc.rate)), "pages %d", tc.pages)
			assert.Equal(t, tc.label, res.TierLabel)
		}
	})

	t.Run("should charge double-sided more than single-sided", func(t *testing.T) {
		for _, size := range []pricing.Size{pricing.SizeA4, pricing.SizeA3} {
			for _, pages := range []int{1, 50, 200, 800} {
				single, err := calc.Calculate(mustRequest(t, size, pricing.PaperPlain, pricing.ModeSingleSided, pages, false))
				require.NoError(t, err)
				double, err := calc.Calculate(mustRequest(t, size, pricing.PaperPlain, pricing.ModeDoubleSided, pages, false))
				require.NoError(t, err)

				assert.True(t, single.Total.LessThan(double.Total), "%s %d pages", size, pages)
			}
		}
	})

	t.Run("should price specialty stock independently of print mode", func(t *testing.T) {
		single, err := calc.Calculate(mustRequest(t, pricing.SizeA3, pricing.PaperGlossy, pricing.ModeSingleSided, 30, false))
		require.NoError(t, err)
		double, err := calc.Calculate(mustRequest(t, pricing.SizeA3, pricing.PaperGlossy, pricing.ModeDoubleSided, 30, false))
		require.NoError(t, err)

		assert.True(t, single.Total.Equal(double.Total))
		assert.True(t, single.UnitPrice.Equal(d(7000)))
		assert.Equal(t, "21–100 pages", single.TierLabel)
	})

	t.Run("should price monochrome large format at the flat rate without discount", func(t *testing.T) {
		res, err := calc.Calculate(mustRequest(t, pricing.SizeA1, pricing.PaperPlain, pricing.ModeSingleSided, 3, true))

		require.NoError(t, err)
		assert.True(t, res.LargeFormat)
		assert.Equal(t, pricing.FlatTierLabel, res.TierLabel)
		assert.True(t, res.UnitPrice.Equal(d(25000)))
		assert.True(t, res.Discount.IsZero())
		assert.True(t, res.Total.Equal(d(75000)))
	})

	t.Run("should reject colour large format with a configuration error", func(t *testing.T) {
		for _, size := range []pricing.Size{pricing.SizeA0, pricing.SizeA1, pricing.SizeA2} {
			_, err := calc.Calculate(mustRequest(t, size, pricing.PaperPlain, pricing.ModeSingleSided, 1, false))

			require.Error(t, err)
			assert.ErrorIs(t, err, pricing.ErrConfiguration)
			var cfgErr *pricing.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, size, cfgErr.Size)
			assert.False(t, cfgErr.Monochrome)
		}
	})

	t.Run("should reject large format on specialty stock", func(t *testing.T) {
		_, err := calc.Calculate(mustRequest(t, pricing.SizeA0, pricing.PaperSticker, pricing.ModeSingleSided, 1, true))

		assert.ErrorIs(t, err, pricing.ErrConfiguration)
	})

	t.Run("should reject a request not built by its constructor", func(t *testing.T) {
		_, err := calc.Calculate(pricing.Request{})

		assert.ErrorIs(t, err, pricing.ErrRequestIsNotConstructed)
	})
}

func TestCalculator_Monotonicity(t *testing.T) {
	calc := testCalculator(t)

	combos := []struct {
		size  pricing.Size
		paper pricing.Paper
		mode  pricing.PrintMode
	}{
		{pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided},
		{pricing.SizeA4, pricing.PaperPlain, pricing.ModeDoubleSided},
		{pricing.SizeA3, pricing.PaperPlain, pricing.ModeSingleSided},
		{pricing.SizeA4, pricing.PaperCoated, pricing.ModeSingleSided},
		{pricing.SizeA3, pricing.PaperSticker, pricing.ModeDoubleSided},
	}

	for _, c := range combos {
		for _, mono := range []bool{false, true} {
			prev, err := calc.Calculate(mustRequest(t, c.size, c.paper, c.mode, 1, mono))
			require.NoError(t, err)

			for pages := 2; pages <= 700; pages++ {
				cur, err := calc.Calculate(mustRequest(t, c.size, c.paper, c.mode, pages, mono))
				require.NoError(t, err)

				assert.False(t, cur.UnitPrice.GreaterThan(prev.UnitPrice),
					"%s %s %s: unit price rose at %d pages", c.size, c.paper, c.mode, pages)
				if cur.TierLabel == prev.TierLabel {
					assert.False(t, cur.Total.LessThan(prev.Total),
						"%s %s %s: total fell within tier at %d pages", c.size, c.paper, c.mode, pages)
				}
				prev = cur
			}
		}
	}
}

func TestNewRateCard(t *testing.T) {
	t.Run("should accept the reference card", func(t *testing.T) {
		card, err := pricing.NewRateCard(testSpec())

		require.NoError(t, err)
		assert.Equal(t, "VND", card.Currency())
		assert.True(t, card.MonochromeDiscount().Equal(decimal.RequireFromString("0.2")))
	})

	t.Run("should not change when the source maps are modified afterwards", func(t *testing.T) {
		spec := testSpec()
		card, err := pricing.NewRateCard(spec)
		require.NoError(t, err)

		spec.Plain[pricing.SizeA4][pricing.ModeSingleSided][0].Rate = d(1)
		spec.Specialty[pricing.SizeA4][pricing.PaperCoated] = nil
		delete(spec.Plain[pricing.SizeA3], pricing.ModeDoubleSided)
		delete(spec.LargeFormat, pricing.SizeA0)

		plain, ok := card.Tiers(pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided)
		require.True(t, ok)
		assert.True(t, plain[0].Rate.Equal(d(500)))

		coated, ok := card.Tiers(pricing.SizeA4, pricing.PaperCoated, pricing.ModeSingleSided)
		require.True(t, ok)
		assert.NotEmpty(t, coated)

		_, ok = card.Tiers(pricing.SizeA3, pricing.PaperPlain, pricing.ModeDoubleSided)
		assert.True(t, ok)

		rate, ok := card.LargeFormatRate(pricing.SizeA0)
		require.True(t, ok)
		assert.True(t, rate.Equal(d(40000)))
	})

	t.Run("should reject tiers that do not start at page one", func(t *testing.T) {
		spec := testSpec()
		spec.Specialty[pricing.SizeA4][pricing.PaperCoated] = tiers([][2]int{{2, 20}, {21, 0}}, 3000, 2500)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "starts at 2, expected 1")
	})

	t.Run("should reject gaps between tiers", func(t *testing.T) {
		spec := testSpec()
		spec.Specialty[pricing.SizeA4][pricing.PaperGlossy] = tiers([][2]int{{1, 20}, {25, 0}}, 4000, 3500)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "starts at 25, expected 21")
	})

	t.Run("should reject a closed last tier", func(t *testing.T) {
		spec := testSpec()
		spec.Specialty[pricing.SizeA3][pricing.PaperSticker] = tiers([][2]int{{1, 20}, {21, 100}}, 5000, 4500)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open ended")
	})

	t.Run("should reject rates that do not fall with volume", func(t *testing.T) {
		spec := testSpec()
		spec.Specialty[pricing.SizeA4][pricing.PaperCoated] = tiers(specialtyBounds, 3000, 3000, 2000)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not below the previous tier")
	})

	t.Run("should reject double-sided not dearer than single-sided", func(t *testing.T) {
		spec := testSpec()
		spec.Plain[pricing.SizeA4][pricing.ModeDoubleSided] = tiers(plainBounds, 500, 400, 350, 300)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "single-sided must be cheaper")
	})

	t.Run("should reject a missing plain mode", func(t *testing.T) {
		spec := testSpec()
		delete(spec.Plain[pricing.SizeA3], pricing.ModeDoubleSided)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "plain A3 needs")
	})

	t.Run("should reject a discount outside [0, 1)", func(t *testing.T) {
		spec := testSpec()
		spec.MonochromeDiscount = d(1)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "monochrome discount")
	})

	t.Run("should reject a large format rate on a small size", func(t *testing.T) {
		spec := testSpec()
		spec.LargeFormat[pricing.SizeA4] = d(1000)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "large format rate defined for A4")
	})

	t.Run("should report every problem at once", func(t *testing.T) {
		spec := testSpec()
		spec.Currency = " "
		spec.LargeFormat[pricing.SizeA0] = d(0)

		_, err := pricing.NewRateCard(spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency")
		assert.Contains(t, err.Error(), "A0 must be positive")
	})
}
