package pricing_test

import (
	"testing"

	"printdelivery/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func tiers(bounds [][2]int, rates ...int64) []pricing.Tier {
	out := make([]pricing.Tier, len(bounds))
	for i, b := range bounds {
		out[i] = pricing.Tier{MinPages: b[0], MaxPages: b[1], Rate: d(rates[i])}
	}
	return out
}

var (
	plainBounds     = [][2]int{{1, 20}, {21, 100}, {101, 500}, {501, 0}}
	specialtyBounds = [][2]int{{1, 20}, {21, 100}, {101, 0}}
)

func scaled(k int64, rates ...int64) []int64 {
	out := make([]int64, len(rates))
	for i, r := range rates {
		out[i] = r * k
	}
	return out
}

func specialty(k int64) map[pricing.Paper][]pricing.Tier {
	return map[pricing.Paper][]pricing.Tier{
		pricing.PaperCoated:  tiers(specialtyBounds, scaled(k, 3000, 2500, 2000)...),
		pricing.PaperGlossy:  tiers(specialtyBounds, scaled(k, 4000, 3500, 3000)...),
		pricing.PaperSticker: tiers(specialtyBounds, scaled(k, 5000, 4500, 4000)...),
	}
}

func testSpec() pricing.RateCardSpec {
	return pricing.RateCardSpec{
		Currency:           "VND",
		MonochromeDiscount: decimal.RequireFromString("0.2"),
		Plain: map[pricing.Size]map[pricing.PrintMode][]pricing.Tier{
			pricing.SizeA4: {
				pricing.ModeSingleSided: tiers(plainBounds, 500, 400, 350, 300),
				pricing.ModeDoubleSided: tiers(plainBounds, 800, 700, 600, 550),
			},
			pricing.SizeA3: {
				pricing.ModeSingleSided: tiers(plainBounds, scaled(2, 500, 400, 350, 300)...),
				pricing.ModeDoubleSided: tiers(plainBounds, scaled(2, 800, 700, 600, 550)...),
			},
		},
		Specialty: map[pricing.Size]map[pricing.Paper][]pricing.Tier{
			pricing.SizeA4: specialty(1),
			pricing.SizeA3: specialty(2),
		},
		LargeFormat: map[pricing.Size]decimal.Decimal{
			pricing.SizeA2: d(15000),
			pricing.SizeA1: d(25000),
			pricing.SizeA0: d(40000),
		},
	}
}

func testCalculator(t *testing.T) *pricing.Calculator {
	t.Helper()
	card, err := pricing.NewRateCard(testSpec())
	require.NoError(t, err)
	return pricing.NewCalculator(card)
}

func mustRequest(t *testing.T, size pricing.Size, paper pricing.Paper, mode pricing.PrintMode, pages int, mono bool) pricing.Request {
	t.Helper()
	req, err := pricing.NewRequest(size, paper, mode, pages, mono)
	require.NoError(t, err)
	return req
}
