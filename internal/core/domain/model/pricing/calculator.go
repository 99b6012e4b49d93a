package pricing

import (
	"github.com/shopspring/decimal"
)

// FlatTierLabel labels large-format results, which have no tiers.
const FlatTierLabel = "flat"

// Result is the price breakdown of one request.
// UnitPrice is the per-page rate actually charged, after any discount.
type Result struct {
	Request     Request
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	Currency    string
	TierLabel   string
	LargeFormat bool
}

// Calculator prices requests against one RateCard.
type Calculator struct {
	card RateCard
}

func NewCalculator(card RateCard) *Calculator {
	return &Calculator{card: card}
}

func (c *Calculator) RateCard() RateCard {
	return c.card
}

// Calculate looks up the schedule for (size, paper, mode), resolves the tier for
// the page count, multiplies, and applies the monochrome discount when eligible.
//
// Errors:
//   - the request's own validation error when it was not built by NewRequest
//   - *ConfigurationError for colour large format, non-plain large format,
//     or any combination missing from the rate card
func (c *Calculator) Calculate(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	if req.Size().IsLargeFormat() {
		return c.calculateLargeFormat(req)
	}

	tiers, ok := c.card.Tiers(req.Size(), req.Paper(), req.Mode())
	if !ok {
		return Result{}, newConfigurationError(req, "rate card has no schedule for this combination")
	}

	tier, ok := tierFor(tiers, req.Pages())
	if !ok {
		return Result{}, newConfigurationError(req, "no tier covers the page count")
	}

	pages := decimal.NewFromInt(int64(req.Pages()))
	subtotal := tier.Rate.Mul(pages)
	unit := tier.Rate
	discount := decimal.Zero

	if req.Monochrome() && c.card.monochromeDiscount.IsPositive() {
		discount = subtotal.Mul(c.card.monochromeDiscount)
		unit = tier.Rate.Mul(decimal.NewFromInt(1).Sub(c.card.monochromeDiscount))
	}

	return Result{
		Request:   req,
		UnitPrice: unit,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		Currency:  c.card.currency,
		TierLabel: tier.Label(),
	}, nil
}

func (c *Calculator) calculateLargeFormat(req Request) (Result, error) {
	if !req.Monochrome() {
		return Result{}, newConfigurationError(req, "large format prints are monochrome only")
	}
	if req.Paper() != PaperPlain {
		return Result{}, newConfigurationError(req, "large format prints are plain paper only")
	}

	rate, ok := c.card.LargeFormatRate(req.Size())
	if !ok {
		return Result{}, newConfigurationError(req, "rate card has no large format rate")
	}

	total := rate.Mul(decimal.NewFromInt(int64(req.Pages())))
	return Result{
		Request:     req,
		UnitPrice:   rate,
		Subtotal:    total,
		Discount:    decimal.Zero,
		Total:       total,
		Currency:    c.card.currency,
		TierLabel:   FlatTierLabel,
		LargeFormat: true,
	}, nil
}

func tierFor(tiers []Tier, pages int) (Tier, bool) {
	for _, t := range tiers {
		if t.contains(pages) {
			return t, true
		}
	}
	return Tier{}, false
}
