package pricing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tier is a contiguous page range with its own per-page rate.
// MaxPages == 0 marks the open-ended last tier.
type Tier struct {
	MinPages int
	MaxPages int
	Rate     decimal.Decimal
}

// Label renders the page range, e.g. "1–20 pages" or "501+ pages".
func (t Tier) Label() string {
	if t.MaxPages == 0 {
		return fmt.Sprintf("%d+ pages", t.MinPages)
	}
	return fmt.Sprintf("%d–%d pages", t.MinPages, t.MaxPages)
}

func (t Tier) contains(pages int) bool {
	return pages >= t.MinPages && (t.MaxPages == 0 || pages <= t.MaxPages)
}

// RateCardSpec is the raw material of a RateCard, usually decoded from the
// settings file. NewRateCard checks it.
type RateCardSpec struct {
	Currency           string
	MonochromeDiscount decimal.Decimal
	Plain              map[Size]map[PrintMode][]Tier
	Specialty          map[Size]map[Paper][]Tier
	LargeFormat        map[Size]decimal.Decimal
}

// RateCard is a validated, read-only set of rate schedules.
type RateCard struct {
	currency           string
	monochromeDiscount decimal.Decimal
	plain              map[Size]map[PrintMode][]Tier
	specialty          map[Size]map[Paper][]Tier
	largeFormat        map[Size]decimal.Decimal
}

// NewRateCard validates the card:
//   - currency is set and the monochrome discount lies in [0, 1)
//   - plain schedules exist for A4 and A3 in both modes, share breakpoints,
//     and single-sided is cheaper than double-sided at every tier
//   - every tier list starts at page 1, is contiguous, ends open, and its rates
//     are positive and strictly decreasing
//   - large-format rates exist only for A0, A1, A2 and are positive
//
// All problems are reported together.
func NewRateCard(spec RateCardSpec) (RateCard, error) {
	var problems []error

	if strings.TrimSpace(spec.Currency) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("rate card currency"))
	}
	if spec.MonochromeDiscount.IsNegative() || spec.MonochromeDiscount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("monochrome discount", spec.MonochromeDiscount, 0, "<1"))
	}

	for _, size := range []Size{SizeA4, SizeA3} {
		modes := spec.Plain[size]
		single, okSingle := modes[ModeSingleSided]
		double, okDouble := modes[ModeDoubleSided]
		if !okSingle || !okDouble {
			problems = append(problems, invalidCard("plain %s needs single-sided and double-sided schedules", size))
			continue
		}
		problems = append(problems,
			validateTiers(fmt.Sprintf("plain %s single-sided", size), single),
			validateTiers(fmt.Sprintf("plain %s double-sided", size), double),
			validateModePair(size, single, double),
		)
	}
	for size := range spec.Plain {
		if size.IsLargeFormat() || size.Validate() != nil {
			problems = append(problems, invalidCard("plain schedules are only defined for A4 and A3, got %s", size))
		}
	}

	for size, papers := range spec.Specialty {
		if size != SizeA4 && size != SizeA3 {
			problems = append(problems, invalidCard("specialty schedules are only defined for A4 and A3, got %s", size))
			continue
		}
		for paper, tiers := range papers {
			if paper == PaperPlain || paper.Validate() != nil {
				problems = append(problems, invalidCard("specialty schedule for %s paper is not allowed", paper))
				continue
			}
			problems = append(problems, validateTiers(fmt.Sprintf("%s %s", size, paper), tiers))
		}
	}

	for size, rate := range spec.LargeFormat {
		if !size.IsLargeFormat() {
			problems = append(problems, invalidCard("large format rate defined for %s", size))
		}
		if !rate.IsPositive() {
			problems = append(problems, invalidCard("large format rate for %s must be positive", size))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return RateCard{}, err
	}

	return RateCard{
		currency:           strings.ToUpper(strings.TrimSpace(spec.Currency)),
		monochromeDiscount: spec.MonochromeDiscount,
		plain:              cloneSchedules(spec.Plain),
		specialty:          cloneSchedules(spec.Specialty),
		largeFormat:        maps.Clone(spec.LargeFormat),
	}, nil
}

// cloneSchedules copies both map levels and every tier slice so the card does
// not share storage with the spec it was validated from.
func cloneSchedules[K comparable](in map[Size]map[K][]Tier) map[Size]map[K][]Tier {
	out := make(map[Size]map[K][]Tier, len(in))
	for size, schedules := range in {
		inner := make(map[K][]Tier, len(schedules))
		for key, tiers := range schedules {
			inner[key] = slices.Clone(tiers)
		}
		out[size] = inner
	}
	return out
}

func (c RateCard) Currency() string {
	return c.currency
}

func (c RateCard) MonochromeDiscount() decimal.Decimal {
	return c.monochromeDiscount
}

// Tiers returns the schedule used for a non large-format combination.
func (c RateCard) Tiers(size Size, paper Paper, mode PrintMode) ([]Tier, bool) {
	if paper == PaperPlain {
		tiers, ok := c.plain[size][mode]
		return tiers, ok
	}
	tiers, ok := c.specialty[size][paper]
	return tiers, ok
}

// LargeFormatRate returns the flat monochrome rate for A0, A1 or A2.
func (c RateCard) LargeFormatRate(size Size) (decimal.Decimal, bool) {
	rate, ok := c.largeFormat[size]
	return rate, ok
}

func validateTiers(name string, tiers []Tier) error {
	if len(tiers) == 0 {
		return invalidCard("%s has no tiers", name)
	}

	next := 1
	for i, tier := range tiers {
		if tier.MinPages != next {
			return invalidCard("%s tier %d starts at %d, expected %d", name, i+1, tier.MinPages, next)
		}
		last := i == len(tiers)-1
		if last && tier.MaxPages != 0 {
			return invalidCard("%s last tier must be open ended", name)
		}
		if !last && tier.MaxPages < tier.MinPages {
			return invalidCard("%s tier %d ends before it starts", name, i+1)
		}
		if !tier.Rate.IsPositive() {
			return invalidCard("%s tier %d rate must be positive", name, i+1)
		}
		if i > 0 && !tier.Rate.LessThan(tiers[i-1].Rate) {
			return invalidCard("%s tier %d rate %s is not below the previous tier", name, i+1, tier.Rate)
		}
		next = tier.MaxPages + 1
	}
	return nil
}

func validateModePair(size Size, single, double []Tier) error {
	if len(single) != len(double) {
		return invalidCard("plain %s single-sided and double-sided tiers differ in count", size)
	}
	for i := range single {
		if single[i].MinPages != double[i].MinPages || single[i].MaxPages != double[i].MaxPages {
			return invalidCard("plain %s tier %d breakpoints differ between modes", size, i+1)
		}
		if !single[i].Rate.LessThan(double[i].Rate) {
			return invalidCard("plain %s tier %d single-sided must be cheaper than double-sided", size, i+1)
		}
	}
	return nil
}

func invalidCard(format string, args ...any) error {
	return errs.NewValueIsInvalidErrorWithCause("rate card", fmt.Errorf(format, args...))
}
