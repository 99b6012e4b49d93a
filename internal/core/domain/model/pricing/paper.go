package pricing

import (
	"fmt"
	"strings"

	"printdelivery/internal/pkg/errs"
)

// Size is the paper size of a print job.
type Size int

const (
	SizeUnknown Size = iota
	SizeA4
	SizeA3
	SizeA2
	SizeA1
	SizeA0
)

var sizeNames = map[Size]string{
	SizeA4: "A4",
	SizeA3: "A3",
	SizeA2: "A2",
	SizeA1: "A1",
	SizeA0: "A0",
}

func ParseSize(name string) (Size, error) {
	for s, n := range sizeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return SizeUnknown, errs.NewValueIsInvalidErrorWithCause("paper size", fmt.Errorf("%q is not a supported size", name))
}

func (s Size) Validate() error {
	if _, ok := sizeNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paper size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

func (s Size) String() string {
	if n, ok := sizeNames[s]; ok {
		return n
	}
	return "unknown"
}

// IsLargeFormat reports whether s is priced by the flat monochrome rules.
func (s Size) IsLargeFormat() bool {
	return s == SizeA0 || s == SizeA1 || s == SizeA2
}

// Paper is the stock a job is printed on.
type Paper int

const (
	PaperUnknown Paper = iota
	PaperPlain
	PaperCoated
	PaperGlossy
	PaperSticker
)

var paperNames = map[Paper]string{
	PaperPlain:   "plain",
	PaperCoated:  "coated",
	PaperGlossy:  "glossy",
	PaperSticker: "sticker",
}

func ParsePaper(name string) (Paper, error) {
	for p, n := range paperNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PaperUnknown, errs.NewValueIsInvalidErrorWithCause("paper type", fmt.Errorf("%q is not a supported paper", name))
}

func (p Paper) Validate() error {
	if _, ok := paperNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paper type", fmt.Errorf("%d is not a valid paper", p))
	}
	return nil
}

func (p Paper) String() string {
	if n, ok := paperNames[p]; ok {
		return n
	}
	return "unknown"
}

// PrintMode selects single or double sided printing.
type PrintMode int

const (
	ModeUnknown PrintMode = iota
	ModeSingleSided
	ModeDoubleSided
)

func ParsePrintMode(name string) (PrintMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single-sided", "single":
		return ModeSingleSided, nil
	case "double-sided", "double":
		return ModeDoubleSided, nil
	default:
		return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("print mode", fmt.Errorf("%q is not a supported mode", name))
	}
}

func (m PrintMode) Validate() error {
	if m != ModeSingleSided && m != ModeDoubleSided {
		return errs.NewValueIsInvalidErrorWithCause("print mode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func (m PrintMode) String() string {
	switch m {
	case ModeSingleSided:
		return "single-sided"
	case ModeDoubleSided:
		return "double-sided"
	default:
		return "unknown"
	}
}
