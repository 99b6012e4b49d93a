package pricing

import (
	"errors"
	"fmt"

	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

// MaxPages bounds a single job so totals stay within sane money ranges.
const MaxPages = 100000

var ErrRequestIsNotConstructed = errors.New("pricing Request must be created via NewRequest constructor")

// Request describes a print job to be priced. It is an immutable value.
type Request struct { //nolint:recvcheck //using for validation
	size       Size
	paper      Paper
	mode       PrintMode
	pages      int
	monochrome bool

	guard guard.ConstructorGuard
}

// NewRequest validates every attribute and reports all failures together.
// Combinations that are well formed but have no rate schedule (colour A0, say)
// are accepted here and rejected by Calculate with a *ConfigurationError.
func NewRequest(size Size, paper Paper, mode PrintMode, pages int, monochrome bool) (Request, error) {
	r := Request{
		monochrome: monochrome,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setSize(size),
		r.setPaper(paper),
		r.setMode(mode),
		r.setPages(pages),
	); err != nil {
		return Request{}, err
	}

	return r, nil
}

func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r Request) Size() Size {
	return r.size
}

func (r Request) Paper() Paper {
	return r.paper
}

func (r Request) Mode() PrintMode {
	return r.mode
}

func (r Request) Pages() int {
	return r.pages
}

func (r Request) Monochrome() bool {
	return r.monochrome
}

func (r Request) String() string {
	colour := "colour"
	if r.monochrome {
		colour = "monochrome"
	}
	return fmt.Sprintf("%s %s %s %s x%d", r.size, r.paper, r.mode, colour, r.pages)
}

func (r *Request) setSize(size Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	r.size = size
	return nil
}

func (r *Request) setPaper(paper Paper) error {
	if err := paper.Validate(); err != nil {
		return err
	}
	r.paper = paper
	return nil
}

func (r *Request) setMode(mode PrintMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	r.mode = mode
	return nil
}

func (r *Request) setPages(pages int) error {
	if pages < 1 || pages > MaxPages {
		return errs.NewValueIsOutOfRangeError("pages", pages, 1, MaxPages)
	}
	r.pages = pages
	return nil
}
