package queries

import (
	"context"
	"errors"

	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/pkg/guard"
)

var ErrQuoteQueryIsNotConstructed = errors.New(
	"QuoteQuery must be created via NewQuoteQuery constructor",
)

// QuoteQuery prices a print job.
//
// Example:
//
//	req, _ := pricing.NewRequest(pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided, 15, true)
//	query, _ := NewQuoteQuery(req)
//	result, err := NewQuoteQueryHandler(calculator).Handle(ctx, query)
//	// result.Total == 6000 VND with the default rate card
type QuoteQuery struct {
	request pricing.Request

	guard guard.ConstructorGuard
}

func NewQuoteQuery(request pricing.Request) (QuoteQuery, error) {
	if err := request.Validate(); err != nil {
		return QuoteQuery{}, err
	}
	return QuoteQuery{request: request, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteQuery) Validate() error {
	return q.guard.Validate(ErrQuoteQueryIsNotConstructed)
}

func (q QuoteQuery) Request() pricing.Request {
	return q.request
}

type QuoteQueryHandler struct {
	calculator *pricing.Calculator
}

func NewQuoteQueryHandler(calculator *pricing.Calculator) QuoteQueryHandler {
	return QuoteQueryHandler{calculator: calculator}
}

// Handle fails with *pricing.ConfigurationError when the rate card has no
// schedule for the request, for example colour on large format.
func (h QuoteQueryHandler) Handle(_ context.Context, query QuoteQuery) (pricing.Result, error) {
	if err := query.Validate(); err != nil {
		return pricing.Result{}, err
	}
	return h.calculator.Calculate(query.Request())
}
