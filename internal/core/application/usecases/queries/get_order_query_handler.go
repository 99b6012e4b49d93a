package queries

import (
	"cmp"
	"context"
	"slices"

	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	rows, err := db.Raw(`
		SELECT`+orderSummaryColumns+`
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		summary OrderSummary
		found   bool
	)
	if rows.Next() {
		summary, err = scanOrderSummary(rows)
		found = err == nil
	}
	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !found {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}

	timeline, err := h.timeline(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		OrderSummary:       summary,
		Timeline:           timeline,
		AllowedTransitions: summary.Status.AllowedTransitions(),
	}, nil
}

func (h GetOrderQueryHandler) timeline(ctx context.Context, query GetOrderQuery) ([]TimelineEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			occurred_at
		FROM order_status_timestamps
		WHERE order_id = ?
		ORDER BY occurred_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimelineEntry, 0)
	for rows.Next() {
		var entry TimelineEntry
		var status string
		if err = rows.Scan(&status, &entry.OccurredAt); err != nil {
			return nil, err
		}
		if entry.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// statuses stamped in the same instant keep lifecycle order
	slices.SortStableFunc(entries, func(a, b TimelineEntry) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Status, b.Status)
	})
	return entries, nil
}
