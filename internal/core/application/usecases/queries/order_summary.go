package queries

import (
	"database/sql"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is the read model of an order row.
type OrderSummary struct {
	ID             kernel.UUID
	Status         order.Status
	DeliveryMethod order.DeliveryMethod
	DriverID       *kernel.UUID
	Destination    *kernel.GeoPoint
	DeliveryFee    decimal.Decimal
	CreatedAt      time.Time
}

const orderSummaryColumns = `
			id,
			status,
			delivery_method,
			driver_id,
			destination_latitude,
			destination_longitude,
			destination_address,
			delivery_fee,
			created_at`

func scanOrderSummary(rows *sql.Rows) (OrderSummary, error) {
	var (
		summary        OrderSummary
		id             uuid.UUID
		status, method string
		driverID       uuid.NullUUID
		lat, lng       sql.NullFloat64
		address        sql.NullString
	)

	err := rows.Scan(
		&id,
		&status,
		&method,
		&driverID,
		&lat,
		&lng,
		&address,
		&summary.DeliveryFee,
		&summary.CreatedAt,
	)
	if err != nil {
		return OrderSummary{}, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.Status, err = order.ParseStatus(status); err != nil {
		return OrderSummary{}, err
	}
	if summary.DeliveryMethod, err = order.ParseDeliveryMethod(method); err != nil {
		return OrderSummary{}, err
	}

	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return OrderSummary{}, idErr
		}
		summary.DriverID = &driver
	}

	if lat.Valid && lng.Valid {
		point, pErr := kernel.NewGeoPoint(lat.Float64, lng.Float64)
		if pErr != nil {
			return OrderSummary{}, pErr
		}
		point = point.WithAddress(address.String)
		summary.Destination = &point
	}

	return summary, nil
}
