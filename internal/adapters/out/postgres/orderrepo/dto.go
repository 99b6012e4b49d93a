// Package orderrepo persists order aggregates with GORM. An order is one row in
// orders plus one row per visited status in order_status_timestamps.
package orderrepo

import (
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status and delivery method are stored by name so
// that reordering the enums never corrupts stored rows.
type OrderDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status               string          `gorm:"type:varchar(32);not null;index"`
	DeliveryMethod       string          `gorm:"type:varchar(16);not null"`
	DriverID             *uuid.UUID      `gorm:"type:uuid;index"`
	DestinationLatitude  *float64        `gorm:"type:double precision"`
	DestinationLongitude *float64        `gorm:"type:double precision"`
	DestinationAddress   *string         `gorm:"type:text"`
	DeliveryFee          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt            time.Time       `gorm:"not null;index"`
	UpdatedAt            time.Time

	Timeline []StatusTimestampDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// StatusTimestampDTO records when an order entered a status. Rows are only
// ever inserted.
type StatusTimestampDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status     string    `gorm:"type:varchar(32);primaryKey"`
	OccurredAt time.Time `gorm:"not null"`
}

func (StatusTimestampDTO) TableName() string {
	return "order_status_timestamps"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Status:         aggregate.Status().String(),
		DeliveryMethod: aggregate.DeliveryMethod().String(),
		DeliveryFee:    aggregate.DeliveryFee(),
	}

	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		dto.DriverID = &raw
	}

	if p := aggregate.Destination(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.DestinationLatitude = &lat
		dto.DestinationLongitude = &lng
		if addr := p.Address(); addr != "" {
			dto.DestinationAddress = &addr
		}
	}

	timeline := aggregate.Timeline()
	dto.Timeline = make([]StatusTimestampDTO, 0, len(timeline))
	for s, at := range timeline {
		dto.Timeline = append(dto.Timeline, StatusTimestampDTO{
			OrderID:    dto.ID,
			Status:     s.String(),
			OccurredAt: at.UTC(),
		})
	}
	if created, ok := timeline[order.StatusNew]; ok {
		dto.CreatedAt = created.UTC()
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	method, err := order.ParseDeliveryMethod(dto.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		driver, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &driver
	}

	var destination *kernel.GeoPoint
	if dto.DestinationLatitude != nil && dto.DestinationLongitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.DestinationLatitude, *dto.DestinationLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		if dto.DestinationAddress != nil {
			p = p.WithAddress(*dto.DestinationAddress)
		}
		destination = &p
	}

	timeline := make(map[order.Status]time.Time, len(dto.Timeline))
	for _, row := range dto.Timeline {
		s, statusErr := order.ParseStatus(row.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		timeline[s] = row.OccurredAt
	}

	return order.RestoreOrder(id, status, method, driverID, destination, dto.DeliveryFee, timeline)
}
