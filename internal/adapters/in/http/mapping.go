package http

import (
	"printdelivery/internal/core/application/usecases/queries"
	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/core/domain/model/zone"
	"printdelivery/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func geoPoint(p servers.Point) (kernel.GeoPoint, error) {
	gp, err := kernel.NewGeoPoint(p.Lat, p.Lng)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if p.Accuracy != nil {
		if gp, err = gp.WithAccuracy(*p.Accuracy); err != nil {
			return kernel.GeoPoint{}, err
		}
	}
	if p.Address != nil {
		gp = gp.WithAddress(*p.Address)
	}
	return gp, nil
}

func pointResponse(p kernel.GeoPoint) servers.Point {
	out := servers.Point{Lat: p.Latitude(), Lng: p.Longitude()}
	if acc, ok := p.Accuracy(); ok {
		out.Accuracy = &acc
	}
	if addr := p.Address(); addr != "" {
		out.Address = &addr
	}
	return out
}

func quoteResponse(r pricing.Result) servers.Quote {
	return servers.Quote{
		Size:        r.Request.Size().String(),
		Paper:       r.Request.Paper().String(),
		Mode:        r.Request.Mode().String(),
		Pages:       r.Request.Pages(),
		Monochrome:  r.Request.Monochrome(),
		UnitPrice:   r.UnitPrice.String(),
		Subtotal:    r.Subtotal.String(),
		Discount:    r.Discount.String(),
		Total:       r.Total.String(),
		Currency:    r.Currency,
		Tier:        r.TierLabel,
		LargeFormat: r.LargeFormat,
	}
}

func validationResponse(v zone.Validation) servers.DeliveryValidation {
	out := servers.DeliveryValidation{
		Valid:      v.Valid,
		DistanceKm: v.DistanceKm,
		Fee:        v.Fee.String(),
	}
	if v.ZoneLabel != "" {
		out.Zone = &v.ZoneLabel
	}
	if !v.Valid {
		reason := servers.DeliveryValidationReason(v.Reason.String())
		out.Reason = &reason
		out.Message = &v.Message
	}
	return out
}

func locationResponse(c location.Candidate) servers.Location {
	out := servers.Location{
		Id:      c.Location.ID,
		Name:    c.Location.Name,
		Point:   pointResponse(c.Location.Point),
		Popular: c.Location.Popular,
		Fee:     c.Location.Fee.String(),
		Zone:    c.Location.ZoneLabel,
	}
	if c.HasDistance {
		km := c.DistanceKm
		out.DistanceKm = &km
	}
	if c.Recent {
		recent := true
		out.Recent = &recent
	}
	return out
}

func candidatesResponse(hits []location.Candidate) []servers.Location {
	out := make([]servers.Location, len(hits))
	for i, h := range hits {
		out[i] = locationResponse(h)
	}
	return out
}

func orderResponse(o queries.OrderSummary) servers.Order {
	out := servers.Order{
		Id:             o.ID.Bytes(),
		Status:         o.Status.String(),
		DeliveryMethod: o.DeliveryMethod.String(),
		DeliveryFee:    o.DeliveryFee.String(),
		CreatedAt:      o.CreatedAt,
	}
	if o.DriverID != nil {
		out.DriverId = uuidRef(*o.DriverID)
	}
	if o.Destination != nil {
		p := pointResponse(*o.Destination)
		out.Destination = &p
	}
	return out
}

func orderDetailsResponse(res queries.GetOrderQueryResponse) servers.Order {
	out := orderResponse(res.OrderSummary)

	timeline := make([]servers.TimelineEntry, len(res.Timeline))
	for i, e := range res.Timeline {
		timeline[i] = servers.TimelineEntry{Status: e.Status.String(), OccurredAt: e.OccurredAt}
	}
	out.Timeline = &timeline

	allowed := statusNames(res.AllowedTransitions)
	out.AllowedTransitions = &allowed
	return out
}

func eventResponse(ev dispatch.Event) servers.Event {
	out := servers.Event{
		Kind:       servers.EventKind(ev.Kind.String()),
		OrderId:    ev.OrderID.Bytes(),
		OccurredAt: ev.OccurredAt,
	}
	if ev.IsStatusChange() {
		from, status := ev.From.String(), ev.Status.String()
		out.From = &from
		out.Status = &status
	}
	if ev.Point != nil {
		p := pointResponse(*ev.Point)
		out.Point = &p
	}
	if ev.DriverID != nil {
		out.DriverId = uuidRef(*ev.DriverID)
	}
	return out
}

func statusNames(statuses []order.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func uuidRef(id kernel.UUID) *openapi_types.UUID {
	v := openapi_types.UUID(id.Bytes())
	return &v
}
