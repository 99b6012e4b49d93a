// Package kernel provides the value objects shared by every aggregate of the
// print-and-delivery core.
//
// The package includes:
//   - UUID: an identifier for orders, drivers and subscriptions
//   - GeoPoint: a WGS84 coordinate with optional accuracy and address, and the
//     haversine distance used by zone validation and proximity search
//
// Values are immutable and safe for concurrent use. Zero values are invalid and
// fail Validate; use the constructors.
package kernel
