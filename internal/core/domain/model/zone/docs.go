// Package zone decides whether a delivery point is served and what delivery costs.
//
// Checks run in a fixed order: the bounding box of the service region, then the
// exclusion circles carved out of it, then the maximum straight-line distance from
// the service origin. A point that passes all three is priced on a linear fee curve
// capped at the fee reached at the maximum distance.
//
// Rejections are results, not errors: Validation carries the Reason and the
// distance that caused it.
package zone
