// Package location indexes the fixed delivery points customers can pick from.
//
// The point set is loaded once and never mutated, so an Index is safe for
// concurrent reads. Each caller session keeps its own RecentList of chosen
// points; it only biases ordering and never makes a point valid.
package location
