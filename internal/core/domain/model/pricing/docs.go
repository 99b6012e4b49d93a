// Package pricing computes print job prices from a rate card.
//
// Rate schedules are keyed by paper size class and stock:
//   - A4/A3 plain: tiered per-page rates for each print mode
//   - A4/A3 coated, glossy, sticker: one tiered schedule, independent of mode
//   - A0/A1/A2: a flat monochrome-only rate, no tiers and no discount
//
// A monochrome job on a schedule that also prints in colour gets the rate card's
// monochrome discount. Combinations without a schedule fail with a
// *ConfigurationError; they indicate a caller bug, not a runtime condition.
//
// Calculator is stateless per call and safe for concurrent use.
package pricing
