// Package kernel contains shared value objects used across domain aggregates.
//
// Its central type is Money, a fixed-point monetary amount normalized to two
// fractional digits with round-half-to-even. All monetary arithmetic in the
// domain flows through Money so rounding behavior stays canonical in one
// place.
package kernel
