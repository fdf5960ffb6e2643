package factors

import (
	"fmt"
	"math"
)

// MissingPlaceholder is rendered wherever a reading has no value.
const MissingPlaceholder = "--"

// neutralPosition is the sentinel meaning "no visual range defined".
const neutralPosition = 0.5

// present reports whether a reading value is usable: supplied and finite.
// Non-finite values from upstream are treated the same as missing ones.
func present(value *float64) bool {
	return value != nil && !math.IsNaN(*value) && !math.IsInf(*value, 0)
}

// NormalizePosition maps a factor value into [0, 1] relative to the
// definition's absolute [min, max] range, for placing a visual marker.
// Returns 0.5 when the definition is absent, the range is not fully
// configured, the range is degenerate (min == max) or the value is
// missing. Monotonic non-decreasing in value for a fixed definition.
func NormalizePosition(def *FactorDefinition, value *float64) float64 {
	if def == nil || def.Min == nil || def.Max == nil || !present(value) {
		return neutralPosition
	}

	lo, hi := *def.Min, *def.Max
	if hi == lo {
		return neutralPosition
	}

	pos := (*value - lo) / (hi - lo)
	return math.Max(0, math.Min(1, pos))
}

// ClassifyBand compares a factor value against the definition's normal
// band and returns the qualitative classification. With no band defined
// it degrades to neutral; with only the absolute range defined, values
// outside [min, max] classify as out-of-range. Total: never fails.
func ClassifyBand(def *FactorDefinition, value *float64) Classification {
	if def == nil || !present(value) {
		return classify(regionUndefined, false)
	}
	return classify(bandRegionOf(def, *value), def.Inverse)
}

// bandRegionOf resolves which region of the configured band a value
// falls into, preferring the normal band over the absolute range.
func bandRegionOf(def *FactorDefinition, value float64) bandRegion {
	if def.NormalLow != nil && def.NormalHigh != nil {
		switch {
		case value < *def.NormalLow:
			return regionBelowBand
		case value > *def.NormalHigh:
			return regionAboveBand
		default:
			return regionInBand
		}
	}

	// No normal band: the absolute range alone can still flag anomalies.
	if def.Min != nil && def.Max != nil && (value < *def.Min || value > *def.Max) {
		return regionOutOfRange
	}

	return regionUndefined
}

// FormatValue renders a factor value for display. Missing values become
// the "--" placeholder. Percent factors render as value*100 with two
// decimals and a "%" suffix; everything else renders with four decimals
// followed by the definition's unit, if any.
func FormatValue(def *FactorDefinition, value *float64) string {
	if !present(value) {
		return MissingPlaceholder
	}

	if def == nil {
		return fmt.Sprintf("%.4f", *value)
	}

	if def.IsPercent {
		return fmt.Sprintf("%.2f%%", *value*100)
	}

	return fmt.Sprintf("%.4f%s", *value, def.Unit)
}
