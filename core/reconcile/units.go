package reconcile

import "math"

// magnitudeFactors covers the decimal-scale mismatches editions commonly
// disagree on: g/l vs g/100ml for solubility, g/cm³ vs kg/m³ for density.
var magnitudeFactors = [...]float64{10, 100, 1000, 0.1, 0.01, 0.001}

const (
	kelvinOffset = 273.15
	// kelvinSlack absorbs rounding in converted temperature values.
	kelvinSlack = 1.0
)

// UnitEquivalent reports whether two numbers can be considered equal under a
// bounded set of unit and scale transformations. The checks run in order and
// short-circuit: plain tolerance, decimal magnitude factors, Celsius/Kelvin
// offset, then Celsius/Fahrenheit both ways. This is an explicitly bounded
// heuristic, not a unit-conversion system.
func UnitEquivalent(n1, n2, tolerance float64) bool {
	// Plain tolerance; callers normally checked this already, kept here so
	// the resolver is usable on its own.
	if math.Abs(n1-n2) <= tolerance {
		return true
	}

	if n2 != 0 {
		for _, f := range magnitudeFactors {
			if math.Abs(n1-n2*f) <= tolerance {
				return true
			}
		}
	}

	if math.Abs(math.Abs(n1-n2)-kelvinOffset) <= kelvinSlack {
		return true
	}

	slack := math.Max(tolerance, 1.0)
	if math.Abs(n1*1.8+32-n2) <= slack {
		return true
	}
	if math.Abs((n1-32)/1.8-n2) <= slack {
		return true
	}

	return false
}
