package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		n1, n2    float64
		tolerance float64
		want      bool
	}{
		{name: "within tolerance", n1: 100.2, n2: 100.0, tolerance: 0.5, want: true},
		{name: "magnitude factor 100", n1: 500, n2: 5, tolerance: 0, want: true},
		{name: "off by one at factor 100", n1: 499, n2: 5, tolerance: 0, want: false},
		{name: "factor 1000 density g/cm3 vs kg/m3", n1: 997, n2: 0.997, tolerance: 0, want: true},
		{name: "inverse factor", n1: 0.5, n2: 500, tolerance: 0, want: true},
		{name: "kelvin offset", n1: 0, n2: 273.15, tolerance: 0, want: true},
		{name: "kelvin offset with rounding", n1: 100, n2: 373, tolerance: 0, want: true},
		{name: "fahrenheit boiling point", n1: 100, n2: 212, tolerance: 0, want: true},
		{name: "fahrenheit reversed", n1: 212, n2: 100, tolerance: 0, want: true},
		{name: "plain mismatch", n1: 12.3, n2: 45.6, tolerance: 0.5, want: false},
		{name: "zero target skips factors", n1: 5, n2: 0, tolerance: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitEquivalent(tt.n1, tt.n2, tt.tolerance))
		})
	}
}
