// Package utils provides shared utility functions.
package utils

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{20.8261, 20.83},
		{-10.714, -10.71},
		{150.005, 150.01},
		{0, 0},
		{99.999, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(20.83); got != "+20.83%" {
		t.Errorf("FormatPercent(20.83) = %q, want +20.83%%", got)
	}
	if got := FormatPercent(-10.71); got != "-10.71%" {
		t.Errorf("FormatPercent(-10.71) = %q, want -10.71%%", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q, want 0.00%%", got)
	}
}

// Property: FormatPercent carries an explicit sign for gains, two decimal
// places, and a trailing percent, and the numeric part parses back to within
// rounding distance of the input.
func TestProperty_FormatPercent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("formatted percent round-trips", prop.ForAll(
		func(value float64) bool {
			formatted := FormatPercent(value)

			if !strings.HasSuffix(formatted, "%") {
				return false
			}
			numPart := strings.TrimSuffix(formatted, "%")

			if value > 0 && !strings.HasPrefix(numPart, "+") {
				return false
			}

			dot := strings.LastIndex(numPart, ".")
			if dot < 0 || len(numPart)-dot-1 != 2 {
				return false
			}

			parsed, err := strconv.ParseFloat(strings.TrimPrefix(numPart, "+"), 64)
			if err != nil {
				return false
			}
			return math.Abs(parsed-value) <= 0.005+1e-9
		},
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
