// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
)

// Round2 rounds a value to two decimal places, for display and export.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice formats a price with two decimal places.
func FormatPrice(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}
