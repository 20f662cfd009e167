// Package format renders fixed-point values for display.
package format

import (
	"strings"

	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// Number returns v rounded to places decimals with thousands separators (e.g., "-1,234.560000").
func Number(v fixed.Value, places int32) string {
	formatted := v.StringFixed(places)
	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}
	return sign + groupThousands(formatted)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(v fixed.Value) string {
	formatted := Number(v, 2)
	if strings.HasPrefix(formatted, "-") {
		return "-$" + formatted[1:]
	}
	return "$" + formatted
}

// Percent returns a ratio as a percentage with the given decimals (e.g., "12.50%").
func Percent(ratio fixed.Value, places int32) string {
	return Number(ratio.Mul(fixed.FromInt(100)), places) + "%"
}

func groupThousands(unsigned string) string {
	parts := strings.SplitN(unsigned, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
