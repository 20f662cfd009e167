// Package mathutil provides tolerance and percentage helpers over fixed-point values.
package mathutil

import (
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

var hundred = fixed.FromInt(100)

// WithinTolerance checks if two values are within a specified absolute tolerance.
func WithinTolerance(a, b, tolerance fixed.Value) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// RelativeDifference returns |a-b|/|b|. A zero reference yields |a-b|.
func RelativeDifference(a, b fixed.Value) fixed.Value {
	diff := a.Sub(b).Abs()
	if b.IsZero() {
		return diff
	}
	rel, err := diff.Div(b.Abs())
	if err != nil {
		return diff
	}
	return rel
}

// Percentage calculates what percentage value is of total.
func Percentage(value, total fixed.Value) fixed.Value {
	if total.IsZero() {
		return fixed.Zero
	}
	ratio, err := value.Div(total)
	if err != nil {
		return fixed.Zero
	}
	return ratio.Mul(hundred)
}

// Midpoint returns (a+b)/2 truncated toward zero.
func Midpoint(a, b fixed.Value) fixed.Value {
	mid, _ := a.Add(b).Div(fixed.Two)
	return mid
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi fixed.Value) fixed.Value {
	return fixed.Min(fixed.Max(v, lo), hi)
}
