package binomial

import (
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// NodePrice returns spot * u^upMoves * d^downMoves. Integer powers are taken by
// repeated multiplication, truncating after every step, so that
// NodePrice(spot, u, d, 0, 0) is exactly spot. Negative move counts count as zero.
func NodePrice(spot, u, d fixed.Value, upMoves, downMoves int) fixed.Value {
	price := spot
	for i := 0; i < upMoves; i++ {
		price = price.Mul(u)
	}
	for i := 0; i < downMoves; i++ {
		price = price.Mul(d)
	}
	return price
}

// ExerciseValue returns the intrinsic payoff max(spot-strike, 0) for a call or
// max(strike-spot, 0) for a put.
func ExerciseValue(spot, strike fixed.Value, isCall bool) fixed.Value {
	if isCall {
		return fixed.Max(spot.Sub(strike), fixed.Zero)
	}
	return fixed.Max(strike.Sub(spot), fixed.Zero)
}

// IsEarlyExerciseOptimal reports whether exercising now strictly beats holding.
// Ties prefer continuation.
func IsEarlyExerciseOptimal(exerciseVal, continuationVal fixed.Value) bool {
	return exerciseVal.GreaterThan(continuationVal)
}
