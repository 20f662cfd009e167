package binomial

import (
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// induction is the output of one backward pass over the lattice.
type induction struct {
	price     fixed.Value
	valueUp   fixed.Value // option value at (1, 0)
	valueDown fixed.Value // option value at (1, 1)
	boundary  []fixed.Value
}

// backwardInduct walks the lattice from the terminal payoffs to the root. Only
// the current level is held: values[j] is the option value at (step, j) where j
// counts down moves, and level step-1 overwrites it in place since node j only
// reads j and j+1.
func backwardInduct(params OptionParams, lat LatticeConfig, steps int, isCall bool, style Style) induction {
	values := make([]fixed.Value, steps+1)
	for j := 0; j <= steps; j++ {
		spot := NodePrice(params.Spot, lat.Up, lat.Down, steps-j, j)
		values[j] = ExerciseValue(spot, params.Strike, isCall)
	}

	var result induction
	if style == American {
		result.boundary = make([]fixed.Value, steps)
	}
	if steps == 1 {
		result.valueUp, result.valueDown = values[0], values[1]
	}

	q := fixed.One.Sub(lat.Probability)
	for step := steps - 1; step >= 0; step-- {
		for j := 0; j <= step; j++ {
			expected := lat.Probability.Mul(values[j]).Add(q.Mul(values[j+1]))
			continuation := lat.Discount.Mul(expected)
			if style == European {
				values[j] = continuation
				continue
			}

			spot := NodePrice(params.Spot, lat.Up, lat.Down, step-j, j)
			exercise := ExerciseValue(spot, params.Strike, isCall)
			if IsEarlyExerciseOptimal(exercise, continuation) {
				values[j] = exercise
				result.boundary[step] = trackBoundary(result.boundary[step], spot, isCall)
			} else {
				values[j] = continuation
			}
		}
		if step == 1 {
			result.valueUp, result.valueDown = values[0], values[1]
		}
	}

	result.price = values[0]
	return result
}

// trackBoundary keeps the extreme exercised spot at a step: the minimal
// exercised spot for a put and the maximal exercised spot for a call.
func trackBoundary(current, spot fixed.Value, isCall bool) fixed.Value {
	if !HasBoundary(current) {
		return spot
	}
	if isCall {
		return fixed.Max(current, spot)
	}
	return fixed.Min(current, spot)
}
