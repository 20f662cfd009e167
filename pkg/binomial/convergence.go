package binomial

import (
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// ConvergencePoint is the price at one step count of a convergence ladder.
type ConvergencePoint struct {
	Steps  int
	Price  fixed.Value
	Change fixed.Value // |price - previous price|, zero for the first rung
}

// Converge prices the same option at every step count of the ladder, in order.
func Converge(params OptionParams, isCall bool, style Style, ladder []int) ([]ConvergencePoint, error) {
	points := make([]ConvergencePoint, 0, len(ladder))
	for i, steps := range ladder {
		lat, err := prepare(params, steps)
		if err != nil {
			return nil, err
		}
		price := backwardInduct(params, lat, steps, isCall, style).price

		point := ConvergencePoint{Steps: steps, Price: price}
		if i > 0 {
			point.Change = price.Sub(points[i-1].Price).Abs()
		}
		points = append(points, point)
	}
	return points, nil
}
