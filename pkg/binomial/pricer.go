package binomial

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// PriceCall prices an American call with the default step count.
func PriceCall(params OptionParams) (OptionResult, error) {
	return PriceCallWithSteps(params, constants.DefaultSteps)
}

// PricePut prices an American put with the default step count.
func PricePut(params OptionParams) (OptionResult, error) {
	return PricePutWithSteps(params, constants.DefaultSteps)
}

// PriceCallWithSteps prices an American call on a lattice of the given size.
func PriceCallWithSteps(params OptionParams, steps int) (OptionResult, error) {
	analysis, err := Analyze(params, true, steps)
	if err != nil {
		return OptionResult{}, err
	}
	return analysis.Result, nil
}

// PricePutWithSteps prices an American put on a lattice of the given size.
func PricePutWithSteps(params OptionParams, steps int) (OptionResult, error) {
	analysis, err := Analyze(params, false, steps)
	if err != nil {
		return OptionResult{}, err
	}
	return analysis.Result, nil
}

// PriceEuropean prices the European benchmark, i.e. the same lattice without
// early exercise.
func PriceEuropean(params OptionParams, isCall bool, steps int) (fixed.Value, error) {
	lat, err := prepare(params, steps)
	if err != nil {
		return fixed.Zero, err
	}
	return backwardInduct(params, lat, steps, isCall, European).price, nil
}

// EarlyExerciseBoundary returns, for each non-terminal step, the minimal (put)
// or maximal (call) spot price among the nodes where early exercise is optimal,
// or NoBoundary where no node exercises. The result has exactly steps entries.
func EarlyExerciseBoundary(params OptionParams, isCall bool, steps int) ([]fixed.Value, error) {
	lat, err := prepare(params, steps)
	if err != nil {
		return nil, err
	}
	return backwardInduct(params, lat, steps, isCall, American).boundary, nil
}

// Analyze runs the American and European inductions once each and returns
// every derived quantity.
func Analyze(params OptionParams, isCall bool, steps int) (Analysis, error) {
	lat, err := prepare(params, steps)
	if err != nil {
		return Analysis{}, err
	}

	american := backwardInduct(params, lat, steps, isCall, American)
	european := backwardInduct(params, lat, steps, isCall, European)

	delta, err := estimateDelta(params, lat, american.valueUp, american.valueDown)
	if err != nil {
		return Analysis{}, err
	}
	europeanDelta, err := estimateDelta(params, lat, european.valueUp, european.valueDown)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Steps:   steps,
		Lattice: lat,
		Result: OptionResult{
			Price:                american.price,
			Delta:                delta,
			EarlyExercisePremium: american.price.Sub(european.price),
		},
		EuropeanPrice: european.price,
		EuropeanDelta: europeanDelta,
		Boundary:      american.boundary,
	}, nil
}

// prepare builds the lattice and makes sure the highest node price stays within
// the fixed-point range, so induction itself cannot overflow.
func prepare(params OptionParams, steps int) (LatticeConfig, error) {
	lat, err := BuildLattice(params, steps)
	if err != nil {
		return LatticeConfig{}, err
	}
	if top := NodePrice(params.Spot, lat.Up, lat.Down, steps, 0); !top.Bounded() {
		return LatticeConfig{}, fmt.Errorf("binomial: top node price: %w", fixed.ErrOverflow)
	}
	return lat, nil
}
