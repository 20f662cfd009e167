package binomial

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// estimateDelta is the finite difference across the two first-step nodes:
//
//	delta = (V(1,0) - V(1,1)) / (S*u - S*d)
func estimateDelta(params OptionParams, lat LatticeConfig, valueUp, valueDown fixed.Value) (fixed.Value, error) {
	priceUp := NodePrice(params.Spot, lat.Up, lat.Down, 1, 0)
	priceDown := NodePrice(params.Spot, lat.Up, lat.Down, 0, 1)
	delta, err := valueUp.Sub(valueDown).Div(priceUp.Sub(priceDown))
	if err != nil {
		return fixed.Zero, fmt.Errorf("binomial: delta: %w", err)
	}
	return delta, nil
}
