package binomial

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// BuildLattice validates the inputs and derives the CRR parameters:
//
//	dt = T / steps
//	u  = exp(volatility * sqrt(dt))
//	d  = 1 / u
//	p  = (exp(r * dt) - d) / (u - d)
//
// A parameterization whose p falls outside (0, 1) is not arbitrage-free at this
// step resolution and is rejected with ErrInvalidProbability.
func BuildLattice(params OptionParams, steps int) (LatticeConfig, error) {
	if err := Validate(params, steps); err != nil {
		return LatticeConfig{}, err
	}

	dt, err := params.TimeToExpiry.DivInt(int64(steps))
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: dt: %w", err)
	}
	sqrtDt, err := dt.Sqrt()
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: sqrt(dt): %w", err)
	}
	up, err := params.Volatility.Mul(sqrtDt).Exp()
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: up factor: %w", err)
	}
	down, err := fixed.One.Div(up)
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: down factor: %w", err)
	}
	if up.LessThanOrEqual(down) {
		// volatility*sqrt(dt) vanished at this scale; p is undefined
		return LatticeConfig{}, &Error{Kind: KindInvalidProbability, Value: fixed.Zero}
	}

	rdt := params.RiskFreeRate.Mul(dt)
	growth, err := rdt.Exp()
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: growth factor: %w", err)
	}
	p, err := growth.Sub(down).Div(up.Sub(down))
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: probability: %w", err)
	}
	if !p.IsPositive() || p.GreaterThanOrEqual(fixed.One) {
		return LatticeConfig{}, &Error{Kind: KindInvalidProbability, Value: p}
	}

	discount, err := rdt.Neg().Exp()
	if err != nil {
		return LatticeConfig{}, fmt.Errorf("binomial: discount factor: %w", err)
	}

	return LatticeConfig{
		Up:          up,
		Down:        down,
		Probability: p,
		Dt:          dt,
		Discount:    discount,
	}, nil
}
