package binomial

import (
	"github.com/iwvelando/option-lattice/pkg/constants"
)

// Validate rejects malformed inputs before any arithmetic is attempted. Fields
// are checked in a fixed order and the first violation is returned.
func Validate(params OptionParams, steps int) error {
	switch {
	case !params.Spot.IsPositive():
		return &Error{Kind: KindInvalidSpotPrice, Value: params.Spot}
	case !params.Strike.IsPositive():
		return &Error{Kind: KindInvalidStrikePrice, Value: params.Strike}
	case !params.Volatility.IsPositive():
		return &Error{Kind: KindInvalidVolatility, Value: params.Volatility}
	case !params.TimeToExpiry.IsPositive():
		return &Error{Kind: KindInvalidTimeToExpiry, Value: params.TimeToExpiry}
	case params.RiskFreeRate.IsNegative():
		return &Error{Kind: KindInvalidRiskFreeRate, Value: params.RiskFreeRate}
	}
	return ValidateSteps(steps)
}

// ValidateSteps enforces the [MinSteps, MaxSteps] bound.
func ValidateSteps(steps int) error {
	if steps < constants.MinSteps || steps > constants.MaxSteps {
		return &Error{Kind: KindInvalidSteps, Steps: steps}
	}
	return nil
}
