package binomial

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// ErrorKind identifies which input or derived quantity was rejected.
type ErrorKind int

const (
	KindInvalidSpotPrice ErrorKind = iota + 1
	KindInvalidStrikePrice
	KindInvalidVolatility
	KindInvalidTimeToExpiry
	KindInvalidRiskFreeRate
	KindInvalidSteps
	KindInvalidProbability
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSpotPrice:
		return "invalid spot price"
	case KindInvalidStrikePrice:
		return "invalid strike price"
	case KindInvalidVolatility:
		return "invalid volatility"
	case KindInvalidTimeToExpiry:
		return "invalid time to expiry"
	case KindInvalidRiskFreeRate:
		return "invalid risk-free rate"
	case KindInvalidSteps:
		return "invalid steps"
	case KindInvalidProbability:
		return "invalid probability"
	default:
		return "unknown error"
	}
}

// Field returns the name of the offending input.
func (k ErrorKind) Field() string {
	switch k {
	case KindInvalidSpotPrice:
		return "spot"
	case KindInvalidStrikePrice:
		return "strike"
	case KindInvalidVolatility:
		return "volatility"
	case KindInvalidTimeToExpiry:
		return "timeToExpiry"
	case KindInvalidRiskFreeRate:
		return "riskFreeRate"
	case KindInvalidSteps:
		return "steps"
	case KindInvalidProbability:
		return "probability"
	default:
		return ""
	}
}

// Error reports a rejected input together with the offending value. Value is
// set for every kind except KindInvalidSteps, which sets Steps.
type Error struct {
	Kind  ErrorKind
	Value fixed.Value
	Steps int
}

func (e *Error) Error() string {
	if e.Kind == KindInvalidSteps {
		return fmt.Sprintf("binomial: %s %d: must be within [%d, %d]",
			e.Kind, e.Steps, constants.MinSteps, constants.MaxSteps)
	}
	return fmt.Sprintf("binomial: %s %s", e.Kind, e.Value)
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of the offending value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. Use errors.As to retrieve the offending value.
var (
	ErrInvalidSpotPrice    = &Error{Kind: KindInvalidSpotPrice}
	ErrInvalidStrikePrice  = &Error{Kind: KindInvalidStrikePrice}
	ErrInvalidVolatility   = &Error{Kind: KindInvalidVolatility}
	ErrInvalidTimeToExpiry = &Error{Kind: KindInvalidTimeToExpiry}
	ErrInvalidRiskFreeRate = &Error{Kind: KindInvalidRiskFreeRate}
	ErrInvalidSteps        = &Error{Kind: KindInvalidSteps}
	ErrInvalidProbability  = &Error{Kind: KindInvalidProbability}
)
