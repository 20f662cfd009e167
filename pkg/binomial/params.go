// Package binomial prices American and European options on a recombining
// Cox-Ross-Rubinstein lattice using fixed-point arithmetic.
//
// The lattice is never materialized. A node is addressed by (step, j) where j is
// the number of down moves, and its spot price is recomputed on demand; backward
// induction holds a single level of steps+1 values at a time.
package binomial

import (
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// OptionParams holds the market and contract inputs of one pricing call.
type OptionParams struct {
	Spot         fixed.Value
	Strike       fixed.Value
	Volatility   fixed.Value
	RiskFreeRate fixed.Value
	TimeToExpiry fixed.Value // years
}

// LatticeConfig holds the derived lattice parameters for one pricing call.
type LatticeConfig struct {
	Up          fixed.Value // u = exp(volatility * sqrt(dt))
	Down        fixed.Value // d = 1 / u
	Probability fixed.Value // risk-neutral up probability
	Dt          fixed.Value // timeToExpiry / steps
	Discount    fixed.Value // exp(-riskFreeRate * dt), applied once per step
}

// OptionResult is the outcome of pricing an American option.
type OptionResult struct {
	Price                fixed.Value
	Delta                fixed.Value
	EarlyExercisePremium fixed.Value // American price minus European price
}

// Analysis bundles everything a single pipeline run produces.
type Analysis struct {
	Steps         int
	Lattice       LatticeConfig
	Result        OptionResult
	EuropeanPrice fixed.Value
	EuropeanDelta fixed.Value
	Boundary      []fixed.Value // len == Steps, NoBoundary where no node exercises
}

// Style selects whether early exercise is allowed during backward induction.
type Style int

const (
	// American allows exercise at every node.
	American Style = iota
	// European allows exercise at expiry only.
	European
)

func (s Style) String() string {
	switch s {
	case American:
		return "american"
	case European:
		return "european"
	default:
		return "unknown"
	}
}

// NoBoundary marks a boundary step where no node exercises early. A valid spot
// price is always positive, so zero never collides with a real boundary.
var NoBoundary = fixed.Zero

// HasBoundary reports whether a boundary entry holds an exercised spot price.
func HasBoundary(v fixed.Value) bool {
	return !v.Equal(NoBoundary)
}
