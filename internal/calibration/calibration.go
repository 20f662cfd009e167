// Package calibration solves for the volatility that reproduces an observed
// option price on the binomial lattice.
package calibration

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/fixed"
	"github.com/iwvelando/option-lattice/pkg/format"
	"github.com/iwvelando/option-lattice/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	defaultMin       = fixed.MustParse(constants.DefaultMinVolatility)
	defaultMax       = fixed.MustParse(constants.DefaultMaxVolatility)
	defaultTolerance = fixed.MustParse(constants.DefaultVolatilityTolerance)

	floorMargin = fixed.MustParse("1.001")
)

// Config bounds an implied volatility search.
type Config struct {
	MarketPrice   fixed.Value
	Min           fixed.Value
	Max           fixed.Value
	Tolerance     fixed.Value
	MaxIterations int
}

// Normalize applies defaults to unset bounds.
func (c *Config) Normalize() {
	if c.Min.IsZero() {
		c.Min = defaultMin
	}
	if c.Max.IsZero() {
		c.Max = defaultMax
	}
	if !c.Tolerance.IsPositive() {
		c.Tolerance = defaultTolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = constants.DefaultMaxIterations
	}
}

// Validate returns an error when the search cannot be run.
func (c Config) Validate() error {
	if !c.MarketPrice.IsPositive() {
		return fmt.Errorf("market price %s must be positive", c.MarketPrice)
	}
	if !c.Min.IsPositive() {
		return fmt.Errorf("minimum volatility %s must be positive", c.Min)
	}
	if c.Min.GreaterThanOrEqual(c.Max) {
		return fmt.Errorf("minimum volatility %s must be less than maximum %s", c.Min, c.Max)
	}
	return nil
}

// Result summarizes an implied volatility search.
type Result struct {
	Volatility fixed.Value
	Price      fixed.Value
	Iterations int
	Converged  bool
	Notes      []string
}

// Solver runs bisection searches over volatility.
type Solver struct {
	logger *zap.Logger
}

// NewSolver constructs a Solver.
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger}
}

// Solve finds the volatility whose lattice price matches cfg.MarketPrice. The
// volatility in params is ignored. A market price outside the prices attainable
// within [cfg.Min, cfg.Max] yields an unconverged result pinned to the nearer
// bound rather than an error.
func (s *Solver) Solve(params binomial.OptionParams, isCall, american bool, steps int, cfg Config) (Result, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("calibration: %w", err)
	}

	price := func(vol fixed.Value) (fixed.Value, error) {
		p := params
		p.Volatility = vol
		var (
			v   fixed.Value
			err error
		)
		switch {
		case !american:
			v, err = binomial.PriceEuropean(p, isCall, steps)
		case isCall:
			var r binomial.OptionResult
			r, err = binomial.PriceCallWithSteps(p, steps)
			v = r.Price
		default:
			var r binomial.OptionResult
			r, err = binomial.PricePutWithSteps(p, steps)
			v = r.Price
		}
		if err != nil {
			return fixed.Zero, fmt.Errorf("calibration: price at volatility %s: %w", vol, err)
		}
		return v, nil
	}

	var notes []string
	lo, hi := cfg.Min, cfg.Max
	floor, err := volatilityFloor(params, steps)
	if err != nil {
		return Result{}, fmt.Errorf("calibration: %w", err)
	}
	if lo.LessThanOrEqual(floor) {
		lo = floor.Mul(floorMargin)
		if lo.GreaterThanOrEqual(hi) {
			return Result{}, fmt.Errorf("calibration: maximum volatility %s does not exceed the lattice floor %s", hi, lo)
		}
		notes = append(notes, fmt.Sprintf("minimum volatility raised from %s to %s to keep the risk-neutral probability below 1", cfg.Min, lo))
	}

	lowPrice, err := price(lo)
	if err != nil {
		return Result{}, err
	}
	highPrice, err := price(hi)
	if err != nil {
		return Result{}, err
	}

	if cfg.MarketPrice.LessThan(lowPrice) {
		return Result{
			Volatility: lo,
			Price:      lowPrice,
			Notes: append(notes, fmt.Sprintf("market price %s is below the model price %s at minimum volatility %s",
				format.Number(cfg.MarketPrice, constants.DisplayPlaces), format.Number(lowPrice, constants.DisplayPlaces), lo)),
		}, nil
	}
	if cfg.MarketPrice.GreaterThan(highPrice) {
		return Result{
			Volatility: hi,
			Price:      highPrice,
			Notes: append(notes, fmt.Sprintf("market price %s is above the model price %s at maximum volatility %s",
				format.Number(cfg.MarketPrice, constants.DisplayPlaces), format.Number(highPrice, constants.DisplayPlaces), hi)),
		}, nil
	}

	result := Result{Notes: notes}
	for result.Iterations < cfg.MaxIterations {
		if hi.Sub(lo).LessThanOrEqual(cfg.Tolerance) {
			result.Converged = true
			break
		}
		mid := mathutil.Midpoint(lo, hi)
		midPrice, err := price(mid)
		if err != nil {
			return Result{}, err
		}
		result.Iterations++
		if midPrice.LessThan(cfg.MarketPrice) {
			lo = mid
		} else {
			hi = mid
		}
		s.logger.Debug("bisection step",
			zap.String("op", "calibration.Solve"),
			zap.Int("iteration", result.Iterations),
			zap.String("volatility", mid.String()),
			zap.String("price", midPrice.String()),
		)
	}
	if !result.Converged && hi.Sub(lo).LessThanOrEqual(cfg.Tolerance) {
		result.Converged = true
	}

	result.Volatility = mathutil.Midpoint(lo, hi)
	result.Price, err = price(result.Volatility)
	if err != nil {
		return Result{}, err
	}
	if !result.Converged {
		result.Notes = append(result.Notes, fmt.Sprintf("bisection stopped after %d iterations with bracket width %s",
			result.Iterations, hi.Sub(lo)))
	}

	s.logger.Debug("implied volatility solved",
		zap.String("op", "calibration.Solve"),
		zap.String("volatility", result.Volatility.String()),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged),
	)
	return result, nil
}

// volatilityFloor returns r*sqrt(dt). At or below it the up factor no longer
// exceeds one-step growth and the lattice has no valid probability.
func volatilityFloor(params binomial.OptionParams, steps int) (fixed.Value, error) {
	if err := binomial.ValidateSteps(steps); err != nil {
		return fixed.Zero, err
	}
	dt, err := params.TimeToExpiry.DivInt(int64(steps))
	if err != nil {
		return fixed.Zero, err
	}
	root, err := dt.Sqrt()
	if err != nil {
		return fixed.Zero, err
	}
	return params.RiskFreeRate.Mul(root), nil
}
