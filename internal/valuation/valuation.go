// Package valuation prices every active contract in a configuration on the
// binomial lattice and collects the results.
package valuation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iwvelando/option-lattice/internal/calibration"
	"github.com/iwvelando/option-lattice/internal/config"
	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/fixed"
	"github.com/iwvelando/option-lattice/pkg/format"
	"github.com/iwvelando/option-lattice/pkg/mathutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// convergenceNoteThreshold is the relative change between the last two ladder
// rungs above which a valuation is flagged as unconverged.
var convergenceNoteThreshold = fixed.MustParse("0.001")

// Valuation holds all information related to one priced contract.
type Valuation struct {
	RunID string
	Name  string
	Type  string
	Style string
	Steps int

	Params  binomial.OptionParams
	Lattice binomial.LatticeConfig

	Price                fixed.Value
	Delta                fixed.Value
	EarlyExercisePremium fixed.Value
	EuropeanPrice        fixed.Value
	IntrinsicValue       fixed.Value
	TimeValue            fixed.Value

	Boundary          []fixed.Value
	Convergence       []binomial.ConvergencePoint
	ImpliedVolatility *calibration.Result
	Notes             []string
}

// GetValuations prices every active contract. Contracts must already have been
// parsed with config.ParseContracts. Results keep configuration order.
func GetValuations(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Valuation, error) {
	return GetValuationsWithRunID(ctx, logger, conf, uuid.NewString())
}

// GetValuationsWithRunID is GetValuations with a caller-supplied run identifier.
func GetValuationsWithRunID(ctx context.Context, logger *zap.Logger, conf config.Configuration, runID string) ([]Valuation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("runID", runID))

	var active []config.Contract
	for _, contract := range conf.Contracts {
		if !contract.Active {
			logger.Debug(fmt.Sprintf("skipping contract %s because it is inactive", contract.Name),
				zap.String("op", "valuation.GetValuations"),
			)
			continue
		}
		active = append(active, contract)
	}

	results := make([]Valuation, len(active))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conf.Pricing.ResolvedWorkers())

	defaultSteps := conf.Pricing.ResolvedSteps()
	for i := range active {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			contract := active[i]
			v, err := valueContract(logger, contract, contract.ResolvedSteps(defaultSteps), conf.Pricing.Convergence)
			if err != nil {
				return fmt.Errorf("contract %q: %w", contract.Name, err)
			}
			v.RunID = runID
			results[i] = v
			logger.Debug("contract priced",
				zap.String("op", "valuation.GetValuations"),
				zap.String("contract", v.Name),
				zap.Int("steps", v.Steps),
				zap.String("price", v.Price.String()),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("valuations complete",
		zap.String("op", "valuation.GetValuations"),
		zap.Int("contracts", len(results)),
	)
	return results, nil
}

func valueContract(logger *zap.Logger, contract config.Contract, steps int, ladder []int) (Valuation, error) {
	isCall := contract.IsCall()
	american := contract.IsAmerican()
	params := contract.Params

	v := Valuation{
		Name:  contract.Name,
		Type:  constants.OptionTypePut,
		Style: constants.StyleAmerican,
		Steps: steps,
	}
	if isCall {
		v.Type = constants.OptionTypeCall
	}
	if !american {
		v.Style = constants.StyleEuropean
	}

	if contract.Calibration != nil {
		solver := calibration.NewSolver(logger)
		result, err := solver.Solve(params, isCall, american, steps, *contract.Calibration)
		if err != nil {
			return Valuation{}, err
		}
		v.ImpliedVolatility = &result
		params.Volatility = result.Volatility
		v.Notes = append(v.Notes, result.Notes...)
	}
	v.Params = params

	analysis, err := binomial.Analyze(params, isCall, steps)
	if err != nil {
		return Valuation{}, err
	}
	v.Lattice = analysis.Lattice
	v.EuropeanPrice = analysis.EuropeanPrice

	if american {
		v.Price = analysis.Result.Price
		v.Delta = analysis.Result.Delta
		v.EarlyExercisePremium = analysis.Result.EarlyExercisePremium
		if contract.Boundary {
			v.Boundary = analysis.Boundary
		}
	} else {
		v.Price = analysis.EuropeanPrice
		v.Delta = analysis.EuropeanDelta
		v.EarlyExercisePremium = fixed.Zero
	}

	v.IntrinsicValue = binomial.ExerciseValue(params.Spot, params.Strike, isCall)
	v.TimeValue = v.Price.Sub(v.IntrinsicValue)

	rungs, skipped, err := usableRungs(params, ladder)
	if err != nil {
		return Valuation{}, fmt.Errorf("convergence: %w", err)
	}
	v.Notes = append(v.Notes, skipped...)
	if len(rungs) > 0 {
		style := binomial.American
		if !american {
			style = binomial.European
		}
		points, err := binomial.Converge(params, isCall, style, rungs)
		if err != nil {
			return Valuation{}, fmt.Errorf("convergence: %w", err)
		}
		v.Convergence = points
	}

	v.Notes = append(v.Notes, notes(v)...)
	return v, nil
}

// usableRungs drops ladder rungs whose lattice has no valid risk-neutral
// probability for these parameters, returning a note for each one dropped.
// Coarse rungs have a higher volatility floor than the contract's own step
// count, so a calibrated volatility can be valid for one and not the other.
func usableRungs(params binomial.OptionParams, ladder []int) ([]int, []string, error) {
	rungs := make([]int, 0, len(ladder))
	var skipped []string
	for _, steps := range ladder {
		if _, err := binomial.BuildLattice(params, steps); err != nil {
			if errors.Is(err, binomial.ErrInvalidProbability) {
				skipped = append(skipped, fmt.Sprintf("convergence rung %d skipped: %v", steps, err))
				continue
			}
			return nil, nil, err
		}
		rungs = append(rungs, steps)
	}
	return rungs, skipped, nil
}

func notes(v Valuation) []string {
	var out []string

	if v.EarlyExercisePremium.IsPositive() {
		out = append(out, fmt.Sprintf("early exercise premium is %s%% of price",
			format.Number(mathutil.Percentage(v.EarlyExercisePremium, v.Price), 2)))
	}

	if v.Style == constants.StyleAmerican && v.IntrinsicValue.IsPositive() && v.TimeValue.IsZero() {
		out = append(out, "immediate exercise is optimal")
	}

	if n := len(v.Convergence); n > 1 {
		last := v.Convergence[n-1]
		if mathutil.RelativeDifference(last.Price, v.Convergence[n-2].Price).GreaterThan(convergenceNoteThreshold) {
			out = append(out, fmt.Sprintf("price moved %s between %d and %d steps",
				format.Number(last.Change, constants.DisplayPlaces), v.Convergence[n-2].Steps, last.Steps))
		}
	}

	return out
}
