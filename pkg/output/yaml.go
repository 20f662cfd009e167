package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/option-lattice/internal/valuation"
	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/fixed"
	"gopkg.in/yaml.v3"
)

// Report is the machine-readable valuation report.
type Report struct {
	RunID      string            `yaml:"runId"`
	Valuations []ValuationReport `yaml:"valuations"`
}

// ValuationReport is one contract in a Report.
type ValuationReport struct {
	Name                 string                   `yaml:"name"`
	Type                 string                   `yaml:"type"`
	Style                string                   `yaml:"style"`
	Steps                int                      `yaml:"steps"`
	Spot                 fixed.Value              `yaml:"spot"`
	Strike               fixed.Value              `yaml:"strike"`
	Volatility           fixed.Value              `yaml:"volatility"`
	RiskFreeRate         fixed.Value              `yaml:"riskFreeRate"`
	TimeToExpiry         fixed.Value              `yaml:"timeToExpiry"`
	Price                fixed.Value              `yaml:"price"`
	Delta                fixed.Value              `yaml:"delta"`
	EuropeanPrice        fixed.Value              `yaml:"europeanPrice"`
	EarlyExercisePremium fixed.Value              `yaml:"earlyExercisePremium"`
	IntrinsicValue       fixed.Value              `yaml:"intrinsicValue"`
	TimeValue            fixed.Value              `yaml:"timeValue"`
	Lattice              LatticeReport            `yaml:"lattice"`
	Boundary             []BoundaryPoint          `yaml:"boundary,omitempty"`
	Convergence          []ConvergenceReport      `yaml:"convergence,omitempty"`
	ImpliedVolatility    *ImpliedVolatilityReport `yaml:"impliedVolatility,omitempty"`
	Notes                []string                 `yaml:"notes,omitempty"`
}

// LatticeReport holds the derived lattice parameters of a valuation.
type LatticeReport struct {
	Up          fixed.Value `yaml:"up"`
	Down        fixed.Value `yaml:"down"`
	Probability fixed.Value `yaml:"probability"`
	Dt          fixed.Value `yaml:"dt"`
	Discount    fixed.Value `yaml:"discount"`
}

// BoundaryPoint is the boundary spot at a step where early exercise occurs.
// Steps without exercise are omitted.
type BoundaryPoint struct {
	Step int         `yaml:"step"`
	Spot fixed.Value `yaml:"spot"`
}

// ConvergenceReport is one rung of a convergence ladder.
type ConvergenceReport struct {
	Steps  int         `yaml:"steps"`
	Price  fixed.Value `yaml:"price"`
	Change fixed.Value `yaml:"change"`
}

// ImpliedVolatilityReport is the outcome of an implied volatility search.
type ImpliedVolatilityReport struct {
	Volatility fixed.Value `yaml:"volatility"`
	Price      fixed.Value `yaml:"price"`
	Iterations int         `yaml:"iterations"`
	Converged  bool        `yaml:"converged"`
}

// NewReport converts valuation results into a Report.
func NewReport(results []valuation.Valuation) Report {
	report := Report{Valuations: make([]ValuationReport, 0, len(results))}
	if len(results) > 0 {
		report.RunID = results[0].RunID
	}

	for _, result := range results {
		entry := ValuationReport{
			Name:                 result.Name,
			Type:                 result.Type,
			Style:                result.Style,
			Steps:                result.Steps,
			Spot:                 result.Params.Spot,
			Strike:               result.Params.Strike,
			Volatility:           result.Params.Volatility,
			RiskFreeRate:         result.Params.RiskFreeRate,
			TimeToExpiry:         result.Params.TimeToExpiry,
			Price:                result.Price,
			Delta:                result.Delta,
			EuropeanPrice:        result.EuropeanPrice,
			EarlyExercisePremium: result.EarlyExercisePremium,
			IntrinsicValue:       result.IntrinsicValue,
			TimeValue:            result.TimeValue,
			Lattice: LatticeReport{
				Up:          result.Lattice.Up,
				Down:        result.Lattice.Down,
				Probability: result.Lattice.Probability,
				Dt:          result.Lattice.Dt,
				Discount:    result.Lattice.Discount,
			},
			Notes: result.Notes,
		}
		for step, critical := range result.Boundary {
			if binomial.HasBoundary(critical) {
				entry.Boundary = append(entry.Boundary, BoundaryPoint{Step: step, Spot: critical})
			}
		}
		for _, point := range result.Convergence {
			entry.Convergence = append(entry.Convergence, ConvergenceReport{
				Steps:  point.Steps,
				Price:  point.Price,
				Change: point.Change,
			})
		}
		if iv := result.ImpliedVolatility; iv != nil {
			entry.ImpliedVolatility = &ImpliedVolatilityReport{
				Volatility: iv.Volatility,
				Price:      iv.Price,
				Iterations: iv.Iterations,
				Converged:  iv.Converged,
			}
		}
		report.Valuations = append(report.Valuations, entry)
	}
	return report
}

// YamlFormat outputs the valuation report as YAML.
func YamlFormat(w io.Writer, results []valuation.Valuation) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewReport(results)); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return encoder.Close()
}
