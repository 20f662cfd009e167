// Package output provides utilities for formatting and displaying valuation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/option-lattice/internal/valuation"
	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named output format.
func Write(w io.Writer, format string, results []valuation.Valuation) error {
	switch format {
	case constants.OutputFormatPretty:
		PrettyFormat(w, results)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatYAML:
		return YamlFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []valuation.Valuation) {
	p := message.NewPrinter(language.English)
	if len(results) > 0 {
		_, _ = fmt.Fprintf(w, "Run %s\n\n", results[0].RunID)
	}
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Valuation for contract %s (%s %s, %d steps) ---\n",
			result.Name, result.Style, result.Type, result.Steps)
		_, _ = fmt.Fprintf(w, "Field                  | Value\n")
		_, _ = fmt.Fprintf(w, "_____                  | _____\n")
		row := func(label string, value float64) {
			_, _ = p.Fprintf(w, "%-22s | %.6f\n", label, value)
		}
		row("Price", result.Price.Float64())
		row("Delta", result.Delta.Float64())
		row("European price", result.EuropeanPrice.Float64())
		row("Early exercise premium", result.EarlyExercisePremium.Float64())
		row("Intrinsic value", result.IntrinsicValue.Float64())
		row("Time value", result.TimeValue.Float64())
		row("Volatility", result.Params.Volatility.Float64())

		if iv := result.ImpliedVolatility; iv != nil {
			status := "not converged"
			if iv.Converged {
				status = "converged"
			}
			_, _ = p.Fprintf(w, "%-22s | %.6f (%s, %d iterations)\n", "Implied volatility",
				iv.Volatility.Float64(), status, iv.Iterations)
		}

		if len(result.Boundary) > 0 {
			_, _ = fmt.Fprintf(w, "\nStep | Early exercise boundary\n")
			_, _ = fmt.Fprintf(w, "____ | _______________________\n")
			for step, critical := range result.Boundary {
				if !binomial.HasBoundary(critical) {
					_, _ = fmt.Fprintf(w, "%4d | none\n", step)
					continue
				}
				_, _ = p.Fprintf(w, "%4d | %.6f\n", step, critical.Float64())
			}
		}

		if len(result.Convergence) > 0 {
			_, _ = fmt.Fprintf(w, "\nSteps | Price        | Change\n")
			_, _ = fmt.Fprintf(w, "_____ | ____________ | ______\n")
			for _, point := range result.Convergence {
				_, _ = p.Fprintf(w, "%5d | %.6f | %.6f\n", point.Steps, point.Price.Float64(), point.Change.Float64())
			}
		}

		if len(result.Notes) > 0 {
			_, _ = fmt.Fprintf(w, "\nNotes: %s\n", strings.Join(result.Notes, ", "))
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

var csvHeader = []string{
	"name", "type", "style", "steps",
	"spot", "strike", "volatility", "riskFreeRate", "timeToExpiry",
	"price", "delta", "europeanPrice", "earlyExercisePremium", "intrinsicValue", "timeValue",
	"impliedVolatility", "notes",
}

// CsvFormat outputs one row per valuation in comma-separated value format at
// full fixed-point precision.
func CsvFormat(w io.Writer, results []valuation.Valuation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		implied := ""
		if result.ImpliedVolatility != nil {
			implied = result.ImpliedVolatility.Volatility.String()
		}
		record := []string{
			result.Name,
			result.Type,
			result.Style,
			strconv.Itoa(result.Steps),
			result.Params.Spot.String(),
			result.Params.Strike.String(),
			result.Params.Volatility.String(),
			result.Params.RiskFreeRate.String(),
			result.Params.TimeToExpiry.String(),
			result.Price.String(),
			result.Delta.String(),
			result.EuropeanPrice.String(),
			result.EarlyExercisePremium.String(),
			result.IntrinsicValue.String(),
			result.TimeValue.String(),
			implied,
			strings.Join(result.Notes, "; "),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
