// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/datetime"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// highVolatility is the annualized volatility above which a contract is flagged.
var highVolatility = fixed.FromInt(2)

// ValidateSteps warns when a lattice is too coarse for a converged price.
func ValidateSteps(contractName string, steps int) string {
	if steps > 0 && steps < constants.ConvergenceWarnSteps {
		return fmt.Sprintf("Contract '%s' uses %d steps - price may not have converged (recommend at least %d)",
			contractName, steps, constants.ConvergenceWarnSteps)
	}
	return ""
}

// ValidateExpiry checks that a dated contract expires after the valuation date.
func ValidateExpiry(contractName, valuationDate, expiry string) (string, error) {
	before, err := datetime.DateBeforeDate(valuationDate, expiry)
	if err != nil {
		return "", err
	}
	if !before {
		return fmt.Sprintf("Contract '%s' expires on or before the valuation date (%s <= %s)",
			contractName, expiry, valuationDate), nil
	}
	return "", nil
}

// ValidateVolatility flags volatilities that are likely entered as percentages.
func ValidateVolatility(contractName, volatility string) string {
	v, err := fixed.Parse(volatility)
	if err != nil {
		return ""
	}
	if v.GreaterThan(highVolatility) {
		return fmt.Sprintf("Contract '%s' volatility %s exceeds %s - volatility is a decimal fraction, not a percentage",
			contractName, volatility, highVolatility)
	}
	return ""
}

// ValidateBoundaryRequest flags boundary requests that can only produce empty results.
func ValidateBoundaryRequest(contractName, optionType, style string, boundary bool) string {
	if !boundary {
		return ""
	}
	if style == constants.StyleEuropean {
		return fmt.Sprintf("Contract '%s' requests an early exercise boundary but is european style - boundary omitted",
			contractName)
	}
	if optionType == constants.OptionTypeCall {
		return fmt.Sprintf("Contract '%s' requests an early exercise boundary for a call - calls are never exercised early without dividends",
			contractName)
	}
	return ""
}

// ConfigValidator validates a configuration and collects warnings.
type ConfigValidator struct {
	Pricing   PricingConfig
	Contracts []ContractConfig
}

type PricingConfig struct {
	Steps         int
	ValuationDate string
	Convergence   []int
}

type ContractConfig struct {
	Name       string
	Active     bool
	Type       string
	Style      string
	Volatility string
	Expiry     string
	Steps      int
	Boundary   bool
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	active := 0
	for _, contract := range cv.Contracts {
		if !contract.Active {
			continue
		}
		active++

		steps := contract.Steps
		if steps == 0 {
			steps = cv.Pricing.Steps
		}
		if warning := ValidateSteps(contract.Name, steps); warning != "" {
			warnings = append(warnings, warning)
		}

		if contract.Expiry != "" && cv.Pricing.ValuationDate != "" {
			warning, err := ValidateExpiry(contract.Name, cv.Pricing.ValuationDate, contract.Expiry)
			if err == nil && warning != "" {
				warnings = append(warnings, warning)
			}
		}

		if warning := ValidateVolatility(contract.Name, contract.Volatility); warning != "" {
			warnings = append(warnings, warning)
		}

		if warning := ValidateBoundaryRequest(contract.Name, contract.Type, contract.Style, contract.Boundary); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active contracts - nothing will be priced")
	}

	for i := 1; i < len(cv.Pricing.Convergence); i++ {
		if cv.Pricing.Convergence[i] <= cv.Pricing.Convergence[i-1] {
			warnings = append(warnings, fmt.Sprintf("Convergence ladder is not strictly increasing at %d -> %d",
				cv.Pricing.Convergence[i-1], cv.Pricing.Convergence[i]))
			break
		}
	}

	return warnings
}
