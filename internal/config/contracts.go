package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/option-lattice/internal/calibration"
	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/datetime"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// Contract describes one option to price. Numeric fields are decimal strings
// so that no precision is lost to float parsing.
type Contract struct {
	Name              string             `yaml:"name"`
	Active            bool               `yaml:"active"`
	Type              string             `yaml:"type"`            // call, put
	Style             string             `yaml:"style,omitempty"` // american, european
	Spot              string             `yaml:"spot"`
	Strike            string             `yaml:"strike"`
	Volatility        string             `yaml:"volatility"`
	RiskFreeRate      string             `yaml:"riskFreeRate" mapstructure:"riskFreeRate"`
	TimeToExpiry      string             `yaml:"timeToExpiry,omitempty" mapstructure:"timeToExpiry"`
	Expiry            string             `yaml:"expiry,omitempty"`
	Steps             int                `yaml:"steps,omitempty"`
	Boundary          bool               `yaml:"boundary,omitempty"`
	ImpliedVolatility *CalibrationConfig `yaml:"impliedVolatility,omitempty" mapstructure:"impliedVolatility"`

	// Populated by ParseContracts.
	Params      binomial.OptionParams `yaml:"-" mapstructure:"-"`
	Calibration *calibration.Config   `yaml:"-" mapstructure:"-"`
}

// CalibrationConfig requests an implied volatility search for a contract.
type CalibrationConfig struct {
	MarketPrice   string `yaml:"marketPrice" mapstructure:"marketPrice"`
	Min           string `yaml:"min,omitempty"`
	Max           string `yaml:"max,omitempty"`
	Tolerance     string `yaml:"tolerance,omitempty"`
	MaxIterations int    `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// IsCall reports whether the contract is a call.
func (c *Contract) IsCall() bool {
	return canonical(c.Type) == constants.OptionTypeCall
}

// IsAmerican reports whether the contract allows early exercise. Style
// defaults to american.
func (c *Contract) IsAmerican() bool {
	return canonical(c.Style) != constants.StyleEuropean
}

// ResolvedSteps returns the contract's step count or the pricing default.
func (c *Contract) ResolvedSteps(defaultSteps int) int {
	if c.Steps != 0 {
		return c.Steps
	}
	return defaultSteps
}

// ResolvedSteps returns the configured default step count or DefaultSteps.
func (p PricingConfig) ResolvedSteps() int {
	if p.Steps != 0 {
		return p.Steps
	}
	return constants.DefaultSteps
}

// ResolvedWorkers returns the configured worker count or DefaultWorkers.
func (p PricingConfig) ResolvedWorkers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return constants.DefaultWorkers
}

func canonical(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ParseContracts converts every active contract's decimal strings into pricing
// parameters. Expiry dates are measured from today unless pricing.valuationDate
// is set.
func (conf *Configuration) ParseContracts() error {
	return conf.ParseContractsWithFixedTime(time.Now())
}

// ParseContractsWithFixedTime parses all contracts using fixedTime as the
// valuation date when none is configured.
func (conf *Configuration) ParseContractsWithFixedTime(fixedTime time.Time) error {
	if err := binomial.ValidateSteps(conf.Pricing.ResolvedSteps()); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	for _, rung := range conf.Pricing.Convergence {
		if err := binomial.ValidateSteps(rung); err != nil {
			return fmt.Errorf("pricing convergence: %w", err)
		}
	}

	valuationDate := conf.Pricing.ValuationDate
	if valuationDate == "" {
		valuationDate = fixedTime.Format(DateLayout)
	} else if _, err := datetime.ParseDate(valuationDate); err != nil {
		return fmt.Errorf("pricing valuationDate: %w", err)
	}

	seen := make(map[string]bool)
	for i := range conf.Contracts {
		contract := &conf.Contracts[i]
		if !contract.Active {
			continue
		}
		if contract.Name == "" {
			return fmt.Errorf("contract %d: name is required", i)
		}
		if seen[contract.Name] {
			return fmt.Errorf("contract %q: duplicate name", contract.Name)
		}
		seen[contract.Name] = true

		if err := contract.parse(valuationDate); err != nil {
			return fmt.Errorf("contract %q: %w", contract.Name, err)
		}
		if err := binomial.ValidateSteps(contract.ResolvedSteps(conf.Pricing.ResolvedSteps())); err != nil {
			return fmt.Errorf("contract %q: %w", contract.Name, err)
		}
	}

	return nil
}

func (c *Contract) parse(valuationDate string) error {
	switch canonical(c.Type) {
	case constants.OptionTypeCall, constants.OptionTypePut:
	default:
		return fmt.Errorf("type %q is not supported, expected %s or %s", c.Type, constants.OptionTypeCall, constants.OptionTypePut)
	}
	switch canonical(c.Style) {
	case "", constants.StyleAmerican, constants.StyleEuropean:
	default:
		return fmt.Errorf("style %q is not supported, expected %s or %s", c.Style, constants.StyleAmerican, constants.StyleEuropean)
	}

	var params binomial.OptionParams
	var err error
	if params.Spot, err = parseField("spot", c.Spot); err != nil {
		return err
	}
	if params.Strike, err = parseField("strike", c.Strike); err != nil {
		return err
	}
	if params.RiskFreeRate, err = parseField("riskFreeRate", c.RiskFreeRate); err != nil {
		return err
	}

	switch {
	case c.TimeToExpiry != "" && c.Expiry != "":
		return fmt.Errorf("timeToExpiry and expiry are mutually exclusive")
	case c.TimeToExpiry != "":
		if params.TimeToExpiry, err = parseField("timeToExpiry", c.TimeToExpiry); err != nil {
			return err
		}
	case c.Expiry != "":
		if params.TimeToExpiry, err = datetime.YearFraction(valuationDate, c.Expiry); err != nil {
			return fmt.Errorf("expiry: %w", err)
		}
	default:
		return fmt.Errorf("one of timeToExpiry or expiry is required")
	}

	if c.ImpliedVolatility != nil {
		cal, err := c.ImpliedVolatility.parse()
		if err != nil {
			return fmt.Errorf("impliedVolatility: %w", err)
		}
		c.Calibration = &cal
		// The solver replaces volatility, so a placeholder is allowed.
		if c.Volatility == "" {
			params.Volatility = cal.Min
		} else if params.Volatility, err = parseField("volatility", c.Volatility); err != nil {
			return err
		}
	} else if params.Volatility, err = parseField("volatility", c.Volatility); err != nil {
		return err
	}

	c.Params = params
	return nil
}

func (cc *CalibrationConfig) parse() (calibration.Config, error) {
	var cfg calibration.Config
	var err error
	if cfg.MarketPrice, err = parseField("marketPrice", cc.MarketPrice); err != nil {
		return cfg, err
	}
	if cfg.Min, err = parseOptional("min", cc.Min); err != nil {
		return cfg, err
	}
	if cfg.Max, err = parseOptional("max", cc.Max); err != nil {
		return cfg, err
	}
	if cfg.Tolerance, err = parseOptional("tolerance", cc.Tolerance); err != nil {
		return cfg, err
	}
	cfg.MaxIterations = cc.MaxIterations
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseField(field, value string) (fixed.Value, error) {
	if strings.TrimSpace(value) == "" {
		return fixed.Zero, fmt.Errorf("%s is required", field)
	}
	v, err := fixed.Parse(strings.TrimSpace(value))
	if err != nil {
		return fixed.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func parseOptional(field, value string) (fixed.Value, error) {
	if strings.TrimSpace(value) == "" {
		return fixed.Zero, nil
	}
	return parseField(field, value)
}
