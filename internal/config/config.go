// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for dates in config files.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for option-lattice.
type Configuration struct {
	Pricing   PricingConfig `yaml:"pricing,omitempty"`
	Contracts []Contract    `yaml:"contracts,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// PricingConfig holds defaults shared by every contract.
type PricingConfig struct {
	Steps         int    `yaml:"steps,omitempty" mapstructure:"steps"`
	Workers       int    `yaml:"workers,omitempty" mapstructure:"workers"`
	ValuationDate string `yaml:"valuationDate,omitempty" mapstructure:"valuationDate"`
	Convergence   []int  `yaml:"convergence,omitempty" mapstructure:"convergence"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigType("yml")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Pricing: validation.PricingConfig{
			Steps:         c.Pricing.Steps,
			ValuationDate: c.Pricing.ValuationDate,
			Convergence:   c.Pricing.Convergence,
		},
	}
	if validator.Pricing.Steps == 0 {
		validator.Pricing.Steps = constants.DefaultSteps
	}

	for _, contract := range c.Contracts {
		validator.Contracts = append(validator.Contracts, validation.ContractConfig{
			Name:       contract.Name,
			Active:     contract.Active,
			Type:       canonical(contract.Type),
			Style:      canonical(contract.Style),
			Volatility: contract.Volatility,
			Expiry:     contract.Expiry,
			Steps:      contract.Steps,
			Boundary:   contract.Boundary,
		})
	}

	return validator.ValidateAll()
}
