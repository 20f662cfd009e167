// Package constants provides shared constants for the option-lattice application.
package constants

// Scale is the number of fractional decimal digits in every fixed-point value.
const Scale = 18

// Lattice step bounds. Induction cost grows quadratically with steps, so the
// upper bound is enforced on every pricing call.
const (
	// MinSteps is the smallest accepted lattice step count.
	MinSteps = 1

	// MaxSteps is the largest accepted lattice step count.
	MaxSteps = 64

	// DefaultSteps is used by PriceCall and PricePut.
	DefaultSteps = 32

	// ConvergenceWarnSteps is the step count below which configuration
	// validation warns that prices may not have converged.
	ConvergenceWarnSteps = 16
)

// DateLayout is the format expected for expiry and valuation dates in config files.
const DateLayout = "2006-01-02"

// DaysPerYear is the ACT/365 day-count denominator.
const DaysPerYear = 365

// Option type and exercise style identifiers used in config files.
const (
	OptionTypeCall = "call"
	OptionTypePut  = "put"

	StyleAmerican = "american"
	StyleEuropean = "european"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the machine-readable report format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Batch valuation defaults
const (
	// DefaultWorkers is the number of contracts priced concurrently when unset.
	DefaultWorkers = 4

	// DisplayPlaces is the number of decimal places used by pretty and csv output.
	DisplayPlaces = 6
)

// Implied volatility solver defaults
const (
	DefaultMinVolatility       = "0.01"
	DefaultMaxVolatility       = "3"
	DefaultVolatilityTolerance = "0.000001"
	DefaultMaxIterations       = 60
)
