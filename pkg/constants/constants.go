// Package constants provides shared constants for the loan-calc application.
package constants

// AppKey is the key the calculator inputs are persisted under.
const AppKey = "app"

// AppID identifies the desktop application to the windowing system and
// scopes its preferences.
const AppID = "io.github.iwvelando.loancalc"

// Financial constants
const (
	// MonthsPerYear is the number of monthly payments in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// Default calculator inputs.
const (
	DefaultLoanAmount      = 2_000_000.0
	DefaultInterestRate    = 5.5
	DefaultLoanPeriodYears = 25.0
	DefaultTermPrice       = 65.0
)

// Input ranges enforced by the sliders. Every lower bound is zero.
const (
	MaxLoanAmount      = 5_000_000.0
	MaxInterestRate    = 20.0
	MaxLoanPeriodYears = 50.0
	MaxTermPrice       = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Storage backends
const (
	StorageBackendMemory      = "memory"
	StorageBackendFile        = "file"
	StorageBackendSQLite      = "sqlite"
	StorageBackendRedis       = "redis"
	StorageBackendPreferences = "preferences"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variables overriding configuration keys
	EnvPrefix = "LOANCALC"
)

// Storage defaults
const (
	DefaultStateFile  = "loan-calc-state.yaml"
	DefaultSQLiteFile = "loan-calc.db"
	DefaultRedisAddr  = "localhost:6379"
)

// Desktop window defaults
const (
	DefaultWindowWidth  = 520
	DefaultWindowHeight = 460
	DefaultSliderWidth  = 300
	DefaultTheme        = "light"
	DefaultSeparator    = " "
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// SourceURL links to the project's source code from the UI.
const SourceURL = "https://github.com/iwvelando/loan-calc"

// Result labels shared by every front end.
const (
	LabelTotalCost    = "Total Cost"
	LabelMonthlyCost  = "Monthly Cost"
	LabelInterestPaid = "Total Interest Paid"
)

// Input labels shared by every front end.
const (
	LabelLoanAmount      = "value"
	LabelInterestRate    = "Interest (%)"
	LabelLoanPeriodYears = "Loan duration (Years)"
	LabelTermPrice       = "Monthly fixed cost"
)
