package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SourceInvesting marks an instrument whose value is scraped from the
// fund-data website. Any other source value means a market quote.
const SourceInvesting = "investing"

// Log levels accepted in the configuration file.
var logLevels = map[string]struct{}{
	"DEBUG":    {},
	"INFO":     {},
	"WARNING":  {},
	"ERROR":    {},
	"CRITICAL": {},
}

// Instrument holds configuration for a single tracked instrument.
type Instrument struct {
	Symbol   string `mapstructure:"symbol"`
	Filepath string `mapstructure:"filepath"`
	Source   string `mapstructure:"source"`
}

// Scraped reports whether this instrument's value comes from the
// fund-data website rather than the market-quote provider.
func (i Instrument) Scraped() bool {
	return i.Source == SourceInvesting
}

// Settings holds the daemon-wide settings.
type Settings struct {
	SleepInterval int     `mapstructure:"sleep_interval"`
	LogLevel      string  `mapstructure:"log_level"`
	LogFile       string  `mapstructure:"log_file"`
	MaxLogSizeMB  float64 `mapstructure:"max_log_size_mb"`
	BackupCount   int     `mapstructure:"backup_count"`
}

// Config holds all configuration for the price tracker.
type Config struct {
	Symbols  []Instrument `mapstructure:"symbols"`
	Settings Settings     `mapstructure:"settings"`

	// Base URLs for the data providers (configurable for testing)
	YahooBaseURL     string `mapstructure:"yahoo_base_url"`
	InvestingBaseURL string `mapstructure:"investing_base_url"`

	// Warnings collected while applying defaults. The logger is built
	// from these very settings, so the caller logs them after setup.
	Warnings []string `mapstructure:"-"`
}

// Load reads and validates the YAML configuration file at path.
// Optional settings receive defaults; a missing or structurally invalid
// 'symbols' section is a fatal load error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("settings.sleep_interval", 30)
	v.SetDefault("settings.log_level", "INFO")
	v.SetDefault("settings.log_file", "./price_tracker.log")
	v.SetDefault("settings.max_log_size_mb", 5)
	v.SetDefault("settings.backup_count", 3)
	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("investing_base_url", "https://www.investing.com")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !v.IsSet("symbols") {
		return nil, fmt.Errorf("configuration missing 'symbols' section")
	}
	if _, ok := v.Get("symbols").([]any); !ok {
		return nil, fmt.Errorf("the 'symbols' section must be a list of instrument entries")
	}

	for i, ins := range config.Symbols {
		if ins.Symbol == "" {
			return nil, fmt.Errorf("symbols[%d]: missing 'symbol'", i)
		}
		if ins.Filepath == "" {
			return nil, fmt.Errorf("symbols[%d] (%s): missing 'filepath'", i, ins.Symbol)
		}
	}

	// IsSet sees defaults too; InConfig reports what the file itself says.
	if !v.InConfig("settings.sleep_interval") {
		config.Warnings = append(config.Warnings,
			"'sleep_interval' not found, defaulting to 30 seconds")
	}
	if config.Settings.SleepInterval < 0 {
		return nil, fmt.Errorf("'sleep_interval' must not be negative, got %d", config.Settings.SleepInterval)
	}

	config.Settings.LogLevel = strings.ToUpper(config.Settings.LogLevel)
	if _, ok := logLevels[config.Settings.LogLevel]; !ok {
		config.Warnings = append(config.Warnings,
			fmt.Sprintf("unknown log_level %q, defaulting to INFO", config.Settings.LogLevel))
		config.Settings.LogLevel = "INFO"
	}

	return config, nil
}
