package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"invoicer/internal/logger"
)

type Config struct {
	// Presentation
	Currency string `envconfig:"INVOICER_CURRENCY" default:"USD"`
	Locale   string `envconfig:"INVOICER_LOCALE" default:"en-US"`

	// Reports
	ReportPeriod string `envconfig:"INVOICER_REPORT_PERIOD" default:"30d"`
	ReportAsOf   string `envconfig:"INVOICER_REPORT_AS_OF"` // YYYY-MM-DD, empty means today

	// Logging Configuration
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"console"`
	LogTimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02T15:04:05Z07:00"`
	LogOutput     string `envconfig:"LOG_OUTPUT" default:"stderr"`
	LogNoColor    bool   `envconfig:"LOG_NO_COLOR" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config processing failed: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(strings.TrimSpace(c.Currency)) != 3 {
		return fmt.Errorf("INVOICER_CURRENCY must be a three letter ISO 4217 code, got %q", c.Currency)
	}
	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("INVOICER_LOCALE is required")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
		NoColor:    c.LogNoColor,
	}
}

// Default returns the configuration used when the environment is unusable.
func Default() *Config {
	lc := logger.DefaultConfig()
	return &Config{
		Currency:      "USD",
		Locale:        "en-US",
		ReportPeriod:  "30d",
		LogLevel:      lc.Level,
		LogFormat:     lc.Format,
		LogTimeFormat: lc.TimeFormat,
		LogOutput:     lc.Output,
	}
}
