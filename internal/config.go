package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/dukerupert/addrcheck/internal/address"
)

// Config is loaded once before the batch starts and not changed afterwards.
type Config struct {
	Env          string        `env:"ADDRCHECK_ENV"`
	LogLevel     string        `env:"LOG_LEVEL"`
	APIKey       string        `env:"GOOGLE_API_KEY"          validate:"required"`
	APIBaseURL   string        `env:"ADDRCHECK_API_BASE_URL"  validate:"required,url"`
	InputPath    string        `env:"ADDRCHECK_INPUT"         validate:"required"`
	OutputPath   string        `env:"ADDRCHECK_OUTPUT"        validate:"required"`
	RequestDelay time.Duration `env:"ADDRCHECK_REQUEST_DELAY" validate:"gte=0"`
	Suffix       SuffixConfig
	Diagnostics  DiagnosticsConfig
}

// SuffixConfig controls when an inferred ZIP+4 suffix is trusted.
// See address.SuffixPolicy.
type SuffixConfig struct {
	MinComponents int  `env:"ADDRCHECK_SUFFIX_MIN_COMPONENTS" validate:"gte=1"`
	Exact         bool `env:"ADDRCHECK_SUFFIX_EXACT"`
}

// DiagnosticsConfig holds optional debugging outputs. Empty disables each one.
type DiagnosticsConfig struct {
	// ResponseDumpDir receives the raw body of the last successful API call.
	ResponseDumpDir string `env:"ADDRCHECK_RESPONSE_DUMP_DIR"`

	// MetricsTextfile is written in Prometheus text format when the run ends.
	MetricsTextfile string `env:"ADDRCHECK_METRICS_TEXTFILE"`
}

// Policy returns the classifier's suffix policy.
func (c SuffixConfig) Policy() address.SuffixPolicy {
	return address.SuffixPolicy{MinComponents: c.MinComponents, Exact: c.Exact}
}

var defaults = map[string]any{
	"ADDRCHECK_ENV":                   "dev",
	"LOG_LEVEL":                       "info",
	"ADDRCHECK_API_BASE_URL":          address.DefaultBaseURL,
	"ADDRCHECK_INPUT":                 "test.xlsx",
	"ADDRCHECK_OUTPUT":                "output.xlsx",
	"ADDRCHECK_REQUEST_DELAY":         "100ms",
	"ADDRCHECK_SUFFIX_MIN_COMPONENTS": address.DefaultSuffixMinComponents,
	"ADDRCHECK_SUFFIX_EXACT":          false,
}

// NewConfig loads configuration from .env and the process environment.
// A missing API key is an *address.ConfigurationError.
func NewConfig() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Env:          v.GetString("ADDRCHECK_ENV"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		APIKey:       v.GetString("GOOGLE_API_KEY"),
		APIBaseURL:   v.GetString("ADDRCHECK_API_BASE_URL"),
		InputPath:    v.GetString("ADDRCHECK_INPUT"),
		OutputPath:   v.GetString("ADDRCHECK_OUTPUT"),
		RequestDelay: v.GetDuration("ADDRCHECK_REQUEST_DELAY"),
		Suffix: SuffixConfig{
			MinComponents: v.GetInt("ADDRCHECK_SUFFIX_MIN_COMPONENTS"),
			Exact:         v.GetBool("ADDRCHECK_SUFFIX_EXACT"),
		},
		Diagnostics: DiagnosticsConfig{
			ResponseDumpDir: v.GetString("ADDRCHECK_RESPONSE_DUMP_DIR"),
			MetricsTextfile: v.GetString("ADDRCHECK_METRICS_TEXTFILE"),
		},
	}

	// Validate env
	if cfg.Env != "dev" && cfg.Env != "prod" {
		log.Warn().Str("env", cfg.Env).Msg("Invalid environment. Using default: dev")
		cfg.Env = "dev"
	}

	// Validate log level
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		log.Warn().Str("value", cfg.LogLevel).Msg("Invalid log level. Using default: info")
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags and reports problems by environment
// variable name.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.StructField() == "APIKey" {
			return address.ErrMissingAPIKey
		}
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return address.NewConfigurationError("invalid configuration: " + strings.Join(problems, "; "))
}

// loadDotEnv loads .env from the current directory, then walks up to find
// it (max 2 parent directories). Existing environment variables win.
func loadDotEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}

	dir, _ := os.Getwd()
	for i := 0; i < 2; i++ {
		dir = filepath.Join(dir, "..")
		if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
			return
		}
	}
	log.Debug().Msg(".env file not found, using environment variables and defaults")
}
