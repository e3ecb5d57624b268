// Package config loads affilnet settings from defaults, an optional YAML
// file, .env files, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/affilnet/crossref"
	"github.com/lehigh-university-libraries/affilnet/geo"
	"github.com/lehigh-university-libraries/affilnet/observability"
)

// EnvPrefix prefixes every environment variable, e.g. AFFILNET_CROSSREF_MAILTO.
const EnvPrefix = "AFFILNET"

// Config is the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Crossref CrossrefConfig `mapstructure:"crossref"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Names    NamesConfig    `mapstructure:"names"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output" validate:"oneof=stdout stderr"`
}

// CrossrefConfig controls the metadata lookup client.
type CrossrefConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"required,url"`
	Mailto     string        `mapstructure:"mailto" validate:"omitempty,email"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit  float64       `mapstructure:"rate_limit" validate:"gt=0"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
}

// GeocoderConfig controls the geocoding provider.
type GeocoderConfig struct {
	Provider   string        `mapstructure:"provider" validate:"oneof=nominatim google"`
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	UserAgent  string        `mapstructure:"user_agent" validate:"required"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit  float64       `mapstructure:"rate_limit" validate:"gt=0"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`

	// GoogleAPIKey is read from AFFILNET_GEOCODER_GOOGLE_API_KEY only.
	GoogleAPIKey string `mapstructure:"-" validate:"required_if=Provider google"`
}

// NamesConfig controls author name handling.
type NamesConfig struct {
	Normalize bool `mapstructure:"normalize"`
}

// OutputConfig selects the presenter.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required"`
	Pretty bool   `mapstructure:"pretty"`
}

// MetricsConfig controls the metrics dump.
type MetricsConfig struct {
	// File receives the run's metrics in text exposition format when set.
	File string `mapstructure:"file"`
}

// Options tells Load where to look beyond defaults and the environment.
type Options struct {
	// ConfigFile is an explicit config path. When empty, affilnet.yaml is
	// searched in the working directory and $HOME/.affilnet.
	ConfigFile string

	// EnvFile is a .env file loaded into the environment before reading it.
	// When empty, ./.env is loaded if present.
	EnvFile string

	// Flags maps config keys to command-line flags that override them.
	Flags map[string]*pflag.Flag
}

// Load reads the configuration and validates it.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("affilnet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.affilnet")
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and environment apply.
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loadSecrets(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}

// loadSecrets fills secret fields from the environment. They are tagged
// mapstructure:"-" so config files never carry them.
func loadSecrets(cfg *Config) {
	cfg.Geocoder.GoogleAPIKey = os.Getenv(EnvPrefix + "_GEOCODER_GOOGLE_API_KEY")
}

func setDefaults(v *viper.Viper) {
	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	// Crossref
	v.SetDefault("crossref.base_url", crossref.DefaultBaseURL)
	v.SetDefault("crossref.mailto", "")
	v.SetDefault("crossref.timeout", crossref.DefaultTimeout.String())
	v.SetDefault("crossref.rate_limit", crossref.DefaultRateLimit)
	v.SetDefault("crossref.max_retries", 1)

	// Geocoder
	v.SetDefault("geocoder.provider", geo.ProviderNominatim)
	v.SetDefault("geocoder.base_url", "")
	v.SetDefault("geocoder.user_agent", geo.DefaultUserAgent)
	v.SetDefault("geocoder.timeout", "30s")
	v.SetDefault("geocoder.rate_limit", 1.0)
	v.SetDefault("geocoder.max_retries", 1)

	v.SetDefault("names.normalize", false)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.pretty", false)

	v.SetDefault("metrics.file", "")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() observability.LoggingConfig {
	return observability.LoggingConfig{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// CrossrefClientConfig returns the metadata lookup client settings.
func (c *Config) CrossrefClientConfig() crossref.Config {
	return crossref.Config{
		BaseURL:    c.Crossref.BaseURL,
		Mailto:     c.Crossref.Mailto,
		Timeout:    c.Crossref.Timeout,
		RateLimit:  c.Crossref.RateLimit,
		MaxRetries: c.Crossref.MaxRetries,
	}
}

// GeocoderConfig returns the geocoding provider settings.
func (c *Config) GeocoderConfig() geo.Config {
	return geo.Config{
		Provider:   c.Geocoder.Provider,
		BaseURL:    c.Geocoder.BaseURL,
		UserAgent:  c.Geocoder.UserAgent,
		Timeout:    c.Geocoder.Timeout,
		RateLimit:  c.Geocoder.RateLimit,
		MaxRetries: c.Geocoder.MaxRetries,
		APIKey:     c.Geocoder.GoogleAPIKey,
	}
}
