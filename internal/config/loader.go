package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "TUKERANK_"
	envFileVar = "TUKERANK_CONFIG"
)

// Load layers configuration, lowest precedence first:
//  1. defaults (New)
//  2. YAML file named by TUKERANK_CONFIG
//  3. env vars prefixed TUKERANK_ (a .env file is read into the environment first)
func Load(_ context.Context) (*Config, error) {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that would keep the service from starting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.StoreDriver != DriverMongo && c.StoreDriver != DriverMemory:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	case c.StoreDriver == DriverMongo && c.MongoURI == "":
		return fmt.Errorf("%w: mongodb_uri is required for the mongo store", ErrInvalidConfig)
	case c.ClassifierURL == "":
		return fmt.Errorf("%w: classifier_url is required", ErrInvalidConfig)
	case c.MaxInputRunes <= 0:
		return fmt.Errorf("%w: max_input_runes must be positive", ErrInvalidConfig)
	case c.RatingRetries <= 0:
		return fmt.Errorf("%w: rating_retries must be positive", ErrInvalidConfig)
	case c.ResendAPIKey != "" && (c.AlertFrom == "" || c.AlertTo == ""):
		return fmt.Errorf("%w: alert_from and alert_to are required with resend_api_key", ErrInvalidConfig)
	}
	return nil
}
