package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables read by Load,
// e.g. TASKBOARD_DATABASE_URL maps to the database.url key.
const envPrefix = "TASKBOARD"

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables, with environment variables
// taking precedence. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: env vars and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers a default for every known key. Viper only surfaces
// environment variables for keys it knows about, so each key appears here
// even when the default is the zero value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	// 7 days, matching the documented default bearer token lifetime.
	v.SetDefault("auth.token_lifetime_minutes", 7*24*60)

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_seconds", 60)
}
