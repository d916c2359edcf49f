package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the bearer token lifetime.
	// Defaults to 7 days; tokens are stateless so there is no revocation
	// before expiry.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig contains the optional Redis analytics cache settings.
// When RedisURL is empty the cache is disabled and analytics are computed
// on every request.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}
