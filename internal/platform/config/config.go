package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds the runtime configuration of the service.
type AppConfig struct {
	Port         string `mapstructure:"PORT"`
	DatabaseURL  string `mapstructure:"PGSQL_URL"`
	IsProduction bool   `mapstructure:"IS_PRODUCTION"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER"`
	JWTExpiryDuration time.Duration `mapstructure:"JWT_EXPIRY_DURATION"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig reads configuration from the environment, with an optional .env
// file for local development.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_ISSUER", "treasury_backend")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv does not surface env-only keys to Unmarshal; bind them
	// explicitly.
	for _, key := range []string{"PORT", "PGSQL_URL", "IS_PRODUCTION", "JWT_SECRET", "JWT_ISSUER", "JWT_EXPIRY_DURATION", "CORS_ALLOWED_ORIGINS"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env key %s: %w", key, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if origins := v.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}
