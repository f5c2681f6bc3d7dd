package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the academic store. Values are read
// once at startup and passed down by the process entry point.
type Config struct {
	AppName          string
	AppEnv           string
	DataDir          string
	AutosaveInterval time.Duration
	BackupEnabled    bool
	ShutdownGrace    time.Duration
	LogLevel         string
	JWTSecret        string
	TokenTTL         time.Duration
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ARMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ARMS Core")
	v.SetDefault("app.env", "development")
	v.SetDefault("data.dir", "data")
	v.SetDefault("autosave.interval", "5m")
	v.SetDefault("backup.enabled", true)
	v.SetDefault("shutdown.grace", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("token.ttl", "24h")

	interval, err := time.ParseDuration(v.GetString("autosave.interval"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid autosave interval: %w", err)
	}

	grace, err := time.ParseDuration(v.GetString("shutdown.grace"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid shutdown grace: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		DataDir:          v.GetString("data.dir"),
		AutosaveInterval: interval,
		BackupEnabled:    v.GetBool("backup.enabled"),
		ShutdownGrace:    grace,
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = 5 * time.Minute
	}

	return cfg, nil
}
