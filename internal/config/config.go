// Package config loads the environment-driven settings shared by the
// command line tools. The library itself takes no configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the tool settings.
type Config struct {
	ListenAddr  string        // OSCWIRE_LISTEN_ADDR
	TargetAddr  string        // OSCWIRE_TARGET_ADDR
	LogLevel    string        // OSCWIRE_LOG_LEVEL
	ReadTimeout time.Duration // OSCWIRE_READ_TIMEOUT
}

// Load reads the configuration from the environment, after loading a .env
// file if one exists. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		ListenAddr: envString("OSCWIRE_LISTEN_ADDR", "127.0.0.1:8765"),
		TargetAddr: envString("OSCWIRE_TARGET_ADDR", "127.0.0.1:8765"),
		LogLevel:   envString("OSCWIRE_LOG_LEVEL", "info"),
	}

	timeout, err := envDuration("OSCWIRE_READ_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	c.ReadTimeout = timeout

	return c, nil
}

// NewLogger builds a console logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: invalid OSCWIRE_LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
