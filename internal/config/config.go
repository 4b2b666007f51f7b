// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds the server settings.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       zerolog.Level
	LogPretty      bool
	DBDriver       string
	DBDSN          string
	RowLimit       int
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3000",
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup, which has the shape of
// os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Port:           get("PORT", "8001"),
		AllowedOrigins: defaultOrigins,
		DBDriver:       get("DASH_DB_DRIVER", ""),
		DBDSN:          get("DASH_DB_DSN", ""),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("config: PORT %q: not a valid port", cfg.Port)
	}

	if v := get("DASH_ALLOWED_ORIGINS", ""); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(get("DASH_LOG_LEVEL", "info")))
	if err != nil {
		return Config{}, fmt.Errorf("config: DASH_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogPretty, err = strconv.ParseBool(get("DASH_LOG_PRETTY", "false")); err != nil {
		return Config{}, fmt.Errorf("config: DASH_LOG_PRETTY: %w", err)
	}

	if cfg.RowLimit, err = strconv.Atoi(get("DASH_ROW_LIMIT", "5000")); err != nil {
		return Config{}, fmt.Errorf("config: DASH_ROW_LIMIT: %w", err)
	}
	if cfg.RowLimit < 0 {
		return Config{}, fmt.Errorf("config: DASH_ROW_LIMIT %d: must not be negative", cfg.RowLimit)
	}

	if (cfg.DBDriver == "") != (cfg.DBDSN == "") {
		return Config{}, fmt.Errorf("config: DASH_DB_DRIVER and DASH_DB_DSN must be set together")
	}
	return cfg, nil
}
