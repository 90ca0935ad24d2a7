// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
)

const (
	EnvAddr           = "MOODLIT_ADDR"
	EnvAllowedOrigins = "MOODLIT_ALLOWED_ORIGINS"
	EnvDebug          = "MOODLIT_DEBUG"
	EnvShutdown       = "MOODLIT_SHUTDOWN_TIMEOUT"
)

type Config struct {
	Addr            string
	AllowedOrigins  []string // CORS origins; empty allows none
	DBConnection    string   // overrides --config when set
	Debug           bool
	ShutdownTimeout time.Duration
}

// LoadEnv loads the given .env files (".env" when none are given) into the
// process environment. Variables already set are left alone. A missing file
// is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("No .env file found", "path", f)
				continue
			}
			return err
		}
		logger.Debug("Loaded environment file", "path", f)
	}
	return nil
}

func Load() *Config {
	return &Config{
		Addr:            getEnv(EnvAddr, constants.DefaultServerAddr),
		AllowedOrigins:  parseOrigins(getEnv(EnvAllowedOrigins, "")),
		DBConnection:    getEnv(constants.ConnectionEnvVar, ""),
		Debug:           parseBool(getEnv(EnvDebug, "false")),
		ShutdownTimeout: parseDuration(getEnv(EnvShutdown, ""), 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseOrigins splits a comma-separated list, dropping blanks and trailing slashes.
func parseOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		logger.Warn("Ignoring invalid shutdown timeout", "value", s)
		return fallback
	}
	return d
}
