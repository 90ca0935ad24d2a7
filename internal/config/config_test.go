package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAddr, EnvAllowedOrigins, EnvDebug, EnvShutdown, constants.ConnectionEnvVar} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Addr != constants.DefaultServerAddr {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.DBConnection != "" || cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvAllowedOrigins, "http://localhost:3000/, ,https://mood.example.com")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvShutdown, "750ms")
	t.Setenv(constants.ConnectionEnvVar, "postgres://me@localhost/moodlit")

	cfg := Load()
	want := &Config{
		Addr:            ":9000",
		AllowedOrigins:  []string{"http://localhost:3000", "https://mood.example.com"},
		DBConnection:    "postgres://me@localhost/moodlit",
		Debug:           true,
		ShutdownTimeout: 750 * time.Millisecond,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "sometimes")
	t.Setenv(EnvShutdown, "-1s")

	cfg := Load()
	if cfg.Debug {
		t.Error("Debug should be false for an unparsable value")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := EnvAddr + "=:7000\n" + EnvAllowedOrigins + "=http://a.test,http://b.test\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAllowedOrigins, "http://already.set")
	// godotenv treats a variable set to "" as present.
	os.Unsetenv(EnvAddr)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	cfg := Load()
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://already.set"}) {
		t.Errorf("existing variable was overridden: %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
