package config

import (
	"bytes"
	"testing"

	"github.com/eikopf/konig/internal/errors"
)

// TestConfig_Defaults verifies NewConfig has sensible defaults
func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format = %q, want console", cfg.Log.Format)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Server.BodyLimit != 4<<20 {
		t.Errorf("Server.BodyLimit = %d, want %d", cfg.Server.BodyLimit, 4<<20)
	}
	if cfg.Worker.Workers < 1 {
		t.Errorf("Worker.Workers = %d, want at least 1", cfg.Worker.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestConfig_Validate verifies each section rejects bad values
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json logs", func(c *Config) { c.Log.Format = "json" }, false},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"empty listen address", func(c *Config) { c.Server.ListenAddr = "" }, true},
		{"zero body limit", func(c *Config) { c.Server.BodyLimit = 0 }, true},
		{"zero workers", func(c *Config) { c.Worker.Workers = 0 }, true},
		{"negative buffer", func(c *Config) { c.Worker.BufferSize = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestConfig_ApplyEnv verifies KONIG_* variables override defaults
func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:   "debug",
		EnvLogFormat:  "json",
		EnvListenAddr: "127.0.0.1:9000",
		EnvWorkers:    "3",
		EnvBodyLimit:  "1024",
	}
	cfg := NewConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9000" || cfg.Server.BodyLimit != 1024 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Worker.Workers != 3 {
		t.Errorf("Worker.Workers = %d, want 3", cfg.Worker.Workers)
	}
}

func TestConfig_ApplyEnvErrors(t *testing.T) {
	for _, key := range []string{EnvWorkers, EnvBodyLimit} {
		cfg := NewConfig()
		err := cfg.ApplyEnv(func(k string) string {
			if k == key {
				return "many"
			}
			return ""
		})
		if !errors.Is(err, errors.ErrInvalidConfig) {
			t.Errorf("ApplyEnv(%s=many) error = %v, want ErrInvalidConfig", key, err)
		}
	}

	cfg := NewConfig()
	if err := cfg.ApplyEnv(func(string) string { return "" }); err != nil {
		t.Errorf("ApplyEnv(empty) error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("empty env changed Log.Level to %q", cfg.Log.Level)
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithLogLevel("warn").
		WithLogFormat("json").
		WithListenAddr(":9999").
		WithBodyLimit(512).
		WithWorkers(2).
		WithOutput(out).
		WithLogOutput(logs).
		Build()

	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.ListenAddr != ":9999" || cfg.Server.BodyLimit != 512 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Worker.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Worker.Workers)
	}
	if cfg.OutputFile != out || cfg.LogFile != logs {
		t.Error("builder did not set output streams")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config invalid: %v", err)
	}
}
