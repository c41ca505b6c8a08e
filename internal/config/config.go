// Package config holds the runtime settings of the konig tool and service.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/eikopf/konig/internal/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel   = "KONIG_LOG_LEVEL"
	EnvLogFormat  = "KONIG_LOG_FORMAT"
	EnvListenAddr = "KONIG_LISTEN_ADDR"
	EnvWorkers    = "KONIG_WORKERS"
	EnvBodyLimit  = "KONIG_BODY_LIMIT"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string

	// Format is "console" or "json".
	Format string
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info", Format: "console"}
}

// Validate checks the log settings.
func (c *LogConfig) Validate() error {
	switch c.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: %w", c.Format, errors.ErrInvalidConfig)
	}
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log level %q: %w", c.Level, errors.ErrInvalidConfig)
	}
	return nil
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	// ListenAddr is the host:port the service binds.
	ListenAddr string

	// BodyLimit caps request bodies, in bytes.
	BodyLimit int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{ListenAddr: ":8080", BodyLimit: 4 << 20}
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("body limit %d: %w", c.BodyLimit, errors.ErrInvalidConfig)
	}
	return nil
}

// WorkerConfig holds settings for batch tokenization.
type WorkerConfig struct {
	// Workers is the number of concurrent tokenizers.
	Workers int

	// BufferSize is the capacity of the work and result queues.
	BufferSize int
}

// NewWorkerConfig creates a WorkerConfig with default values.
func NewWorkerConfig() *WorkerConfig {
	return &WorkerConfig{Workers: runtime.NumCPU(), BufferSize: 0}
}

// Validate checks the worker settings.
func (c *WorkerConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("worker count %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size %d: %w", c.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}

// Config holds all program configuration.
type Config struct {
	Log    *LogConfig
	Server *ServerConfig
	Worker *WorkerConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Log:        NewLogConfig(),
		Server:     NewServerConfig(),
		Worker:     NewWorkerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Worker.Validate()
}

// ApplyEnv overrides settings from KONIG_* variables looked up with
// getenv. Unset or empty variables leave the current value alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := getenv(EnvListenAddr); v != "" {
		c.Server.ListenAddr = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, errors.ErrInvalidConfig)
		}
		c.Worker.Workers = n
	}
	if v := getenv(EnvBodyLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvBodyLimit, v, errors.ErrInvalidConfig)
		}
		c.Server.BodyLimit = n
	}
	return nil
}
