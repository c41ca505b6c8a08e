// flags.go - Global flag definitions and configuration
package main

import (
	"flag"

	"github.com/eikopf/konig/internal/config"
)

// globalFlags are accepted before the subcommand name. Zero values mean
// "not given" so that environment settings and defaults survive.
type globalFlags struct {
	version   *bool
	logLevel  *string
	logFormat *string
	workers   *int
	buffer    *int
	addr      *string
	bodyLimit *int
}

func registerGlobalFlags(fs *flag.FlagSet) *globalFlags {
	return &globalFlags{
		version:   fs.Bool("version", false, "Print version and exit"),
		logLevel:  fs.String("log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")"),
		logFormat: fs.String("log-format", "", "Log format: console or json (env "+config.EnvLogFormat+")"),
		workers:   fs.Int("workers", 0, "Concurrent tokenizers for 'tokens -summary' (env "+config.EnvWorkers+")"),
		buffer:    fs.Int("buffer", 0, "Queue size for 'tokens -summary', 0 for one slot per input"),
		addr:      fs.String("addr", "", "Listen address for 'serve' (env "+config.EnvListenAddr+")"),
		bodyLimit: fs.Int("body-limit", 0, "Request body limit in bytes for 'serve' (env "+config.EnvBodyLimit+")"),
	}
}

// apply copies every flag that was given onto cfg.
func (g *globalFlags) apply(cfg *config.Config) {
	if *g.logLevel != "" {
		cfg.Log.Level = *g.logLevel
	}
	if *g.logFormat != "" {
		cfg.Log.Format = *g.logFormat
	}
	if *g.workers != 0 {
		cfg.Worker.Workers = *g.workers
	}
	if *g.buffer != 0 {
		cfg.Worker.BufferSize = *g.buffer
	}
	if *g.addr != "" {
		cfg.Server.ListenAddr = *g.addr
	}
	if *g.bodyLimit != 0 {
		cfg.Server.BodyLimit = *g.bodyLimit
	}
}
