// konig reads and writes chess notation: FEN positions, SAN moves and
// PGN token streams. It can also serve the same codecs over HTTP.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/eikopf/konig/internal/config"
	"github.com/eikopf/konig/internal/errors"
	"github.com/eikopf/konig/internal/logx"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// getenv is swapped out by tests.
var getenv = os.Getenv

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app is the state shared by every subcommand.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	stdin io.Reader
}

// run parses the global flags, builds the configuration and logger, and
// dispatches to a subcommand. It returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("konig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs, stderr) }
	g := registerGlobalFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *g.version {
		fmt.Fprintf(stdout, "konig version %s\n", programVersion)
		return exitOK
	}

	cfg := config.NewConfigBuilder().
		WithOutput(stdout).
		WithLogOutput(stderr).
		Build()
	if err := cfg.ApplyEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "konig: %v\n", err)
		return exitUsage
	}
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "konig: %v\n", err)
		return exitUsage
	}

	log, err := logx.New(cfg.LogFile, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "konig: %v\n", err)
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(fs, stderr)
		return exitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "konig: unknown command %q\n", rest[0])
		usage(fs, stderr)
		return exitUsage
	}

	a := &app{cfg: cfg, log: logx.Component(log, rest[0]), stdin: stdin}
	return cmd.run(a, rest[1:])
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: konig [options] <command> [command options] [args...]\n\n")
	fmt.Fprintf(w, "Chess notation tool for FEN, SAN and PGN.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-7s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	fs.PrintDefaults()
}
