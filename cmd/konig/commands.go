package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/eikopf/konig/internal/display"
	"github.com/eikopf/konig/internal/errors"
	"github.com/eikopf/konig/internal/fen"
	"github.com/eikopf/konig/internal/httpapi"
	"github.com/eikopf/konig/internal/pgn"
	"github.com/eikopf/konig/internal/san"
	"github.com/eikopf/konig/internal/source"
	"github.com/eikopf/konig/internal/worker"
)

// command is one subcommand. run returns the exit code.
type command struct {
	summary string
	run     func(a *app, args []string) int
}

var commands = map[string]command{
	"fen":    {"Parse FEN positions and print them normalized", runFEN},
	"san":    {"Parse SAN moves and print them canonically", runSAN},
	"tokens": {"Tokenize PGN files (.zst allowed)", runTokens},
	"board":  {"Draw the board of a FEN position", runBoard},
	"serve":  {"Serve the codecs over HTTP", runServe},
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("konig "+name, flag.ContinueOnError)
	fs.SetOutput(a.cfg.LogFile)
	return fs
}

// parseFlags parses args into fs. ok is false when the caller should
// return code immediately.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

// lines returns args, or the non-blank lines of stdin when args is empty.
func (a *app) lines(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var out []string
	sc := bufio.NewScanner(a.stdin)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

// readInput returns the decoded contents of path, reading the app's
// stdin for "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == source.Stdin {
		return io.ReadAll(a.stdin)
	}
	return source.ReadAll(path)
}

func exitCode(failed bool) int {
	if failed {
		return exitFailure
	}
	return exitOK
}

func runFEN(a *app, args []string) int {
	fs := a.flagSet("fen")
	asJSON := fs.Bool("json", false, "Print each position as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	inputs, err := a.lines(fs.Args())
	if err != nil {
		a.log.Error().Err(err).Msg("read stdin")
		return exitFailure
	}

	out := a.cfg.OutputFile
	enc := json.NewEncoder(out)
	failed := false
	for _, text := range inputs {
		pos, err := fen.Parse(text)
		if err != nil {
			a.log.Error().Err(err).Str("kind", errors.Kind(err)).Str("fen", text).Msg("invalid FEN")
			failed = true
			continue
		}
		if *asJSON {
			if err := enc.Encode(httpapi.ToPositionResponse(pos)); err != nil {
				a.log.Error().Err(err).Msg("encode")
				return exitFailure
			}
			continue
		}
		fmt.Fprintln(out, pos.String())
	}
	return exitCode(failed)
}

func runSAN(a *app, args []string) int {
	fs := a.flagSet("san")
	asJSON := fs.Bool("json", false, "Print each move as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	inputs, err := a.lines(fs.Args())
	if err != nil {
		a.log.Error().Err(err).Msg("read stdin")
		return exitFailure
	}

	out := a.cfg.OutputFile
	enc := json.NewEncoder(out)
	failed := false
	for _, literal := range inputs {
		move, err := san.Parse(literal)
		if err != nil {
			a.log.Error().Err(err).Str("kind", errors.Kind(err)).Str("san", literal).Msg("invalid SAN")
			failed = true
			continue
		}
		if *asJSON {
			if err := enc.Encode(httpapi.ToMoveResponse(move)); err != nil {
				a.log.Error().Err(err).Msg("encode")
				return exitFailure
			}
			continue
		}
		fmt.Fprintln(out, move.String())
	}
	return exitCode(failed)
}

func runTokens(a *app, args []string) int {
	fs := a.flagSet("tokens")
	summary := fs.Bool("summary", false, "Print token counts per kind instead of the tokens")
	whitespace := fs.Bool("whitespace", false, "Include whitespace tokens in the listing")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{source.Stdin}
	}

	failed := false
	items := make([]worker.WorkItem, 0, len(paths))
	for _, path := range paths {
		data, err := a.readInput(path)
		if err != nil {
			a.log.Error().Err(err).Str("input", source.Name(path)).Msg("read failed")
			failed = true
			continue
		}
		items = append(items, worker.WorkItem{Index: len(items), Name: source.Name(path), Data: data})
	}

	if *summary {
		return exitCode(a.printSummary(items) || failed)
	}
	for _, item := range items {
		if !a.printTokens(item, *whitespace) {
			failed = true
		}
	}
	return exitCode(failed)
}

// printTokens lists the tokens of one input. It reports false if the
// input failed to tokenize.
func (a *app) printTokens(item worker.WorkItem, whitespace bool) bool {
	out := a.cfg.OutputFile
	tz := pgn.NewTokenizer(item.Data)
	for {
		tok, err := tz.Next()
		if err != nil {
			a.logTokenError(item.Name, err)
			return false
		}
		if tok.Kind == pgn.EOF {
			return true
		}
		if tok.Kind == pgn.Whitespace && !whitespace {
			continue
		}
		fmt.Fprintf(out, "%s:%d:%d\t%s\t%q\n", item.Name, tok.Line, tok.Offset, tok.Kind, tok.Text)
	}
}

// printSummary tokenizes items on the worker pool and prints a histogram
// per input followed by the totals. It reports whether any input failed.
func (a *app) printSummary(items []worker.WorkItem) bool {
	a.log.Debug().Int("inputs", len(items)).Int("workers", a.cfg.Worker.Workers).Int("buffer", a.cfg.Worker.BufferSize).Msg("tokenizing")

	out := a.cfg.OutputFile
	totals := make(map[pgn.Kind]int)
	failed := false
	for _, res := range worker.RunAll(items, a.cfg.Worker.Workers, a.cfg.Worker.BufferSize) {
		if res.Err != nil {
			a.logTokenError(res.Name, res.Err)
			failed = true
		}
		fmt.Fprintf(out, "%s: %d tokens, %d lines\n", res.Name, res.Total(), res.Lines)
		writeHistogram(out, res.Counts)
		for k, n := range res.Counts {
			totals[k] += n
		}
	}
	if len(items) > 1 {
		fmt.Fprintln(out, "total:")
		writeHistogram(out, totals)
	}
	return failed
}

func writeHistogram(w io.Writer, counts map[pgn.Kind]int) {
	kinds := maps.Keys(counts)
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-14s %d\n", k, counts[k])
	}
}

func (a *app) logTokenError(name string, err error) {
	ev := a.log.Error().Err(err).Str("kind", errors.Kind(err)).Str("input", name)
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		ev = ev.Int("line", pe.Line).Int("offset", pe.Offset)
	}
	ev.Msg("tokenize failed")
}

func runBoard(a *app, args []string) int {
	fs := a.flagSet("board")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	text := fen.StartingFEN
	if fs.NArg() > 0 {
		// Unquoted FEN arrives as six arguments.
		text = strings.Join(fs.Args(), " ")
	}
	pos, err := fen.Parse(text)
	if err != nil {
		a.log.Error().Err(err).Str("kind", errors.Kind(err)).Str("fen", text).Msg("invalid FEN")
		return exitFailure
	}
	if err := display.Render(a.cfg.OutputFile, pos.Board); err != nil {
		a.log.Error().Err(err).Msg("render")
		return exitFailure
	}
	return exitOK
}

func runServe(a *app, args []string) int {
	fs := a.flagSet("serve")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	server := httpapi.NewApp(a.log, a.cfg.Server.BodyLimit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		a.log.Info().Msg("shutting down")
		if err := server.Shutdown(); err != nil {
			a.log.Error().Err(err).Msg("shutdown")
		}
	}()

	a.log.Info().
		Str("addr", a.cfg.Server.ListenAddr).
		Int("body_limit", a.cfg.Server.BodyLimit).
		Msg("listening")
	if err := server.Listen(a.cfg.Server.ListenAddr); err != nil {
		a.log.Error().Err(err).Msg("listen")
		return exitFailure
	}
	return exitOK
}
