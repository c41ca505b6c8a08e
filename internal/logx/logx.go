// Package logx builds the zerolog loggers used by the command line tool
// and the HTTP service.
package logx

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/eikopf/konig/internal/errors"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		return fmt.Sprintf("%s:%d", short, line)
	}
}

// New returns a logger writing to w in the given format at the given level.
// Level names are zerolog's ("debug", "info", "warn", ...).
func New(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, errors.ErrInvalidConfig)
	}

	var out io.Writer
	switch format {
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case FormatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: %w", format, errors.ErrInvalidConfig)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger(), nil
}

// Component returns a child logger tagged with a component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
