// Package errors provides sentinel errors and error types for konig.
// Every failure surfaced by the notation packages wraps exactly one of the
// sentinels below, so callers can classify it with errors.Is() while still
// reading location context through errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure categories of the notation layer.
var (
	// ErrInvalidPieceCode indicates a board cell holding 7, 8 or 15.
	ErrInvalidPieceCode = errors.New("invalid piece code")

	// ErrAlgebraicNotation indicates a malformed two-character square.
	ErrAlgebraicNotation = errors.New("invalid algebraic notation")

	// ErrInvalidFENComponent indicates one of the six FEN fields is malformed or missing.
	ErrInvalidFENComponent = errors.New("invalid FEN component")

	// ErrInvalidSANLiteral indicates an unrecognised SAN move literal.
	ErrInvalidSANLiteral = errors.New("invalid SAN literal")

	// ErrInvalidDataFormat indicates a byte the PGN tokenizer cannot start a token with.
	ErrInvalidDataFormat = errors.New("invalid PGN data format")

	// ErrInvalidStringLiteral indicates a malformed or unterminated PGN string.
	ErrInvalidStringLiteral = errors.New("invalid PGN string literal")

	// ErrInvalidNAG indicates a malformed numeric annotation glyph.
	ErrInvalidNAG = errors.New("invalid numeric annotation glyph")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ParseError represents a parsing error with position context inside
// the parsed text. It is used by the SAN parser and the PGN tokenizer.
type ParseError struct {
	Err      error  // The underlying sentinel
	Input    string // The literal being parsed (short inputs only)
	Offset   int    // Byte offset of the offending character (0-based)
	Line     int    // Line number (1-based, 0 if not tracked)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Input))
	}

	loc := fmt.Sprintf("offset %d", e.Offset)
	if e.Line > 0 {
		loc = fmt.Sprintf("line %d, %s", e.Line, loc)
	}
	parts = append(parts, loc)

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		return fmt.Sprintf("%v: %s", e.Err, strings.Join(parts, ": "))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind returns a short machine-readable name for the sentinel that err wraps,
// or "unknown" if it wraps none of them.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidPieceCode, "invalid_piece_code"},
	{ErrAlgebraicNotation, "algebraic_notation"},
	{ErrInvalidFENComponent, "invalid_fen_component"},
	{ErrInvalidSANLiteral, "invalid_san_literal"},
	{ErrInvalidDataFormat, "invalid_data_format"},
	{ErrInvalidStringLiteral, "invalid_string_literal"},
	{ErrInvalidNAG, "invalid_nag"},
	{ErrInvalidConfig, "invalid_config"},
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
