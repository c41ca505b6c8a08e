package chess

import (
	"fmt"

	"github.com/eikopf/konig/internal/errors"
)

// Square is a board index: 0 = a1, 7 = h1, 56 = a8, 63 = h8.
type Square uint8

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// NoSquare is the sentinel for "no square". It is never a valid index.
const NoSquare Square = 0xff

// Named corner squares.
const (
	A1 Square = 0
	H1 Square = 7
	A8 Square = 56
	H8 Square = 63
)

// NewSquare returns the square on the given 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*BoardSize + file)
}

// File returns the 0-based file (0 = a).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank (0 = rank 1).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Valid reports whether s is in 0-63.
func (s Square) Valid() bool {
	return s < NumSquares
}

// String returns the algebraic name of the square, e.g. "e4".
// NoSquare yields "-". The result for other out-of-range values is unspecified.
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())})
}

// ParseSquare converts two-character algebraic notation to a square.
// The file letter is case-insensitive; the rank must be '1'..'8'.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: want 2 characters, got %d: %w",
			text, len(text), errors.ErrAlgebraicNotation)
	}

	file := text[0] | 0x20 // fold to lowercase
	rank := text[1]
	if file < 'a' || file > 'h' {
		return NoSquare, fmt.Errorf("square %q: invalid file %q: %w", text, text[0], errors.ErrAlgebraicNotation)
	}
	if rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("square %q: invalid rank %q: %w", text, rank, errors.ErrAlgebraicNotation)
	}
	return NewSquare(int(file-FileBase), int(rank-RankBase)), nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}
