package fen

import (
	"fmt"

	"github.com/eikopf/konig/internal/errors"
)

// Castling is an index into the 16 canonical castling-rights strings.
type Castling uint8

// castlingStrings lists every valid castling field, ordered by subset size
// and then by KQkq order. A Castling value is an index into this table.
var castlingStrings = [16]string{
	"-",
	"K", "Q", "k", "q",
	"KQ", "Kk", "Kq", "Qk", "Qq", "kq",
	"KQk", "KQq", "Kkq", "Qkq",
	"KQkq",
}

// Common castling values.
const (
	NoCastling  Castling = 0
	AllCastling Castling = 15
)

// ParseCastling matches text exactly against the canonical castling strings.
func ParseCastling(text string) (Castling, error) {
	for i, s := range castlingStrings {
		if s == text {
			return Castling(i), nil
		}
	}
	return NoCastling, fmt.Errorf("castling rights %q: %w", text, errors.ErrInvalidFENComponent)
}

// CastlingFromRights returns the castling value granting exactly the given rights.
func CastlingFromRights(whiteKingside, whiteQueenside, blackKingside, blackQueenside bool) Castling {
	var buf []byte
	if whiteKingside {
		buf = append(buf, 'K')
	}
	if whiteQueenside {
		buf = append(buf, 'Q')
	}
	if blackKingside {
		buf = append(buf, 'k')
	}
	if blackQueenside {
		buf = append(buf, 'q')
	}
	if len(buf) == 0 {
		return NoCastling
	}
	c, _ := ParseCastling(string(buf))
	return c
}

// String returns the FEN castling field, "-" when no rights remain.
// Out-of-range values yield "?".
func (c Castling) String() string {
	if int(c) < len(castlingStrings) {
		return castlingStrings[c]
	}
	return "?"
}

func (c Castling) has(flag byte) bool {
	s := c.String()
	for i := 0; i < len(s); i++ {
		if s[i] == flag {
			return true
		}
	}
	return false
}

// WhiteKingside reports whether white may still castle kingside.
func (c Castling) WhiteKingside() bool { return c.has('K') }

// WhiteQueenside reports whether white may still castle queenside.
func (c Castling) WhiteQueenside() bool { return c.has('Q') }

// BlackKingside reports whether black may still castle kingside.
func (c Castling) BlackKingside() bool { return c.has('k') }

// BlackQueenside reports whether black may still castle queenside.
func (c Castling) BlackQueenside() bool { return c.has('q') }
