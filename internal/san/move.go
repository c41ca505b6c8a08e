// Package san parses single Standard Algebraic Notation move literals.
//
// A literal describes a move without reference to any position, so the
// parsed value records exactly what the text says: the moving piece kind,
// the target square, an optional disambiguation, and the capture, check,
// promotion and annotation markers.
package san

import (
	"strings"

	"github.com/eikopf/konig/internal/chess"
)

// Move is either a Castle or a Normal move.
type Move interface {
	isMove()
	String() string
}

// CastleSide selects the rook a castle moves towards.
type CastleSide uint8

const (
	Kingside CastleSide = iota
	Queenside
)

// String returns the canonical castle literal for the side.
func (s CastleSide) String() string {
	if s == Queenside {
		return "O-O-O"
	}
	return "O-O"
}

// Castle is a castling move.
type Castle struct {
	Side      CastleSide
	Check     bool
	Checkmate bool
	Suffix    Suffix
}

func (Castle) isMove() {}

// String returns the castle in canonical SAN.
func (c Castle) String() string {
	var sb strings.Builder
	sb.WriteString(c.Side.String())
	writeTail(&sb, c.Check, c.Checkmate, c.Suffix)
	return sb.String()
}

// Normal is any non-castling move.
type Normal struct {
	Target         chess.Square
	Piece          chess.Kind // chess.Pawn when no piece letter is given
	Promotion      chess.Kind // chess.NoKind unless the literal promotes
	Disambiguation Disambiguation
	Capture        bool
	Check          bool
	Checkmate      bool
	Suffix         Suffix
}

func (Normal) isMove() {}

// String returns the move in canonical SAN.
func (n Normal) String() string {
	var sb strings.Builder
	if n.Piece != chess.Pawn {
		sb.WriteByte(n.Piece.Letter())
	}
	if n.Disambiguation != nil {
		sb.WriteString(n.Disambiguation.String())
	}
	if n.Capture {
		sb.WriteByte('x')
	}
	sb.WriteString(n.Target.String())
	if n.Promotion != chess.NoKind {
		sb.WriteByte('=')
		sb.WriteByte(n.Promotion.Letter())
	}
	writeTail(&sb, n.Check, n.Checkmate, n.Suffix)
	return sb.String()
}

func writeTail(sb *strings.Builder, check, checkmate bool, suffix Suffix) {
	switch {
	case checkmate:
		sb.WriteByte('#')
	case check:
		sb.WriteByte('+')
	}
	sb.WriteString(suffix.String())
}

// Disambiguation names the source of a move when the target alone is
// ambiguous. It is one of DisambiguationFile, DisambiguationRank or
// DisambiguationSquare; a nil Disambiguation means none was given.
type Disambiguation interface {
	isDisambiguation()
	String() string
}

// DisambiguationFile is a 0-based source file.
type DisambiguationFile int

// DisambiguationRank is a 0-based source rank.
type DisambiguationRank int

// DisambiguationSquare is a full source square.
type DisambiguationSquare chess.Square

func (DisambiguationFile) isDisambiguation()   {}
func (DisambiguationRank) isDisambiguation()   {}
func (DisambiguationSquare) isDisambiguation() {}

func (f DisambiguationFile) String() string { return string(rune(chess.FileBase + int(f))) }

func (r DisambiguationRank) String() string { return string(rune(chess.RankBase + int(r))) }

func (s DisambiguationSquare) String() string { return chess.Square(s).String() }

// Suffix is a traditional move-quality annotation.
type Suffix uint8

const (
	NoSuffix Suffix = iota
	Bang            // !
	Hook            // ?
	BangBang        // !!
	BangHook        // !?
	HookBang        // ?!
	HookHook        // ??
)

var suffixText = [...]string{
	NoSuffix: "",
	Bang:     "!",
	Hook:     "?",
	BangBang: "!!",
	BangHook: "!?",
	HookBang: "?!",
	HookHook: "??",
}

// String returns the annotation characters.
func (s Suffix) String() string {
	if int(s) < len(suffixText) {
		return suffixText[s]
	}
	return ""
}

// NAG returns the numeric annotation glyph equivalent to the suffix,
// or 0 for NoSuffix.
func (s Suffix) NAG() uint8 {
	switch s {
	case Bang:
		return 1
	case Hook:
		return 2
	case BangBang:
		return 3
	case HookHook:
		return 4
	case BangHook:
		return 5
	case HookBang:
		return 6
	default:
		return 0
	}
}

// suffixFromText maps one or two annotation characters to a Suffix.
func suffixFromText(text string) (Suffix, bool) {
	for i, s := range suffixText {
		if i != int(NoSuffix) && s == text {
			return Suffix(i), true
		}
	}
	return NoSuffix, false
}
