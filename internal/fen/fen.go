// Package fen converts between Forsyth-Edwards Notation and the packed
// position record.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eikopf/konig/internal/chess"
	"github.com/eikopf/konig/internal/errors"
)

// StartingFEN is the FEN string for the standard starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MaxHalfmoveClock is the largest halfmove clock a position may carry.
const MaxHalfmoveClock = 50

// Field identifies one of the six space-separated FEN fields.
type Field int

const (
	PiecePlacement Field = iota
	SideToMove
	CastlingRights
	EnPassantTarget
	HalfmoveClock
	FullmoveNumber
	numFields
)

var fieldNames = [...]string{
	PiecePlacement:  "piece placement",
	SideToMove:      "side to move",
	CastlingRights:  "castling rights",
	EnPassantTarget: "en passant target",
	HalfmoveClock:   "halfmove clock",
	FullmoveNumber:  "fullmove number",
}

// String returns the name of the field.
func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "field count"
}

// ComponentError describes which FEN field failed to parse.
// It always unwraps to errors.ErrInvalidFENComponent.
type ComponentError struct {
	Field  Field
	Value  string
	Reason string
}

// Error returns a message naming the field, its text and the reason.
func (e *ComponentError) Error() string {
	return fmt.Sprintf("%v: %s %q: %s", errors.ErrInvalidFENComponent, e.Field, e.Value, e.Reason)
}

// Unwrap returns errors.ErrInvalidFENComponent.
func (e *ComponentError) Unwrap() error {
	return errors.ErrInvalidFENComponent
}

func componentError(field Field, value, format string, args ...interface{}) error {
	return &ComponentError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// Position is the record described by a FEN string.
type Position struct {
	Board          chess.Board
	SideToMove     chess.Color
	Castling       Castling
	EnPassant      chess.Square // chess.NoSquare when there is no target
	HalfmoveClock  uint8        // 0-50
	FullmoveNumber uint16       // >= 1
}

// Start returns the standard starting position.
func Start() Position {
	return Position{
		Board:          chess.StartingBoard(),
		SideToMove:     chess.White,
		Castling:       AllCastling,
		EnPassant:      chess.NoSquare,
		FullmoveNumber: 1,
	}
}

// Parse parses a six-field FEN string. Fields are separated by exactly
// one space; any malformed or missing field yields a *ComponentError.
func Parse(text string) (*Position, error) {
	parts := strings.Split(text, " ")
	if len(parts) < int(numFields) {
		return nil, componentError(Field(len(parts)), text, "want 6 fields, got %d", len(parts))
	}
	if len(parts) > int(numFields) {
		return nil, componentError(numFields, text, "want 6 fields, got %d", len(parts))
	}

	pos := &Position{}
	var err error

	if pos.Board, err = parsePiecePlacement(parts[PiecePlacement]); err != nil {
		return nil, err
	}
	if pos.SideToMove, err = parseSideToMove(parts[SideToMove]); err != nil {
		return nil, err
	}
	if pos.Castling, err = ParseCastling(parts[CastlingRights]); err != nil {
		return nil, componentError(CastlingRights, parts[CastlingRights], "not one of the 16 canonical forms")
	}
	if pos.EnPassant, err = parseEnPassant(parts[EnPassantTarget]); err != nil {
		return nil, err
	}
	if pos.HalfmoveClock, err = parseHalfmoveClock(parts[HalfmoveClock]); err != nil {
		return nil, err
	}
	if pos.FullmoveNumber, err = parseFullmoveNumber(parts[FullmoveNumber]); err != nil {
		return nil, err
	}
	return pos, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(text string) *Position {
	pos, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement walks the placement field in FEN order. Digits skip
// empty cells, letters write a piece, '/' closes a rank of exactly 8 cells.
func parsePiecePlacement(field string) (chess.Board, error) {
	var board chess.Board
	step := 0 // FEN-order cell index
	file := 0 // cells covered in the current rank
	ranks := 1

	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return chess.Board{}, componentError(PiecePlacement, field, "rank %d covers %d cells", ranks, file)
			}
			if ranks == chess.BoardSize {
				return chess.Board{}, componentError(PiecePlacement, field, "more than 8 ranks")
			}
			ranks++
			file = 0
		case c >= '1' && c <= '8':
			n := int(c - '0')
			if file+n > chess.BoardSize {
				return chess.Board{}, componentError(PiecePlacement, field, "rank %d covers more than 8 cells", ranks)
			}
			file += n
			step += n
		default:
			piece, ok := chess.PieceFromFEN(c)
			if !ok {
				return chess.Board{}, componentError(PiecePlacement, field, "invalid character %q at offset %d", c, i)
			}
			if file == chess.BoardSize {
				return chess.Board{}, componentError(PiecePlacement, field, "rank %d covers more than 8 cells", ranks)
			}
			board.Set(chess.FENSquare(step), piece)
			file++
			step++
		}
	}

	if ranks != chess.BoardSize || file != chess.BoardSize {
		return chess.Board{}, componentError(PiecePlacement, field, "want 8 full ranks, got %d ending with %d cells", ranks, file)
	}
	return board, nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Color, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, componentError(SideToMove, field, "want \"w\" or \"b\"")
}

// parseEnPassant parses the en passant target square field.
// Only squares on rank 3 or 6 can be exposed by a double pawn push.
func parseEnPassant(field string) (chess.Square, error) {
	if field == "-" {
		return chess.NoSquare, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return chess.NoSquare, componentError(EnPassantTarget, field, "not an algebraic square")
	}
	if field[1] != '3' && field[1] != '6' {
		return chess.NoSquare, componentError(EnPassantTarget, field, "rank must be 3 or 6")
	}
	return sq, nil
}

// parseHalfmoveClock parses the halfmove clock, bounded by the fifty-move rule.
func parseHalfmoveClock(field string) (uint8, error) {
	n, err := strconv.ParseUint(field, 10, 8)
	if err != nil || n > MaxHalfmoveClock {
		return 0, componentError(HalfmoveClock, field, "want an integer in [0, %d]", MaxHalfmoveClock)
	}
	return uint8(n), nil
}

// parseFullmoveNumber parses the fullmove counter, which starts at 1.
func parseFullmoveNumber(field string) (uint16, error) {
	n, err := strconv.ParseUint(field, 10, 16)
	if err != nil || n == 0 {
		return 0, componentError(FullmoveNumber, field, "want an integer in [1, 65535]")
	}
	return uint16(n), nil
}

// String converts the position to its FEN string.
func (p *Position) String() string {
	var sb strings.Builder

	writePiecePlacement(&sb, p.Board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, p.SideToMove)
	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)

	return sb.String()
}

// writePiecePlacement writes the cells in FEN order, collapsing runs of
// empty cells into a single digit.
func writePiecePlacement(sb *strings.Builder, board chess.Board) {
	cursor := chess.NewFENCursor(board)
	empty := 0
	step := 0

	for piece, ok := cursor.Next(); ok; piece, ok = cursor.Next() {
		if piece == chess.NoPiece {
			empty++
		} else {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FENChar())
		}

		step++
		if step%chess.BoardSize == 0 {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if step < chess.NumSquares {
				sb.WriteByte('/')
			}
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, color chess.Color) {
	if color == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// Validate checks that the record could have come from Parse.
func (p *Position) Validate() error {
	if err := p.Board.Validate(); err != nil {
		return errors.Wrap(err, "piece placement")
	}
	if p.Castling > AllCastling {
		return componentError(CastlingRights, p.Castling.String(), "castling index %d out of range", p.Castling)
	}
	if p.EnPassant != chess.NoSquare {
		if !p.EnPassant.Valid() || (p.EnPassant.Rank() != 2 && p.EnPassant.Rank() != 5) {
			return componentError(EnPassantTarget, p.EnPassant.String(), "rank must be 3 or 6")
		}
	}
	if p.HalfmoveClock > MaxHalfmoveClock {
		return componentError(HalfmoveClock, strconv.Itoa(int(p.HalfmoveClock)), "above %d", MaxHalfmoveClock)
	}
	if p.FullmoveNumber == 0 {
		return componentError(FullmoveNumber, "0", "must be at least 1")
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
