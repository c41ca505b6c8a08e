// Package chess provides the packed board representation and the piece
// and square encodings shared by the notation packages.
package chess

// Color represents the colour of a piece or player.
// Its value is the colour bit of a piece code.
type Color uint8

const (
	Black Color = iota
	White
)

// String returns the string representation of a colour.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a piece type without colour.
// Its value occupies the low three bits of a piece code.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var kindNames = [...]string{"None", "Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}

// String returns the string representation of a kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Letter returns the uppercase SAN letter of a kind ('P' for pawns),
// or '?' for NoKind and out-of-range values.
func (k Kind) Letter() byte {
	letters := []byte{'?', 'P', 'R', 'N', 'B', 'Q', 'K'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts an uppercase SAN piece letter to a kind.
func KindFromLetter(c byte) (Kind, bool) {
	switch c {
	case 'P':
		return Pawn, true
	case 'R':
		return Rook, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return NoKind, false
}

// Piece is a 4-bit piece code. Bit 3 is the colour (1 = white) and
// bits 2-0 are the kind. Codes 7, 8 and 15 are invalid.
type Piece uint8

// ColorShift is the bit position of the colour bit in a piece code.
const ColorShift = 3

const kindMask = 0x07

// NoPiece is the single code for an empty cell.
const NoPiece Piece = 0

// The twelve canonical piece codes.
const (
	BlackPawn Piece = iota + 1
	BlackRook
	BlackKnight
	BlackBishop
	BlackQueen
	BlackKing
)

const (
	WhitePawn Piece = iota + 9
	WhiteRook
	WhiteKnight
	WhiteBishop
	WhiteQueen
	WhiteKing
)

// MakePiece creates the canonical code for a coloured piece.
// MakePiece(c, NoKind) is NoPiece for either colour.
func MakePiece(color Color, kind Kind) Piece {
	if kind == NoKind {
		return NoPiece
	}
	return Piece(color)<<ColorShift | Piece(kind&kindMask)
}

// Color extracts the colour bit from a piece code.
func (p Piece) Color() Color {
	return Color(p>>ColorShift) & 1
}

// Kind extracts the kind bits from a piece code.
func (p Piece) Kind() Kind {
	return Kind(p & kindMask)
}

// Valid reports whether p is one of the 13 valid codes.
func (p Piece) Valid() bool {
	if p > 0x0f {
		return false
	}
	if p == NoPiece {
		return true
	}
	k := p.Kind()
	return k >= Pawn && k <= King
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

const fenLetters = "?prnbqk??PRNBQK?"

// FENChar returns the FEN letter of a piece: uppercase for white,
// lowercase for black. NoPiece and invalid codes yield '?'.
func (p Piece) FENChar() byte {
	if p > 0x0f {
		return '?'
	}
	return fenLetters[p]
}

// PieceFromFEN converts one of the twelve FEN piece letters to a piece code.
func PieceFromFEN(c byte) (Piece, bool) {
	switch c {
	case 'p':
		return BlackPawn, true
	case 'r':
		return BlackRook, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	case 'P':
		return WhitePawn, true
	case 'R':
		return WhiteRook, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	}
	return NoPiece, false
}

// String returns a readable name such as "White Knight" or "Empty".
func (p Piece) String() string {
	switch {
	case p == NoPiece:
		return "Empty"
	case !p.Valid():
		return "Invalid"
	}
	return p.Color().String() + " " + p.Kind().String()
}
