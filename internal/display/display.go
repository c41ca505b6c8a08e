// Package display renders boards as text for terminals.
package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/eikopf/konig/internal/chess"
	"github.com/eikopf/konig/internal/errors"
)

// glyphs maps piece codes to Unicode chess symbols. Invalid codes map to 0.
var glyphs = [16]rune{
	chess.NoPiece:     ' ',
	chess.BlackPawn:   '♟',
	chess.BlackRook:   '♜',
	chess.BlackKnight: '♞',
	chess.BlackBishop: '♝',
	chess.BlackQueen:  '♛',
	chess.BlackKing:   '♚',
	chess.WhitePawn:   '♙',
	chess.WhiteRook:   '♖',
	chess.WhiteKnight: '♘',
	chess.WhiteBishop: '♗',
	chess.WhiteQueen:  '♕',
	chess.WhiteKing:   '♔',
}

// Glyph returns the symbol for p, a space for an empty cell.
func Glyph(p chess.Piece) (rune, error) {
	if int(p) >= len(glyphs) || glyphs[p] == 0 {
		return 0, fmt.Errorf("glyph for code %d: %w", uint8(p), errors.ErrInvalidPieceCode)
	}
	return glyphs[p], nil
}

// Render writes the board as eight lines of eight glyphs, rank 8 first.
// A cell holding an invalid code stops rendering with ErrInvalidPieceCode.
func Render(w io.Writer, board chess.Board) error {
	bw := bufio.NewWriter(w)
	cursor := chess.NewFENCursor(board)

	n := 0
	for p, ok := cursor.Next(); ok; p, ok = cursor.Next() {
		g, err := Glyph(p)
		if err != nil {
			return errors.Wrapf(err, "square %s", cursor.Square())
		}
		bw.WriteRune(g)
		n++
		if n%chess.BoardSize == 0 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
