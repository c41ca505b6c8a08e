package chess

import (
	"fmt"

	"github.com/eikopf/konig/internal/errors"
)

// Board is a 256-bit value holding 64 packed 4-bit piece codes.
//
// Cell i occupies bits 4i..4i+3 of the 256-bit integer, which is stored
// little-endian across four words: word i/16, nibble i%16. The zero Board
// is the empty board.
type Board struct {
	words [4]uint64
}

const (
	cellBits     = 4
	cellsPerWord = 64 / cellBits
	cellMask     = 0x0f
)

// startingWords is the standard starting position.
// Word 0 holds ranks 1-2 (white pieces and pawns), word 3 ranks 7-8.
var startingWords = [4]uint64{
	0x99999999ABCEDCBA,
	0,
	0,
	0x2346543211111111,
}

// StartingBoard returns the standard starting position.
func StartingBoard() Board {
	return Board{words: startingWords}
}

// BoardFromWords builds a board from its raw 256-bit value, least
// significant word first. The cells are not validated; see Validate.
func BoardFromWords(words [4]uint64) Board {
	return Board{words: words}
}

// Words returns the raw 256-bit value, least significant word first.
func (b Board) Words() [4]uint64 {
	return b.words
}

// locate returns the word index and bit shift for a square.
// Squares outside 0-63 violate the caller contract and panic.
func locate(sq Square) (int, uint) {
	if sq >= NumSquares {
		panic(fmt.Sprintf("chess: square index %d out of range", sq))
	}
	return int(sq) / cellsPerWord, uint(int(sq)%cellsPerWord) * cellBits
}

// raw returns the nibble stored at sq without validation.
func (b *Board) raw(sq Square) Piece {
	w, shift := locate(sq)
	return Piece((b.words[w] >> shift) & cellMask)
}

// Get returns the piece code stored at sq. A stored value of 7, 8 or 15
// yields ErrInvalidPieceCode.
func (b *Board) Get(sq Square) (Piece, error) {
	p := b.raw(sq)
	if !p.Valid() {
		return NoPiece, fmt.Errorf("square %s holds code %d: %w", sq, uint8(p), errors.ErrInvalidPieceCode)
	}
	return p, nil
}

// Set overwrites the four bits at sq with p, leaving every other bit of
// the board unchanged. Out-of-range squares and invalid codes panic.
func (b *Board) Set(sq Square, p Piece) {
	if !p.Valid() {
		panic(fmt.Sprintf("chess: invalid piece code %d", uint8(p)))
	}
	w, shift := locate(sq)
	b.words[w] = b.words[w]&^(cellMask<<shift) | uint64(p)<<shift
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Set(sq, NoPiece)
}

// Validate returns an error naming the first cell, in board-index order,
// that does not hold a valid piece code.
func (b *Board) Validate() error {
	for sq := Square(0); sq < NumSquares; sq++ {
		if _, err := b.Get(sq); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	c := NewForwardCursor(*b)
	for p, ok := c.Next(); ok; p, ok = c.Next() {
		if p != NoPiece {
			n++
		}
	}
	return n
}

// String returns the 256-bit value as 64 hexadecimal digits, most
// significant nibble (h8) first.
func (b Board) String() string {
	return fmt.Sprintf("%016x%016x%016x%016x", b.words[3], b.words[2], b.words[1], b.words[0])
}
