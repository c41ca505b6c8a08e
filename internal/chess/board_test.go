package chess

import (
	"testing"

	"github.com/eikopf/konig/internal/errors"
)

func TestStartingBoard(t *testing.T) {
	b := StartingBoard()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		// White back rank
		{"white rook a1", "a1", WhiteRook},
		{"white knight b1", "b1", WhiteKnight},
		{"white bishop c1", "c1", WhiteBishop},
		{"white queen d1", "d1", WhiteQueen},
		{"white king e1", "e1", WhiteKing},
		{"white bishop f1", "f1", WhiteBishop},
		{"white knight g1", "g1", WhiteKnight},
		{"white rook h1", "h1", WhiteRook},
		// Pawns
		{"white pawn a2", "a2", WhitePawn},
		{"white pawn h2", "h2", WhitePawn},
		{"black pawn a7", "a7", BlackPawn},
		{"black pawn h7", "h7", BlackPawn},
		// Black back rank
		{"black rook a8", "a8", BlackRook},
		{"black knight b8", "b8", BlackKnight},
		{"black bishop c8", "c8", BlackBishop},
		{"black queen d8", "d8", BlackQueen},
		{"black king e8", "e8", BlackKing},
		{"black bishop f8", "f8", BlackBishop},
		{"black knight g8", "g8", BlackKnight},
		{"black rook h8", "h8", BlackRook},
		// Empty middle
		{"empty e4", "e4", NoPiece},
		{"empty d5", "d5", NoPiece},
		{"empty a3", "a3", NoPiece},
		{"empty h6", "h6", NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Get(MustParseSquare(tt.sq))
			if err != nil {
				t.Fatalf("Get(%s) error = %v", tt.sq, err)
			}
			if got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}

	if n := b.Count(); n != 32 {
		t.Errorf("Count() = %d; want 32", n)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v; want nil", err)
	}
}

func TestBoardZeroValueIsEmpty(t *testing.T) {
	var b Board
	for sq := Square(0); sq < NumSquares; sq++ {
		got, err := b.Get(sq)
		if err != nil || got != NoPiece {
			t.Fatalf("Get(%s) = %v, %v; want Empty, nil", sq, got, err)
		}
	}
	if b.Count() != 0 {
		t.Errorf("Count() = %d; want 0", b.Count())
	}
}

func TestBoardGetInvalidCode(t *testing.T) {
	for _, code := range []uint64{7, 8, 15} {
		// place the bad code in cell 17 (word 1, nibble 1)
		b := BoardFromWords([4]uint64{0, code << 4, 0, 0})

		if _, err := b.Get(17); !errors.Is(err, errors.ErrInvalidPieceCode) {
			t.Errorf("code %d: Get(17) error = %v; want ErrInvalidPieceCode", code, err)
		}
		if err := b.Validate(); !errors.Is(err, errors.ErrInvalidPieceCode) {
			t.Errorf("code %d: Validate() = %v; want ErrInvalidPieceCode", code, err)
		}
		if got, err := b.Get(16); err != nil || got != NoPiece {
			t.Errorf("code %d: neighbouring cell Get(16) = %v, %v", code, got, err)
		}
	}
}

// nibbleMask returns the 256-bit mask covering cell k as four words.
func nibbleMask(k Square) [4]uint64 {
	var m [4]uint64
	m[int(k)/16] = uint64(0x0f) << (uint(k%16) * 4)
	return m
}

func TestBoardSetIsBitExact(t *testing.T) {
	pieces := []Piece{NoPiece, WhiteKing, BlackPawn, WhiteQueen, BlackKnight}
	bases := map[string]Board{
		"empty":    {},
		"starting": StartingBoard(),
		"dense":    BoardFromWords([4]uint64{0x9999999999999999, 0x1234561234561234, 0xABCDEABCDEABCDEA, 0x6543216543216543}),
	}

	for name, base := range bases {
		for k := Square(0); k < NumSquares; k++ {
			for _, p := range pieces {
				b := base
				b.Set(k, p)

				before, after := base.Words(), b.Words()
				mask := nibbleMask(k)
				for w := 0; w < 4; w++ {
					if diff := (before[w] ^ after[w]) &^ mask[w]; diff != 0 {
						t.Fatalf("%s: Set(%s, %v) changed bits outside the cell in word %d: %016x",
							name, k, p, w, diff)
					}
				}

				got, err := b.Get(k)
				if err != nil || got != p {
					t.Fatalf("%s: Get(%s) after Set = %v, %v; want %v", name, k, got, err, p)
				}
			}
		}
	}
}

func TestBoardSetLeavesOtherCellsUnchanged(t *testing.T) {
	base := StartingBoard()
	for k := Square(0); k < NumSquares; k++ {
		b := base
		b.Set(k, WhiteQueen)
		for j := Square(0); j < NumSquares; j++ {
			if j == k {
				continue
			}
			want, _ := base.Get(j)
			got, _ := b.Get(j)
			if got != want {
				t.Fatalf("after Set(%s), Get(%s) = %v; want %v", k, j, got, want)
			}
		}
	}
}

func TestBoardSetPanics(t *testing.T) {
	tests := []struct {
		name string
		sq   Square
		p    Piece
	}{
		{"index 64", 64, WhitePawn},
		{"no square sentinel", NoSquare, WhitePawn},
		{"invalid code 7", 0, Piece(7)},
		{"invalid code 8", 0, Piece(8)},
		{"invalid code 15", 0, Piece(15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d, %d) did not panic", tt.sq, tt.p)
				}
			}()
			var b Board
			b.Set(tt.sq, tt.p)
		})
	}
}

func TestBoardIsValueType(t *testing.T) {
	a := StartingBoard()
	b := a
	b.Clear(MustParseSquare("e2"))

	if got, _ := a.Get(MustParseSquare("e2")); got != WhitePawn {
		t.Errorf("copy modified original: Get(e2) = %v", got)
	}
	if a == b {
		t.Error("boards should differ after Clear on the copy")
	}
}

func TestBoardString(t *testing.T) {
	want := "2346543211111111" + "0000000000000000" + "0000000000000000" + "99999999abcedcba"
	if got := StartingBoard().String(); got != want {
		t.Errorf("String() = %s; want %s", got, want)
	}
}
