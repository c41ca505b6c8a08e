package chess

// Cursor is a restartable, finite, forward-only sequence of the raw 4-bit
// codes of a board. Codes are not validated; use Board.Get for that.
type Cursor interface {
	// Next returns the next code and true, or NoPiece and false once the
	// sequence is exhausted.
	Next() (Piece, bool)

	// Square returns the square of the code most recently returned by
	// Next, or NoSquare before the first call.
	Square() Square

	// Reset returns the cursor to its initial position.
	Reset()
}

// ForwardCursor yields cells in board-index order, a1 to h8.
type ForwardCursor struct {
	board Board
	pos   int
}

// NewForwardCursor returns a cursor over b in board-index order.
func NewForwardCursor(b Board) *ForwardCursor {
	return &ForwardCursor{board: b}
}

func (c *ForwardCursor) Next() (Piece, bool) {
	if c.pos >= NumSquares {
		return NoPiece, false
	}
	p := c.board.raw(Square(c.pos))
	c.pos++
	return p, true
}

func (c *ForwardCursor) Square() Square {
	if c.pos == 0 {
		return NoSquare
	}
	return Square(c.pos - 1)
}

func (c *ForwardCursor) Reset() { c.pos = 0 }

// ReverseCursor yields cells from h8 down to a1.
type ReverseCursor struct {
	board Board
	pos   int
}

// NewReverseCursor returns a cursor over b in reverse board-index order.
func NewReverseCursor(b Board) *ReverseCursor {
	return &ReverseCursor{board: b}
}

func (c *ReverseCursor) Next() (Piece, bool) {
	if c.pos >= NumSquares {
		return NoPiece, false
	}
	p := c.board.raw(Square(NumSquares - 1 - c.pos))
	c.pos++
	return p, true
}

func (c *ReverseCursor) Square() Square {
	if c.pos == 0 {
		return NoSquare
	}
	return Square(NumSquares - c.pos)
}

func (c *ReverseCursor) Reset() { c.pos = 0 }

// FENCursor yields cells in the order FEN lists them: rank 8 to rank 1,
// each rank from file a to file h.
type FENCursor struct {
	board Board
	step  int
}

// NewFENCursor returns a cursor over b in FEN order.
func NewFENCursor(b Board) *FENCursor {
	return &FENCursor{board: b}
}

// FENSquare maps a 0-based FEN-order step to its board square:
// step 0 is a8, step 7 is h8, step 8 is a7, step 63 is h1.
func FENSquare(step int) Square {
	return NewSquare(step%BoardSize, BoardSize-1-step/BoardSize)
}

func (c *FENCursor) Next() (Piece, bool) {
	if c.step >= NumSquares {
		return NoPiece, false
	}
	p := c.board.raw(FENSquare(c.step))
	c.step++
	return p, true
}

func (c *FENCursor) Square() Square {
	if c.step == 0 {
		return NoSquare
	}
	return FENSquare(c.step - 1)
}

func (c *FENCursor) Reset() { c.step = 0 }

var (
	_ Cursor = (*ForwardCursor)(nil)
	_ Cursor = (*ReverseCursor)(nil)
	_ Cursor = (*FENCursor)(nil)
)
