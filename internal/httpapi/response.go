package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eikopf/konig/internal/chess"
	"github.com/eikopf/konig/internal/errors"
	"github.com/eikopf/konig/internal/fen"
	"github.com/eikopf/konig/internal/pgn"
	"github.com/eikopf/konig/internal/san"
)

// PositionResponse is the JSON form of a parsed FEN position.
type PositionResponse struct {
	FEN            string          `json:"fen"`   // normalized FEN
	Board          string          `json:"board"` // 256-bit value as 64 hex digits
	SideToMove     string          `json:"side_to_move"`
	Castling       string          `json:"castling"`
	EnPassant      string          `json:"en_passant"`
	HalfmoveClock  uint8           `json:"halfmove_clock"`
	FullmoveNumber uint16          `json:"fullmove_number"`
	Pieces         []PieceResponse `json:"pieces"`
}

// PieceResponse is one occupied square.
type PieceResponse struct {
	Square string `json:"square"`
	Piece  string `json:"piece"` // FEN letter
}

// ToPositionResponse converts a position for the wire.
func ToPositionResponse(pos *fen.Position) *PositionResponse {
	resp := &PositionResponse{
		FEN:            pos.String(),
		Board:          pos.Board.String(),
		SideToMove:     "w",
		Castling:       pos.Castling.String(),
		EnPassant:      "-",
		HalfmoveClock:  pos.HalfmoveClock,
		FullmoveNumber: pos.FullmoveNumber,
		Pieces:         make([]PieceResponse, 0, 32),
	}
	if pos.SideToMove == chess.Black {
		resp.SideToMove = "b"
	}
	if pos.EnPassant != chess.NoSquare {
		resp.EnPassant = pos.EnPassant.String()
	}

	cursor := chess.NewForwardCursor(pos.Board)
	for p, ok := cursor.Next(); ok; p, ok = cursor.Next() {
		if p.IsEmpty() {
			continue
		}
		resp.Pieces = append(resp.Pieces, PieceResponse{
			Square: cursor.Square().String(),
			Piece:  string(p.FENChar()),
		})
	}
	return resp
}

// MoveResponse is the JSON form of a parsed SAN move.
type MoveResponse struct {
	SAN            string `json:"san"` // canonical SAN
	Castle         string `json:"castle,omitempty"`
	Piece          string `json:"piece,omitempty"`
	Target         string `json:"target,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
	Promotion      string `json:"promotion,omitempty"`
	Capture        bool   `json:"capture"`
	Check          bool   `json:"check"`
	Checkmate      bool   `json:"checkmate"`
	Suffix         string `json:"suffix,omitempty"`
	NAG            uint8  `json:"nag,omitempty"`
}

// ToMoveResponse converts a move for the wire.
func ToMoveResponse(move san.Move) *MoveResponse {
	resp := &MoveResponse{SAN: move.String()}
	switch m := move.(type) {
	case san.Castle:
		resp.Castle = m.Side.String()
		resp.Check, resp.Checkmate = m.Check, m.Checkmate
		resp.Suffix, resp.NAG = m.Suffix.String(), m.Suffix.NAG()
	case san.Normal:
		resp.Piece = m.Piece.String()
		resp.Target = m.Target.String()
		if m.Disambiguation != nil {
			resp.Disambiguation = m.Disambiguation.String()
		}
		if m.Promotion != chess.NoKind {
			resp.Promotion = m.Promotion.String()
		}
		resp.Capture = m.Capture
		resp.Check, resp.Checkmate = m.Check, m.Checkmate
		resp.Suffix, resp.NAG = m.Suffix.String(), m.Suffix.NAG()
	}
	return resp
}

// TokensResponse is the token stream of a PGN body.
type TokensResponse struct {
	Count  int             `json:"count"`
	Tokens []TokenResponse `json:"tokens"`
}

// TokenResponse is one PGN token.
type TokenResponse struct {
	Kind   pgn.Kind `json:"kind"`
	Text   string   `json:"text"`
	Offset int      `json:"offset"`
	Line   int      `json:"line"`
	Glyph  *uint8   `json:"glyph,omitempty"`
}

// ToTokensResponse converts a token slice for the wire.
func ToTokensResponse(tokens []pgn.Token) *TokensResponse {
	resp := &TokensResponse{
		Count:  len(tokens),
		Tokens: make([]TokenResponse, 0, len(tokens)),
	}
	for _, tok := range tokens {
		tr := TokenResponse{Kind: tok.Kind, Text: tok.Text, Offset: tok.Offset, Line: tok.Line}
		if g, ok := tok.Glyph(); ok {
			tr.Glyph = &g
		}
		resp.Tokens = append(resp.Tokens, tr)
	}
	return resp
}

// ErrorResponse is the body of every 4xx reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Field  string `json:"field,omitempty"` // FEN field, for FEN errors
	Offset *int   `json:"offset,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// writeError replies 400 with err's category and any location it carries.
func writeError(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: err.Error(), Kind: errors.Kind(err)}

	var ce *fen.ComponentError
	if errors.As(err, &ce) {
		resp.Field = ce.Field.String()
	}
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		offset := pe.Offset
		resp.Offset = &offset
		resp.Line = pe.Line
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}
