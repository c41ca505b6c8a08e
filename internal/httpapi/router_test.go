package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eikopf/konig/internal/fen"
	"github.com/eikopf/konig/internal/pgn"
	"github.com/eikopf/konig/internal/testutil"
)

func newTestApp(t *testing.T) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	return NewApp(zerolog.New(logs), 1<<16), logs
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" && strings.HasPrefix(target, "/api/") && !strings.HasPrefix(target, "/api/pgn") {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/healthz", "")

	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, string(body), "ok")
}

func TestRequestID(t *testing.T) {
	app, logs := newTestApp(t)

	resp, _ := do(t, app, http.MethodGet, "/healthz", "")
	rid := resp.Header.Get(HeaderRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", rid, err)
	}
	testutil.AssertContains(t, logs.String(), rid)

	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, want)
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.Header.Get(HeaderRequestID), want, "client id should be echoed")

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp, err = app.Test(req, -1)
	testutil.AssertNoError(t, err)
	if got := resp.Header.Get(HeaderRequestID); got == "not-a-uuid" {
		t.Error("malformed client id should be replaced")
	}
}

func TestParseFEN(t *testing.T) {
	app, _ := newTestApp(t)
	text := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

	resp, body := do(t, app, http.MethodPost, "/api/fen", `{"fen":"`+text+`"}`)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	got := decode[PositionResponse](t, body)
	testutil.AssertEqual(t, got.FEN, text)
	testutil.AssertEqual(t, got.SideToMove, "b")
	testutil.AssertEqual(t, got.Castling, "KQkq")
	testutil.AssertEqual(t, got.EnPassant, "e3")
	testutil.AssertEqual(t, got.FullmoveNumber, uint16(1))
	testutil.AssertEqual(t, len(got.Pieces), 32)
	testutil.AssertEqual(t, len(got.Board), 64)
	testutil.AssertEqual(t, got.Pieces[0], PieceResponse{Square: "a1", Piece: "R"})
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  string
		wantField string
	}{
		{"bad side", `{"fen":"8/8/8/8/8/8/8/8 x - - 0 1"}`, "invalid_fen_component", "side to move"},
		{"missing fields", `{"fen":"8/8/8/8/8/8/8/8 w -"}`, "invalid_fen_component", "en passant target"},
		{"bad clock", `{"fen":"8/8/8/8/8/8/8/8 w - - 51 1"}`, "invalid_fen_component", "halfmove clock"},
		{"not json", `{"fen":`, "invalid_request", ""},
	}

	app, _ := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/api/fen", tt.body)
			testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)

			got := decode[ErrorResponse](t, body)
			testutil.AssertEqual(t, got.Kind, tt.wantKind)
			testutil.AssertEqual(t, got.Field, tt.wantField)
			if got.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestBoard(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/board", "")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertContains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")

	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 8)
	testutil.AssertEqual(t, lines[0], "♜♞♝♛♚♝♞♜")
	testutil.AssertEqual(t, lines[7], "♖♘♗♕♔♗♘♖")

	q := url.Values{"fen": {"4k3/8/8/8/8/8/8/4K3 w - - 0 1"}}
	resp, body = do(t, app, http.MethodGet, "/api/board?"+q.Encode(), "")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	lines = strings.Split(string(body), "\n")
	testutil.AssertEqual(t, lines[0], "    ♚   ")
	testutil.AssertEqual(t, lines[7], "    ♔   ")

	resp, _ = do(t, app, http.MethodGet, "/api/board?fen=nonsense", "")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
}

func TestParseSAN(t *testing.T) {
	tests := []struct {
		literal string
		want    MoveResponse
	}{
		{"e4", MoveResponse{SAN: "e4", Piece: "Pawn", Target: "e4"}},
		{"Nbxd7+!?", MoveResponse{
			SAN: "Nbxd7+!?", Piece: "Knight", Target: "d7", Disambiguation: "b",
			Capture: true, Check: true, Suffix: "!?", NAG: 5,
		}},
		{"exf8=Q#", MoveResponse{
			SAN: "exf8=Q#", Piece: "Pawn", Target: "f8", Disambiguation: "e",
			Promotion: "Queen", Capture: true, Checkmate: true,
		}},
		{"O-O-O+", MoveResponse{SAN: "O-O-O+", Castle: "O-O-O", Check: true}},
	}

	app, _ := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/api/san", `{"san":"`+tt.literal+`"}`)
			testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
			if diff := cmp.Diff(tt.want, decode[MoveResponse](t, body)); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSANError(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodPost, "/api/san", `{"san":"e9"}`)

	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
	got := decode[ErrorResponse](t, body)
	testutil.AssertEqual(t, got.Kind, "invalid_san_literal")
}

func TestTokens(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodPost, "/api/pgn/tokens", "1. e4 $1 *")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	got := decode[TokensResponse](t, body)
	testutil.AssertEqual(t, got.Count, 8)

	var kinds []pgn.Kind
	for _, tok := range got.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []pgn.Kind{pgn.Integer, pgn.Period, pgn.Whitespace, pgn.Symbol, pgn.Whitespace, pgn.NAG, pgn.Whitespace, pgn.Asterisk}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	nag := got.Tokens[5]
	if nag.Glyph == nil || *nag.Glyph != 1 {
		t.Errorf("NAG glyph = %v; want 1", nag.Glyph)
	}
	if got.Tokens[3].Glyph != nil {
		t.Error("symbol token should carry no glyph")
	}
}

func TestTokensError(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodPost, "/api/pgn/tokens", "1. e4\n$256")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)

	got := decode[ErrorResponse](t, body)
	testutil.AssertEqual(t, got.Kind, "invalid_nag")
	if got.Offset == nil || *got.Offset != 6 {
		t.Errorf("Offset = %v; want 6", got.Offset)
	}
	testutil.AssertEqual(t, got.Line, 2)
}

func TestNotFound(t *testing.T) {
	app, logs := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/nowhere", "")

	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
	testutil.AssertEqual(t, decode[ErrorResponse](t, body).Kind, "http")
	testutil.AssertContains(t, logs.String(), `"status":404`)
}

func TestKindMarshalsAsName(t *testing.T) {
	data, err := json.Marshal(ToTokensResponse([]pgn.Token{{Kind: pgn.Symbol, Text: "e4", Line: 1}}))
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), `"kind":"SYMBOL"`)

	pos := fen.Start()
	testutil.AssertEqual(t, ToPositionResponse(&pos).FEN, fen.StartingFEN)
}
