// Package httpapi serves the notation codecs over HTTP.
package httpapi

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/eikopf/konig/internal/display"
	"github.com/eikopf/konig/internal/fen"
	"github.com/eikopf/konig/internal/pgn"
	"github.com/eikopf/konig/internal/san"
)

// Handler holds the dependencies of the route handlers.
type Handler struct {
	log zerolog.Logger
}

// FENRequest is the body of POST /api/fen.
type FENRequest struct {
	FEN string `json:"fen"`
}

// SANRequest is the body of POST /api/san.
type SANRequest struct {
	SAN string `json:"san"`
}

// NewApp creates the fiber application with all routes and middleware.
// bodyLimit caps request bodies in bytes.
func NewApp(log zerolog.Logger, bodyLimit int) *fiber.App {
	h := &Handler{log: log}

	app := fiber.New(fiber.Config{
		AppName:               "konig",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(log))

	app.Get("/healthz", h.health)

	api := app.Group("/api")
	api.Post("/fen", h.parseFEN)
	api.Get("/board", h.board)
	api.Post("/san", h.parseSAN)
	api.Post("/pgn/tokens", h.tokens)

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes and oversized bodies.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("rid", GetRequestID(c)).Msg("request failed")
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error(), Kind: "http"})
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (h *Handler) parseFEN(c *fiber.Ctx) error {
	var req FENRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: "invalid_request"})
	}

	pos, err := fen.Parse(req.FEN)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ToPositionResponse(pos))
}

func (h *Handler) board(c *fiber.Ctx) error {
	text := c.Query("fen", fen.StartingFEN)
	pos, err := fen.Parse(text)
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	if err := display.Render(&buf, pos.Board); err != nil {
		return writeError(c, err)
	}
	c.Type("txt", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) parseSAN(c *fiber.Ctx) error {
	var req SANRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: "invalid_request"})
	}

	move, err := san.Parse(req.SAN)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ToMoveResponse(move))
}

func (h *Handler) tokens(c *fiber.Ctx) error {
	tokens, err := pgn.Tokenize(c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ToTokensResponse(tokens))
}
