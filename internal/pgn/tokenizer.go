package pgn

import (
	"fmt"
	"strings"

	"github.com/eikopf/konig/internal/errors"
)

// MaxTokenLength bounds the text of string and symbol tokens.
const MaxTokenLength = 255

// maxNAGDigits bounds the digits following a NAG marker.
const maxNAGDigits = 3

// Character classes for dispatch on the first byte of a token.
const (
	chError = iota
	chWhitespace
	chQuote
	chDigit
	chAlpha
	chSymbolTail // allowed inside a symbol but cannot start one
	chNAG
	chPunct
	chBraceOpen
	chSemicolon
)

// Character classification table
var chTab [256]uint8

func init() {
	for _, c := range []byte{' ', '\n', '\t', '\r'} {
		chTab[c] = chWhitespace
	}
	chTab['"'] = chQuote
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = chDigit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = chAlpha
		chTab[c+32] = chAlpha
	}
	for _, c := range []byte{'_', '+', '#', '=', ':', '-'} {
		chTab[c] = chSymbolTail
	}
	chTab['%'] = chNAG
	chTab['$'] = chNAG
	for c := range punctuation {
		chTab[c] = chPunct
	}
	chTab['{'] = chBraceOpen
	chTab[';'] = chSemicolon
}

func isSymbolChar(c byte) bool {
	switch chTab[c] {
	case chDigit, chAlpha, chSymbolTail:
		return true
	}
	return false
}

// Tokenizer produces tokens from an in-memory PGN buffer. It is not safe
// for concurrent use; tokenize independent buffers with independent
// tokenizers.
type Tokenizer struct {
	data []byte
	pos  int
	line int
}

// NewTokenizer returns a tokenizer positioned at the start of data.
func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data, line: 1}
}

// Reset rewinds the tokenizer to the start of its input.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.line = 1
}

// Offset returns the byte offset of the next unread byte.
func (t *Tokenizer) Offset() int {
	return t.pos
}

func (t *Tokenizer) fail(sentinel error, offset int, expected, got string) error {
	return &errors.ParseError{
		Err:      sentinel,
		Offset:   offset,
		Line:     t.line,
		Expected: expected,
		Got:      got,
	}
}

// Next returns the next token. At the end of input it returns a token of
// kind EOF and a nil error, and keeps doing so on further calls. On error
// no token is produced and the tokenizer does not advance past the
// offending token's start.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.data) {
		return Token{Kind: EOF, Offset: t.pos, Line: t.line}, nil
	}

	start, line := t.pos, t.line
	c := t.data[start]

	var (
		tok Token
		err error
	)
	switch chTab[c] {
	case chWhitespace:
		tok = t.gatherWhitespace()
	case chQuote:
		tok, err = t.gatherString()
	case chDigit, chAlpha:
		tok, err = t.gatherSymbol()
	case chNAG:
		tok, err = t.gatherNAG()
	case chPunct:
		t.pos++
		tok = Token{Kind: punctuation[c], Text: string(c)}
	case chBraceOpen:
		tok, err = t.gatherBraceComment()
	case chSemicolon:
		tok = t.gatherLineComment()
	default:
		err = t.fail(errors.ErrInvalidDataFormat, start, "start of a PGN token", fmt.Sprintf("%q", c))
	}

	if err != nil {
		t.pos, t.line = start, line
		return Token{}, err
	}
	tok.Offset, tok.Line = start, line
	return tok, nil
}

// All returns every remaining token up to, but not including, EOF.
func (t *Tokenizer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize is shorthand for NewTokenizer(data).All().
func Tokenize(data []byte) ([]Token, error) {
	return NewTokenizer(data).All()
}

// gatherWhitespace coalesces a run of whitespace into one token.
func (t *Tokenizer) gatherWhitespace() Token {
	start := t.pos
	for t.pos < len(t.data) && chTab[t.data[t.pos]] == chWhitespace {
		if t.data[t.pos] == '\n' {
			t.line++
		}
		t.pos++
	}
	return Token{Kind: Whitespace, Text: string(t.data[start:t.pos])}
}

// gatherString reads a quoted string. Only \" and \\ are escapes; a
// newline or tab inside the quotes is an error.
func (t *Tokenizer) gatherString() (Token, error) {
	open := t.pos
	t.pos++ // opening quote

	var sb strings.Builder
	escaped := false
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case c == '"':
			t.pos++
			text := string(t.data[open+1 : t.pos-1])
			if escaped {
				text = sb.String()
			}
			return Token{Kind: String, Text: text}, nil
		case c == '\\':
			if t.pos+1 >= len(t.data) {
				return Token{}, t.fail(errors.ErrInvalidStringLiteral, t.pos, "escaped character", "end of input")
			}
			next := t.data[t.pos+1]
			if next != '"' && next != '\\' {
				return Token{}, t.fail(errors.ErrInvalidStringLiteral, t.pos, `\" or \\`, fmt.Sprintf("%q", []byte{c, next}))
			}
			if !escaped {
				sb.Write(t.data[open+1 : t.pos])
				escaped = true
			}
			sb.WriteByte(next)
			t.pos += 2
		case c == '\n' || c == '\t':
			return Token{}, t.fail(errors.ErrInvalidStringLiteral, t.pos, "closing quote", fmt.Sprintf("%q", c))
		default:
			if escaped {
				sb.WriteByte(c)
			}
			t.pos++
		}

		length := t.pos - open - 1
		if escaped {
			length = sb.Len()
		}
		if length > MaxTokenLength {
			return Token{}, t.fail(errors.ErrInvalidStringLiteral, open, fmt.Sprintf("at most %d bytes", MaxTokenLength), "a longer string")
		}
	}
	return Token{}, t.fail(errors.ErrInvalidStringLiteral, open, "closing quote", "end of input")
}

// gatherSymbol reads a symbol, classifying it as an Integer when every
// byte is a digit.
func (t *Tokenizer) gatherSymbol() (Token, error) {
	start := t.pos
	digits := true
	for t.pos < len(t.data) && isSymbolChar(t.data[t.pos]) {
		if chTab[t.data[t.pos]] != chDigit {
			digits = false
		}
		t.pos++
	}
	if t.pos-start > MaxTokenLength {
		return Token{}, t.fail(errors.ErrInvalidDataFormat, start, fmt.Sprintf("symbol of at most %d bytes", MaxTokenLength), fmt.Sprintf("%d bytes", t.pos-start))
	}

	kind := Symbol
	if digits {
		kind = Integer
	}
	return Token{Kind: kind, Text: string(t.data[start:t.pos])}, nil
}

// gatherNAG reads a numeric annotation glyph: a marker followed by one to
// three digits whose value is at most 255.
func (t *Tokenizer) gatherNAG() (Token, error) {
	start := t.pos
	t.pos++ // marker

	value := 0
	n := 0
	for t.pos < len(t.data) && chTab[t.data[t.pos]] == chDigit {
		if n == maxNAGDigits {
			return Token{}, t.fail(errors.ErrInvalidNAG, start, "at most 3 digits", "a fourth digit")
		}
		value = value*10 + int(t.data[t.pos]-'0')
		n++
		t.pos++
	}

	switch {
	case n == 0:
		return Token{}, t.fail(errors.ErrInvalidNAG, start, "digit", "no digits")
	case value > 255:
		return Token{}, t.fail(errors.ErrInvalidNAG, start, "value 0-255", fmt.Sprintf("%d", value))
	}
	return Token{Kind: NAG, Text: string(t.data[start:t.pos]), glyph: uint8(value)}, nil
}

// gatherBraceComment reads a {...} comment, which may span lines and
// does not nest.
func (t *Tokenizer) gatherBraceComment() (Token, error) {
	start := t.pos
	line := t.line
	for i := start + 1; i < len(t.data); i++ {
		switch t.data[i] {
		case '\n':
			line++
		case '}':
			t.pos = i + 1
			t.line = line
			return Token{Kind: Comment, Text: string(t.data[start+1 : i])}, nil
		}
	}
	return Token{}, t.fail(errors.ErrInvalidDataFormat, start, "closing brace", "end of input")
}

// gatherLineComment reads a ';' comment up to, not including, the newline.
func (t *Tokenizer) gatherLineComment() Token {
	start := t.pos
	for t.pos < len(t.data) && t.data[t.pos] != '\n' {
		t.pos++
	}
	return Token{Kind: Comment, Text: string(t.data[start+1 : t.pos])}
}
