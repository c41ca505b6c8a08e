// Package pgn splits Portable Game Notation text into lexical tokens.
//
// The tokenizer does not assemble tag pairs or movetext; it reports each
// token with its kind, text and location, and leaves interpretation to
// the caller.
package pgn

import "fmt"

// Kind represents the type of a lexical token.
type Kind int

const (
	EOF Kind = iota
	Whitespace
	String
	Symbol
	Integer
	NAG
	Period
	Asterisk
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	LeftAngle
	RightAngle
	Comment
)

// kindNames maps token kinds to their string representations.
var kindNames = [...]string{
	EOF:          "EOF",
	Whitespace:   "WHITESPACE",
	String:       "STRING",
	Symbol:       "SYMBOL",
	Integer:      "INTEGER",
	NAG:          "NAG",
	Period:       "PERIOD",
	Asterisk:     "ASTERISK",
	LeftBracket:  "LEFT_BRACKET",
	RightBracket: "RIGHT_BRACKET",
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftAngle:    "LEFT_ANGLE",
	RightAngle:   "RIGHT_ANGLE",
	Comment:      "COMMENT",
}

// String returns the string representation of a token kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler so kinds serialise by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the names
// produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// Token represents a lexical token.
type Token struct {
	Kind   Kind
	Text   string // token text; strings are unescaped, comments exclude delimiters
	Offset int    // byte offset of the first byte of the token
	Line   int    // 1-based line of the first byte of the token

	glyph uint8
}

// Glyph returns the value of a NAG token. The second result is false for
// every other kind.
func (t Token) Glyph() (uint8, bool) {
	if t.Kind != NAG {
		return 0, false
	}
	return t.glyph, true
}

// punctuation maps single-byte tokens to their kinds.
var punctuation = map[byte]Kind{
	'.': Period,
	'*': Asterisk,
	'[': LeftBracket,
	']': RightBracket,
	'(': LeftParen,
	')': RightParen,
	'<': LeftAngle,
	'>': RightAngle,
}
