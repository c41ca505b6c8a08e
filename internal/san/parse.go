package san

import (
	"fmt"

	"github.com/eikopf/konig/internal/chess"
	"github.com/eikopf/konig/internal/errors"
)

// maxPositionChars is the size of the buffer holding file and rank
// characters: an optional disambiguation square followed by the target.
const maxPositionChars = 4

// Scanner states.
const (
	stPiece     = iota // optional leading piece letter
	stSquares          // file/rank characters, capture marker
	stPromotion        // after '=', expecting a promotion letter
	stPromoted         // promotion letter consumed
	stCheck            // after '+' or '#'
	stSuffix           // inside the '!'/'?' annotation
)

// Character classes used by the scanner.
const (
	chOther = iota
	chFile
	chRank
	chPiece
	chCapture
	chPromote
	chCheck
	chMate
	chSuffix
)

var chClass [256]uint8

func init() {
	for c := byte('a'); c <= 'h'; c++ {
		chClass[c] = chFile
	}
	for c := byte('1'); c <= '8'; c++ {
		chClass[c] = chRank
	}
	for _, c := range []byte{'K', 'Q', 'R', 'B', 'N'} {
		chClass[c] = chPiece
	}
	chClass['x'] = chCapture
	chClass['='] = chPromote
	chClass['+'] = chCheck
	chClass['#'] = chMate
	chClass['!'] = chSuffix
	chClass['?'] = chSuffix
}

// Parse parses a single SAN literal. Castling literals ("O-O", "O-O-O",
// and the digit-zero forms) yield a Castle; everything else a Normal.
// Any failure is a *errors.ParseError wrapping errors.ErrInvalidSANLiteral.
func Parse(literal string) (Move, error) {
	if castle, n, ok := scanCastle(literal); ok {
		t := tail{}
		if err := t.scan(literal, n); err != nil {
			return nil, err
		}
		castle.Check, castle.Checkmate, castle.Suffix = t.check, t.checkmate, t.suffix
		return castle, nil
	}
	return parseNormal(literal)
}

// MustParse is like Parse but panics on malformed input.
func MustParse(literal string) Move {
	m, err := Parse(literal)
	if err != nil {
		panic(err)
	}
	return m
}

func syntaxError(literal string, offset int, expected string) error {
	got := "end of literal"
	if offset < len(literal) {
		got = fmt.Sprintf("%q", literal[offset])
	}
	return &errors.ParseError{
		Err:      errors.ErrInvalidSANLiteral,
		Input:    literal,
		Offset:   offset,
		Expected: expected,
		Got:      got,
	}
}

// scanCastle matches a castle prefix, preferring the queenside form. It
// returns the number of bytes consumed. Letter O and digit zero may not be
// mixed within one literal.
func scanCastle(literal string) (Castle, int, bool) {
	for _, form := range []struct {
		text string
		side CastleSide
	}{
		{"O-O-O", Queenside},
		{"0-0-0", Queenside},
		{"O-O", Kingside},
		{"0-0", Kingside},
	} {
		n := len(form.text)
		if len(literal) >= n && literal[:n] == form.text {
			// "O-O-" followed by something other than O is not a castle at all.
			if n == 3 && len(literal) > n && literal[n] == '-' {
				continue
			}
			return Castle{Side: form.side}, n, true
		}
	}
	return Castle{}, 0, false
}

// tail holds the check and annotation markers that may end any literal.
type tail struct {
	check     bool
	checkmate bool
	suffix    Suffix
}

// scan consumes the rest of literal from offset i: at most one of '+' or
// '#', then at most two annotation characters.
func (t *tail) scan(literal string, i int) error {
	state := stCheck
	start := -1
	for ; i < len(literal); i++ {
		switch chClass[literal[i]] {
		case chCheck, chMate:
			if state != stCheck || t.check || t.checkmate {
				return syntaxError(literal, i, "end of literal")
			}
			if literal[i] == '+' {
				t.check = true
			} else {
				t.checkmate = true
			}
		case chSuffix:
			if start < 0 {
				start = i
				state = stSuffix
			}
			if i-start >= 2 {
				return syntaxError(literal, i, "at most two annotation characters")
			}
		default:
			return syntaxError(literal, i, "'+', '#', '!' or '?'")
		}
	}
	if start >= 0 {
		t.suffix, _ = suffixFromText(literal[start:])
	}
	return nil
}

// parseNormal runs the general left-to-right scan.
func parseNormal(literal string) (Move, error) {
	move := Normal{Piece: chess.Pawn}
	var pos [maxPositionChars]byte
	n := 0
	state := stPiece
	captureAt, captureN := -1, 0 // offset of 'x' and square characters before it

	i := 0
scan:
	for ; i < len(literal); i++ {
		c := literal[i]
		class := chClass[c]

		switch state {
		case stPiece:
			state = stSquares
			if class == chPiece {
				move.Piece, _ = chess.KindFromLetter(c)
				continue
			}
			fallthrough

		case stSquares:
			switch class {
			case chFile, chRank:
				if n == maxPositionChars {
					return nil, syntaxError(literal, i, "at most four square characters")
				}
				pos[n] = c
				n++
			case chCapture:
				if move.Capture || n > 2 {
					return nil, syntaxError(literal, i, "file, rank or promotion")
				}
				move.Capture = true
				captureAt, captureN = i, n
			case chPromote:
				if move.Piece != chess.Pawn || n == 0 {
					return nil, syntaxError(literal, i, "file or rank")
				}
				state = stPromotion
			case chCheck, chMate, chSuffix:
				break scan
			default:
				return nil, syntaxError(literal, i, "piece letter, file, rank or 'x'")
			}

		case stPromotion:
			kind, ok := chess.KindFromLetter(c)
			if !ok || class != chPiece || kind == chess.King {
				return nil, syntaxError(literal, i, "promotion piece Q, R, B or N")
			}
			move.Promotion = kind
			state = stPromoted

		case stPromoted:
			if class == chCheck || class == chMate || class == chSuffix {
				break scan
			}
			return nil, syntaxError(literal, i, "'+', '#', '!' or '?'")
		}
	}

	if state == stPromotion {
		return nil, syntaxError(literal, i, "promotion piece Q, R, B or N")
	}
	if move.Capture && n-captureN < 2 {
		return nil, syntaxError(literal, captureAt, "target square after 'x'")
	}

	target, disambiguation, err := splitSquares(literal, pos[:n])
	if err != nil {
		return nil, err
	}
	move.Target = target
	move.Disambiguation = disambiguation

	t := tail{}
	if err := t.scan(literal, i); err != nil {
		return nil, err
	}
	move.Check, move.Checkmate, move.Suffix = t.check, t.checkmate, t.suffix

	return move, nil
}

// splitSquares interprets the buffered file and rank characters. The last
// two are the target; anything before them disambiguates the source.
func splitSquares(literal string, pos []byte) (chess.Square, Disambiguation, error) {
	if len(pos) < 2 {
		return chess.NoSquare, nil, syntaxError(literal, len(literal), "target square")
	}

	target, err := chess.ParseSquare(string(pos[len(pos)-2:]))
	if err != nil || chClass[pos[len(pos)-2]] != chFile {
		return chess.NoSquare, nil, &errors.ParseError{
			Err:      errors.ErrInvalidSANLiteral,
			Input:    literal,
			Expected: "target square",
			Got:      fmt.Sprintf("%q", pos[len(pos)-2:]),
		}
	}

	prefix := pos[:len(pos)-2]
	switch len(prefix) {
	case 0:
		return target, nil, nil
	case 1:
		if chClass[prefix[0]] == chFile {
			return target, DisambiguationFile(prefix[0] - chess.FileBase), nil
		}
		return target, DisambiguationRank(prefix[0] - chess.RankBase), nil
	default:
		source, err := chess.ParseSquare(string(prefix))
		if err != nil || chClass[prefix[0]] != chFile {
			return chess.NoSquare, nil, &errors.ParseError{
				Err:      errors.ErrInvalidSANLiteral,
				Input:    literal,
				Expected: "source square",
				Got:      fmt.Sprintf("%q", prefix),
			}
		}
		return target, DisambiguationSquare(source), nil
	}
}
