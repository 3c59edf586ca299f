package chess

import "errors"

// Rejection errors returned by the mutating entry points. They are sentinel
// values so callers can tell an unchanged board apart from an applied move.
var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrWrongTurn        = errors.New("not this color's turn")
	ErrOutOfBounds      = errors.New("position outside the board")
	ErrGameOver         = errors.New("game already decided")
	ErrNoPromotion      = errors.New("no promotion pending")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// Position is a square coordinate. Rank 0 is black's back rank; white starts
// on ranks 6 and 7. Both coordinates range over [0,7].
type Position struct {
	Column int
	Rank   int
}

// NewPosition creates a position, failing fast on out-of-range coordinates.
func NewPosition(column, rank int) (Position, error) {
	p := Position{column, rank}
	if !p.Valid() {
		return Position{}, ErrOutOfBounds
	}
	return p, nil
}

// ParsePosition parses a square in algebraic notation, e.g. "e2".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, ErrOutOfBounds
	}
	return Position{Column: int(s[0] - 'a'), Rank: 7 - int(s[1]-'1')}, nil
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Column >= 0 && p.Column < 8 && p.Rank >= 0 && p.Rank < 8
}

// String formats the square using algebraic notation.
func (p Position) String() string {
	return string([]byte{byte('a' + p.Column), byte('1' + (7 - p.Rank))})
}

// offset returns the position shifted by (dc, dr) and whether it is still on
// the board.
func (p Position) offset(dc, dr int) (Position, bool) {
	q := Position{p.Column + dc, p.Rank + dr}
	return q, q.Valid()
}

// index returns the square's slot in the board grid (column + rank*8).
func index(p Position) int {
	return p.Column + p.Rank*8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
