package chess

// CastleSide distinguishes the two castling moves.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

// Result is the outcome of a game.
type Result uint8

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the result in match notation.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Move records one applied move with everything needed to undo it exactly:
// the captured piece (if any), the special-move classification and the
// mover's castling flag before the move.
type Move struct {
	Piece     *Piece
	From      Position
	To        Position
	Captured  *Piece
	EnPassant bool
	Castle    CastleSide
	Promotion bool

	hadMoved bool
}

// String formats the move in coordinate notation, e.g. "e2e4".
func (m *Move) String() string {
	return m.From.String() + m.To.String()
}
