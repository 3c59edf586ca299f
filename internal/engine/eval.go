package engine

import "gridchess/internal/chess"

// Evaluation constants. Scores are in pawns from white's point of view; a
// decided game dominates any material balance.
const (
	WinScore = 104
	Infinity = 1 << 16
)

// Evaluate returns the static evaluation of the position: the win score for
// a decided game, zero for a draw, otherwise the material sum over all live
// pieces (positive for white).
func Evaluate(b *chess.Board) int {
	switch b.Result() {
	case chess.WhiteWins:
		return WinScore
	case chess.BlackWins:
		return -WinScore
	case chess.Draw:
		return 0
	}

	score := 0
	for _, p := range b.Pieces() {
		if p.Color == chess.White {
			score += p.Value()
		} else {
			score -= p.Value()
		}
	}
	return score
}
