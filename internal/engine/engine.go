package engine

import "gridchess/internal/chess"

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyDepth maps difficulty to a fixed search depth. Depth is the only
// resource limit; there is no time management.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ChooseMove searches the position to the given depth and returns the best
// move for the side to move, or nil in a terminal position. The board is
// mutated during exploration but every move is reverted before returning;
// its caches are refreshed on the way out.
func ChooseMove(b *chess.Board, depth int) *chess.Move {
	if depth <= 0 || b.Result() != chess.NoResult {
		return nil
	}
	cache := make(map[ttKey]int)
	_, move := minimax(b, cache, b.SideToMove(), depth, -Infinity, Infinity)
	b.Refresh()
	return move
}

// ApplyBestMove searches and applies the best move, resolving a resulting
// promotion to a queen. Returns the applied move, or nil when no move
// exists.
func ApplyBestMove(b *chess.Board, depth int) *chess.Move {
	move := ChooseMove(b, depth)
	if move == nil {
		return nil
	}
	b.Apply(move.Piece, move.To)
	if b.PendingPromotion() != nil {
		b.Promote(chess.Queen)
	}
	return move
}
