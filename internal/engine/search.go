// Package engine selects moves with a depth-limited minimax search over a
// live board, pruned with alpha-beta and memoized per search invocation.
package engine

import "gridchess/internal/chess"

// ttKey keys the transposition cache by position hash and remaining depth,
// so a shallow evaluation is never returned for a deeper query.
type ttKey struct {
	hash  uint64
	depth int
}

// minimax explores the board depth-first, applying each legal move and
// reverting it before trying the sibling; no board copies are allocated.
// White maximizes. The returned move is the best child of this node, or the
// board's last move at a leaf.
func minimax(b *chess.Board, cache map[ttKey]int, c chess.Color, depth, alpha, beta int) (int, *chess.Move) {
	key := ttKey{b.Hash(), depth}
	if score, ok := cache[key]; ok {
		return score, b.LastMove()
	}
	if depth == 0 || b.Result() != chess.NoResult {
		return Evaluate(b), b.LastMove()
	}

	maximizing := c == chess.White
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	var bestMove *chess.Move
	previous := b.LastMove()

search:
	for _, pm := range b.LegalMovesFor(c) {
		for _, to := range pm.Moves {
			m := b.Apply(pm.Piece, to)
			score, _ := minimax(b, cache, c.Other(), depth-1, alpha, beta)
			b.Revert(m, previous)

			if maximizing {
				if score > best {
					best, bestMove = score, m
				}
				if best > alpha {
					alpha = best
				}
			} else {
				if score < best {
					best, bestMove = score, m
				}
				if best < beta {
					beta = best
				}
			}
			if alpha >= beta {
				break search
			}
		}
	}

	if bestMove == nil {
		return Evaluate(b), nil
	}
	cache[key] = best
	return best, bestMove
}
