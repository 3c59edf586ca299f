package chess

// Game termination. Evaluated for the side now to move after every applied
// move and after every promotion choice: no legal moves means checkmate or
// stalemate, and certain material combinations can never force mate.

// evaluateResult recomputes the game result for the current position.
func (b *Board) evaluateResult() {
	b.result = NoResult
	c := b.SideToMove()
	if !b.hasLegalMove(c) {
		if b.underCheck {
			if c == White {
				b.result = BlackWins
			} else {
				b.result = WhiteWins
			}
		} else {
			b.result = Draw
		}
		return
	}
	if b.insufficientMaterial() {
		b.result = Draw
	}
}

func (b *Board) hasLegalMove(c Color) bool {
	for _, p := range b.pieces {
		if p.Color == c && len(b.legalMoves(p)) > 0 {
			return true
		}
	}
	return false
}

// insufficientMaterial reports the dead draws: king vs king, king and one
// minor piece vs king, and bishop vs bishop on same-colored diagonals.
func (b *Board) insufficientMaterial() bool {
	var minors []*Piece
	for _, p := range b.pieces {
		switch p.Type {
		case King:
		case Knight, Bishop:
			minors = append(minors, p)
		default:
			return false
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		m, n := minors[0], minors[1]
		return m.Type == Bishop && n.Type == Bishop &&
			m.Color != n.Color && m.Diagonal == n.Diagonal
	}
	return false
}
