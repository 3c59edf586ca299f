package chess

import "golang.org/x/exp/slices"

// Movement offsets shared by candidate and defense generation.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookDirs      = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// pawnDir returns the rank direction a pawn of the given color advances in.
// White pawns start on rank 6 and move toward rank 0.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// PieceMoves pairs a piece with its legal destinations.
type PieceMoves struct {
	Piece *Piece
	Moves []Position
}

// LegalMoves returns the legal destinations for the piece. Only the side to
// move may generate moves; any other piece, and every piece once the game is
// decided, gets an empty set.
func (b *Board) LegalMoves(p *Piece) []Position {
	if b.result != NoResult || p == nil || p.Color != b.SideToMove() {
		return nil
	}
	return b.legalMoves(p)
}

// LegalMovesFor enumerates every legal (piece, destination) pair for the
// color, in stable piece-list order. Empty unless it is that color's turn.
func (b *Board) LegalMovesFor(c Color) []PieceMoves {
	if b.result != NoResult || c != b.SideToMove() {
		return nil
	}
	var all []PieceMoves
	for _, p := range b.pieces {
		if p.Color != c {
			continue
		}
		if moves := b.legalMoves(p); len(moves) > 0 {
			all = append(all, PieceMoves{Piece: p, Moves: moves})
		}
	}
	return all
}

// legalMoves applies the check-evasion and pin filters on top of the raw
// candidate destinations. The king filters itself during generation: it
// never enters an enemy-attacked square, which also covers every check.
func (b *Board) legalMoves(p *Piece) []Position {
	moves := b.candidateMoves(p)
	if p.Type == King {
		return moves
	}
	if b.underCheck {
		// With two checkers no block or capture resolves both; only the
		// king may move.
		if len(b.counterChecks) != 1 {
			return nil
		}
		moves = b.restrictToCheckLine(p, moves)
	}
	if b.pinnedSquares[index(p.Pos)] {
		for _, line := range b.pinnedLines {
			if slices.Contains(line, p.Pos) {
				moves = restrictTo(moves, line)
				break
			}
		}
	}
	return moves
}

// restrictToCheckLine keeps the destinations that block or capture the
// single checker. An en passant capture removes the checker without landing
// on its square, so it is matched against the checker's square instead.
func (b *Board) restrictToCheckLine(p *Piece, moves []Position) []Position {
	line := b.counterChecks[0]
	kept := moves[:0]
	for _, to := range moves {
		if slices.Contains(line, to) {
			kept = append(kept, to)
			continue
		}
		if p.Type == Pawn && to.Column != p.Pos.Column && b.grid[index(to)] == nil &&
			(Position{to.Column, p.Pos.Rank}) == line[0] {
			kept = append(kept, to)
		}
	}
	return kept
}

// restrictTo keeps only the destinations that lie on the given line.
func restrictTo(moves, line []Position) []Position {
	kept := moves[:0]
	for _, m := range moves {
		if slices.Contains(line, m) {
			kept = append(kept, m)
		}
	}
	return kept
}

// candidateMoves produces the raw destinations for the piece, before the
// check and pin filters.
func (b *Board) candidateMoves(p *Piece) []Position {
	switch p.Type {
	case Pawn:
		return b.pawnMoves(p)
	case Knight:
		return b.stepMoves(p, knightOffsets[:])
	case Bishop:
		return b.rayMoves(p, bishopDirs[:])
	case Rook:
		return b.rayMoves(p, rookDirs[:])
	case Queen:
		return append(b.rayMoves(p, rookDirs[:]), b.rayMoves(p, bishopDirs[:])...)
	case King:
		return b.kingMoves(p)
	}
	return nil
}

func (b *Board) pawnMoves(p *Piece) []Position {
	var moves []Position
	dir := pawnDir(p.Color)

	if one, ok := p.Pos.offset(0, dir); ok && b.grid[index(one)] == nil {
		moves = append(moves, one)
		if two, ok := p.Pos.offset(0, 2*dir); ok && p.Pos.Rank == pawnStartRank(p.Color) && b.grid[index(two)] == nil {
			moves = append(moves, two)
		}
	}
	for _, dc := range [2]int{-1, 1} {
		to, ok := p.Pos.offset(dc, dir)
		if !ok {
			continue
		}
		if q := b.grid[index(to)]; q != nil {
			if q.Color != p.Color {
				moves = append(moves, to)
			}
		} else if b.enPassantTarget(p, to) && !b.enPassantExposesKing(p, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// enPassantTarget reports whether the pawn may capture en passant onto the
// given square: the immediately preceding move must have been a two-square
// advance by an enemy pawn landing beside this pawn.
func (b *Board) enPassantTarget(p *Piece, to Position) bool {
	lm := b.lastMove
	if lm == nil || lm.Piece.Type != Pawn || lm.Piece.Color == p.Color {
		return false
	}
	if abs(lm.From.Rank-lm.To.Rank) != 2 {
		return false
	}
	return lm.To.Column == to.Column && lm.To.Rank == p.Pos.Rank
}

// enPassantExposesKing simulates the capture on the grid and reports whether
// it uncovers a slider attack on the mover's king. En passant is the one
// move that removes two pieces from a rank, which the pin walk (a single
// shield per ray) cannot see.
func (b *Board) enPassantExposesKing(p *Piece, to Position) bool {
	victim := b.grid[index(Position{to.Column, p.Pos.Rank})]
	from := p.Pos
	b.grid[index(from)] = nil
	b.grid[index(victim.Pos)] = nil
	b.grid[index(to)] = p
	exposed := b.kingAttackedBySlider(p.Color)
	b.grid[index(to)] = nil
	b.grid[index(victim.Pos)] = victim
	b.grid[index(from)] = p
	return exposed
}

// kingAttackedBySlider scans outward from the king of the given color for an
// enemy rook, bishop or queen with a clear line.
func (b *Board) kingAttackedBySlider(c Color) bool {
	king := b.kings[c]
	for _, d := range rookDirs {
		if q := b.firstPieceOnRay(king.Pos, d); q != nil && q.Color != c && (q.Type == Rook || q.Type == Queen) {
			return true
		}
	}
	for _, d := range bishopDirs {
		if q := b.firstPieceOnRay(king.Pos, d); q != nil && q.Color != c && (q.Type == Bishop || q.Type == Queen) {
			return true
		}
	}
	return false
}

func (b *Board) firstPieceOnRay(from Position, d [2]int) *Piece {
	for to, ok := from.offset(d[0], d[1]); ok; to, ok = to.offset(d[0], d[1]) {
		if q := b.grid[index(to)]; q != nil {
			return q
		}
	}
	return nil
}

func (b *Board) stepMoves(p *Piece, offsets [][2]int) []Position {
	var moves []Position
	for _, o := range offsets {
		to, ok := p.Pos.offset(o[0], o[1])
		if !ok {
			continue
		}
		if q := b.grid[index(to)]; q == nil || q.Color != p.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

func (b *Board) rayMoves(p *Piece, dirs [][2]int) []Position {
	var moves []Position
	for _, d := range dirs {
		for to, ok := p.Pos.offset(d[0], d[1]); ok; to, ok = to.offset(d[0], d[1]) {
			q := b.grid[index(to)]
			if q == nil {
				moves = append(moves, to)
				continue
			}
			if q.Color != p.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

func (b *Board) kingMoves(p *Piece) []Position {
	var moves []Position
	for _, o := range kingOffsets {
		to, ok := p.Pos.offset(o[0], o[1])
		if !ok {
			continue
		}
		if q := b.grid[index(to)]; q != nil && q.Color == p.Color {
			continue
		}
		if b.attacked[index(to)] {
			continue
		}
		moves = append(moves, to)
	}

	if !p.HasMoved && !b.underCheck {
		if b.castleClear(p, 7, []int{5, 6}, []int{5, 6}) {
			moves = append(moves, Position{6, p.Pos.Rank})
		}
		if b.castleClear(p, 0, []int{1, 2, 3}, []int{2, 3}) {
			moves = append(moves, Position{2, p.Pos.Rank})
		}
	}
	return moves
}

// castleClear checks one castling side: an unmoved rook in the corner, the
// empty columns between king and rook, and no enemy attack on any column the
// king transits (the destination included).
func (b *Board) castleClear(king *Piece, corner int, empty, safe []int) bool {
	rank := king.Pos.Rank
	rook := b.grid[index(Position{corner, rank})]
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}
	for _, col := range empty {
		if b.grid[index(Position{col, rank})] != nil {
			return false
		}
	}
	for _, col := range safe {
		if b.attacked[index(Position{col, rank})] {
			return false
		}
	}
	return true
}
