package chess

import "golang.org/x/exp/slices"

// Defense-mode analysis. After every applied move the board derives, for the
// color that just moved, the set of attacked squares, the counter-check
// lines (squares that block or capture a single checker) and the pinned
// lines. The next side's legality filters consume these caches.
//
// Defense generation reports every square a piece threatens, regardless of
// turn order or of exposing its own king, and includes squares holding
// friendly pieces so a king may never capture a defended piece.

// refreshAnalysis rebuilds the caches for the given color.
func (b *Board) refreshAnalysis(c Color) {
	b.attacked = [64]bool{}
	b.counterChecks = nil
	b.pinnedLines = nil
	b.pinnedSquares = [64]bool{}

	for _, p := range b.pieces {
		if p.Color != c {
			continue
		}
		switch p.Type {
		case Pawn:
			b.pawnThreats(p)
		case Knight:
			b.stepThreats(p, knightOffsets[:])
		case King:
			b.stepThreats(p, kingOffsets[:])
		case Bishop:
			b.rayThreats(p, bishopDirs[:])
		case Rook:
			b.rayThreats(p, rookDirs[:])
		case Queen:
			b.rayThreats(p, rookDirs[:])
			b.rayThreats(p, bishopDirs[:])
		}
	}
}

// pawnThreats marks the two capture diagonals. The forward squares are not
// threats.
func (b *Board) pawnThreats(p *Piece) {
	dir := pawnDir(p.Color)
	for _, dc := range [2]int{-1, 1} {
		to, ok := p.Pos.offset(dc, dir)
		if !ok {
			continue
		}
		b.attacked[index(to)] = true
		if q := b.grid[index(to)]; q != nil && q.Type == King && q.Color != p.Color {
			b.counterChecks = append(b.counterChecks, []Position{p.Pos})
		}
	}
}

// stepThreats marks fixed-offset threats for knights and kings. A checking
// knight can only be resolved by capturing it, so its counter line is its
// own square.
func (b *Board) stepThreats(p *Piece, offsets [][2]int) {
	for _, o := range offsets {
		to, ok := p.Pos.offset(o[0], o[1])
		if !ok {
			continue
		}
		b.attacked[index(to)] = true
		if q := b.grid[index(to)]; q != nil && q.Type == King && q.Color != p.Color {
			b.counterChecks = append(b.counterChecks, []Position{p.Pos})
		}
	}
}

// rayThreats walks each slider ray, marking threatened squares and
// collecting counter-check and pin lines. A line always starts with the
// slider's own square, so capturing the slider resolves it.
func (b *Board) rayThreats(p *Piece, dirs [][2]int) {
	for _, d := range dirs {
		line := []Position{p.Pos}
		for to, ok := p.Pos.offset(d[0], d[1]); ok; to, ok = to.offset(d[0], d[1]) {
			q := b.grid[index(to)]
			b.attacked[index(to)] = true
			if q == nil {
				line = append(line, to)
				continue
			}
			if q.Color == p.Color {
				break
			}
			if q.Type == King {
				b.counterChecks = append(b.counterChecks, slices.Clone(line))
				// The king does not shadow its own retreat: keep marking
				// the squares behind it so it cannot step back along the
				// checking ray.
				for past, pok := to.offset(d[0], d[1]); pok; past, pok = past.offset(d[0], d[1]) {
					if b.grid[index(past)] != nil {
						break
					}
					b.attacked[index(past)] = true
				}
			} else {
				b.walkPin(p, q, to, d, line)
			}
			break
		}
	}
}

// walkPin continues a ray past a single enemy piece. If the ray reaches that
// piece's king with nothing else in between, the piece is pinned to the line
// from the slider up to (but excluding) the king.
func (b *Board) walkPin(p, shield *Piece, at Position, d [2]int, line []Position) {
	line = append(line, at)
	for to, ok := at.offset(d[0], d[1]); ok; to, ok = to.offset(d[0], d[1]) {
		q := b.grid[index(to)]
		if q == nil {
			line = append(line, to)
			continue
		}
		if q.Type == King && q.Color == shield.Color {
			b.pinnedLines = append(b.pinnedLines, slices.Clone(line))
			b.pinnedSquares[index(shield.Pos)] = true
		}
		return
	}
}
