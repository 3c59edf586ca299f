package chess

// Zobrist hashing. Each board owns its own key table so independent games
// stay independent and tests are deterministic. The board hash is the XOR of
// every live piece's (type, color, square) key, XOR the side key when black
// is to move, and is maintained incrementally by every mutation.

const zobristSeed = 0x51C3A2B4D5E6F708

// prng is the xorshift64* generator used to fill the key table.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// zobristTable holds one key per (color, piece type, square) plus the
// side-to-move key. All 769 keys are pairwise distinct and nonzero.
type zobristTable struct {
	piece [2][6][64]uint64
	side  uint64
}

func newZobristTable(seed uint64) zobristTable {
	rng := newPRNG(seed)
	seen := make(map[uint64]struct{}, 769)
	next := func() uint64 {
		for {
			v := rng.next()
			if v == 0 {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			return v
		}
	}

	var z zobristTable
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 64; sq++ {
				z.piece[c][pt][sq] = next()
			}
		}
	}
	z.side = next()
	return z
}

// key returns the zobrist key for the piece on its current square.
func (z *zobristTable) key(p *Piece) uint64 {
	return z.piece[p.Color][p.Type][index(p.Pos)]
}
