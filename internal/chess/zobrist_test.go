package chess

import "testing"

func TestZobristKeysDistinct(t *testing.T) {
	z := newZobristTable(zobristSeed)

	seen := make(map[uint64]bool, 769)
	check := func(key uint64) {
		if key == 0 {
			t.Fatal("zero zobrist key")
		}
		if seen[key] {
			t.Fatalf("duplicate zobrist key %#x", key)
		}
		seen[key] = true
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 64; sq++ {
				check(z.piece[c][pt][sq])
			}
		}
	}
	check(z.side)

	if len(seen) != 769 {
		t.Errorf("expected 769 keys, got %d", len(seen))
	}
}

func TestHashChangesPerMove(t *testing.T) {
	b := NewBoard()
	initial := b.Hash()

	play(t, b, "e2e4")
	afterE4 := b.Hash()
	if afterE4 == initial {
		t.Error("hash must change after a move")
	}

	play(t, b, "e7e5")
	if h := b.Hash(); h == initial || h == afterE4 {
		t.Error("hash must change after every move")
	}
}

// TestTranspositionIdentity shuffles the knights out and back; the restored
// placement with the same side to move must hash identically.
func TestTranspositionIdentity(t *testing.T) {
	b := NewBoard()
	initial := b.Hash()

	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	if b.Hash() != initial {
		t.Errorf("restored position hashes %#x, want %#x", b.Hash(), initial)
	}
}

// TestTranspositionAcrossMoveOrders reaches one position through two move
// orders; the hashes must agree so the search cache can merge them.
func TestTranspositionAcrossMoveOrders(t *testing.T) {
	a := NewBoard()
	play(t, a, "e2e4", "d7d5", "d2d4")

	b := NewBoard()
	play(t, b, "d2d4", "d7d5", "e2e4")

	if a.Hash() != b.Hash() {
		t.Errorf("transposed positions hash %#x vs %#x", a.Hash(), b.Hash())
	}
}
