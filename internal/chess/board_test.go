package chess

import (
	"errors"
	"testing"
)

// pos is a test helper for algebraic squares.
func pos(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return p
}

// play applies a sequence of coordinate moves, failing the test on any
// rejection.
func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, m := range moves {
		p := b.PieceAt(pos(t, m[:2]))
		if p == nil {
			t.Fatalf("no piece on %s", m[:2])
		}
		if _, err := b.MovePiece(p, pos(t, m[2:])); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}

func TestNewBoardSetup(t *testing.T) {
	b := NewBoard()

	if len(b.Pieces()) != 32 {
		t.Errorf("expected 32 pieces, got %d", len(b.Pieces()))
	}
	if b.SideToMove() != White {
		t.Error("white must move first")
	}
	if b.InCheck() {
		t.Error("initial position must not be check")
	}
	if b.Result() != NoResult {
		t.Errorf("initial position must be undecided, got %s", b.Result())
	}
	if b.Hash() == 0 {
		t.Error("initial hash must be nonzero")
	}
	if other := NewBoard(); other.Hash() != b.Hash() {
		t.Error("initial hash must be reproducible across boards")
	}

	// Spot-check the placement.
	if p := b.PieceAt(pos(t, "e1")); p == nil || p.Type != King || p.Color != White {
		t.Errorf("expected white king on e1, got %v", p)
	}
	if p := b.PieceAt(pos(t, "d8")); p == nil || p.Type != Queen || p.Color != Black {
		t.Errorf("expected black queen on d8, got %v", p)
	}
	if p := b.PieceAt(pos(t, "e4")); p != nil {
		t.Errorf("expected empty e4, got %v", p)
	}
}

func TestNewBoardFromPiecesValidation(t *testing.T) {
	kings := func() []*Piece {
		return []*Piece{
			NewPiece(King, White, Position{4, 7}),
			NewPiece(King, Black, Position{4, 0}),
		}
	}

	if _, err := NewBoardFromPieces(kings()); err != nil {
		t.Errorf("two-king placement must be valid: %v", err)
	}
	if _, err := NewBoardFromPieces(kings()[:1]); err == nil {
		t.Error("missing black king must be rejected")
	}
	if _, err := NewBoardFromPieces(append(kings(), NewPiece(King, White, Position{0, 7}))); err == nil {
		t.Error("second white king must be rejected")
	}
	if _, err := NewBoardFromPieces(append(kings(), NewPiece(Rook, White, Position{4, 7}))); err == nil {
		t.Error("double occupancy must be rejected")
	}
	if _, err := NewBoardFromPieces(append(kings(), &Piece{Type: Rook, Color: White, Pos: Position{8, 3}})); err == nil {
		t.Error("off-board piece must be rejected")
	}
}

func TestMoveRejections(t *testing.T) {
	b := NewBoard()

	blackPawn := b.PieceAt(pos(t, "e7"))
	if _, err := b.MovePiece(blackPawn, pos(t, "e5")); !errors.Is(err, ErrWrongTurn) {
		t.Errorf("black moving first: got %v, want ErrWrongTurn", err)
	}
	whitePawn := b.PieceAt(pos(t, "e2"))
	if _, err := b.MovePiece(whitePawn, pos(t, "e5")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("three-square pawn push: got %v, want ErrIllegalMove", err)
	}
	if _, err := b.MovePiece(whitePawn, Position{4, -1}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("off-board destination: got %v, want ErrOutOfBounds", err)
	}
	if _, err := b.MovePiece(nil, pos(t, "e4")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("nil piece: got %v, want ErrIllegalMove", err)
	}
	if _, err := NewPosition(8, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Error("NewPosition must reject column 8")
	}
	if b.Hash() != NewBoard().Hash() {
		t.Error("rejected moves must not mutate the board")
	}
}

// TestApplyRevertRoundTrip applies and reverts every legal move and checks
// the position, piece count and hash are restored exactly.
func TestApplyRevertRoundTrip(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "e7e5")

	hash := b.Hash()
	count := len(b.Pieces())
	previous := b.LastMove()

	for _, pm := range b.LegalMovesFor(b.SideToMove()) {
		for _, to := range pm.Moves {
			m := b.Apply(pm.Piece, to)
			b.Revert(m, previous)
			b.Refresh()

			if b.Hash() != hash {
				t.Fatalf("hash not restored after %s", m)
			}
			if len(b.Pieces()) != count {
				t.Fatalf("piece count not restored after %s", m)
			}
			if b.LastMove() != previous {
				t.Fatalf("last move not restored after %s", m)
			}
			if got := b.PieceAt(m.From); got != pm.Piece {
				t.Fatalf("piece not back on %s after %s", m.From, m)
			}
		}
	}
}

func TestEnPassant(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")

	pawn := b.PieceAt(pos(t, "e5"))
	m, err := b.MovePiece(pawn, pos(t, "d6"))
	if err != nil {
		t.Fatalf("en passant capture: %v", err)
	}
	if !m.EnPassant {
		t.Error("move must be classified en passant")
	}
	if m.Captured == nil || m.Captured.Type != Pawn || m.Captured.Color != Black {
		t.Errorf("expected black pawn captured, got %v", m.Captured)
	}
	if b.PieceAt(pos(t, "d5")) != nil {
		t.Error("captured pawn must leave d5")
	}
	if len(b.Pieces()) != 31 {
		t.Errorf("expected 31 pieces, got %d", len(b.Pieces()))
	}
}

func TestEnPassantExpires(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5", "g1f3", "a6a5")

	// The double advance is no longer the last move.
	pawn := b.PieceAt(pos(t, "e5"))
	if _, err := b.MovePiece(pawn, pos(t, "d6")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("stale en passant: got %v, want ErrIllegalMove", err)
	}
}

// TestPlainKingStepOntoCastleFile moves an unmoved king a single square onto
// file c and file g; neither is castling, and no corner rook may be touched.
func TestPlainKingStepOntoCastleFile(t *testing.T) {
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{3, 7}),
		NewPiece(King, Black, Position{4, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := b.MovePiece(b.King(White), pos(t, "c1"))
	if err != nil {
		t.Fatalf("d1c1: %v", err)
	}
	if m.Castle != NoCastle {
		t.Error("a one-square king step onto file c is not castling")
	}
	if p := b.PieceAt(pos(t, "c1")); p == nil || p.Type != King {
		t.Error("king must stand on c1")
	}

	b, err = NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{5, 7}),
		NewPiece(Rook, White, Position{7, 7}),
		NewPiece(King, Black, Position{0, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err = b.MovePiece(b.King(White), pos(t, "g1"))
	if err != nil {
		t.Fatalf("f1g1: %v", err)
	}
	if m.Castle != NoCastle {
		t.Error("a one-square king step onto file g is not castling")
	}
	if p := b.PieceAt(pos(t, "h1")); p == nil || p.Type != Rook {
		t.Error("the corner rook must not move on a plain king step")
	}
	if p := b.PieceAt(pos(t, "f1")); p != nil {
		t.Errorf("f1 must be empty after the king step, got %v", p)
	}
}

// TestEnPassantCannotExposeKing sets up king and rook on the pawns' rank:
// capturing en passant would remove both pawns and open the rook's line, so
// the capture must not be offered.
func TestEnPassantCannotExposeKing(t *testing.T) {
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{0, 3}),
		NewPiece(Pawn, White, Position{4, 3}),
		NewPiece(Pawn, White, Position{7, 6}),
		NewPiece(King, Black, Position{4, 0}),
		NewPiece(Rook, Black, Position{7, 3}),
		NewPiece(Pawn, Black, Position{3, 1}),
	})
	if err != nil {
		t.Fatal(err)
	}
	play(t, b, "h2h3", "d7d5")

	pawn := b.PieceAt(pos(t, "e5"))
	sameSquares(t, b.LegalMoves(pawn), "e6")
	if _, err := b.MovePiece(pawn, pos(t, "d6")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("exposing en passant: got %v, want ErrIllegalMove", err)
	}
}

// TestEnPassantCapturesCheckingPawn gives check with a two-square pawn
// advance; capturing that pawn en passant is a legal evasion even though the
// capture does not land on the checker's square.
func TestEnPassantCapturesCheckingPawn(t *testing.T) {
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{4, 4}),
		NewPiece(Pawn, White, Position{4, 3}),
		NewPiece(Pawn, White, Position{7, 6}),
		NewPiece(King, Black, Position{4, 0}),
		NewPiece(Pawn, Black, Position{3, 1}),
	})
	if err != nil {
		t.Fatal(err)
	}
	play(t, b, "h2h3", "d7d5")

	if !b.InCheck() {
		t.Fatal("the advanced pawn must give check")
	}
	pawn := b.PieceAt(pos(t, "e5"))
	sameSquares(t, b.LegalMoves(pawn), "d6")

	m, err := b.MovePiece(pawn, pos(t, "d6"))
	if err != nil {
		t.Fatalf("en passant evasion: %v", err)
	}
	if !m.EnPassant || m.Captured == nil {
		t.Error("the evasion must capture the checker en passant")
	}
	if b.InCheck() {
		t.Error("the check must be resolved")
	}
}

func TestKingsideCastling(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5")

	king := b.PieceAt(pos(t, "e1"))
	previous := b.LastMove()
	m, err := b.MovePiece(king, pos(t, "g1"))
	if err != nil {
		t.Fatalf("castling: %v", err)
	}
	if m.Castle != KingSide {
		t.Error("move must be classified kingside castling")
	}
	if p := b.PieceAt(pos(t, "g1")); p == nil || p.Type != King {
		t.Error("king must land on g1")
	}
	if p := b.PieceAt(pos(t, "f1")); p == nil || p.Type != Rook {
		t.Error("rook must land on f1")
	}
	if b.PieceAt(pos(t, "h1")) != nil {
		t.Error("h1 must be empty after castling")
	}

	// Undo restores both king and rook with their castling rights.
	b.Revert(m, previous)
	b.Refresh()
	if p := b.PieceAt(pos(t, "h1")); p == nil || p.Type != Rook || p.HasMoved {
		t.Error("revert must put an unmoved rook back on h1")
	}
	if p := b.PieceAt(pos(t, "e1")); p == nil || p.Type != King || p.HasMoved {
		t.Error("revert must put an unmoved king back on e1")
	}
}

func TestCastlingBlockedByAttack(t *testing.T) {
	// Black's rook covers the f-file, so the white king may not castle
	// through f1.
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{4, 7}),
		NewPiece(Rook, White, Position{7, 7}),
		NewPiece(King, Black, Position{4, 0}),
		NewPiece(Rook, Black, Position{5, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}

	moves := b.LegalMoves(b.King(White))
	for _, to := range moves {
		if to == (Position{6, 7}) {
			t.Error("castling through an attacked square must be illegal")
		}
	}
}

func TestCastlingClearPath(t *testing.T) {
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{4, 7}),
		NewPiece(Rook, White, Position{7, 7}),
		NewPiece(King, Black, Position{4, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, to := range b.LegalMoves(b.King(White)) {
		if to == (Position{6, 7}) {
			found = true
		}
	}
	if !found {
		t.Error("kingside castling must be legal with a clear, safe path")
	}
}

func TestPromotion(t *testing.T) {
	b, err := NewBoardFromPieces([]*Piece{
		NewPiece(King, White, Position{4, 7}),
		NewPiece(Pawn, White, Position{0, 1}),
		NewPiece(King, Black, Position{7, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}

	pawn := b.PieceAt(pos(t, "a7"))
	m, err := b.MovePiece(pawn, pos(t, "a8"))
	if err != nil {
		t.Fatalf("promotion move: %v", err)
	}
	if !m.Promotion {
		t.Error("move must be classified a promotion")
	}
	if b.PendingPromotion() != pawn {
		t.Error("promotion must stay pending until resolved")
	}
	if pawn.Type != Queen {
		t.Errorf("pending promotion defaults to queen, got %s", pawn.Type)
	}

	if err := b.Promote(King); !errors.Is(err, ErrInvalidPromotion) {
		t.Errorf("promote to king: got %v, want ErrInvalidPromotion", err)
	}
	if err := b.Promote(Knight); err != nil {
		t.Fatalf("promote to knight: %v", err)
	}
	if pawn.Type != Knight {
		t.Errorf("expected knight after choice, got %s", pawn.Type)
	}
	if b.PendingPromotion() != nil {
		t.Error("promotion must clear once resolved")
	}
	if err := b.Promote(Queen); !errors.Is(err, ErrNoPromotion) {
		t.Errorf("second promote: got %v, want ErrNoPromotion", err)
	}

	// Undo demotes the piece back to a pawn on its origin square.
	b.Revert(m, nil)
	b.Refresh()
	if pawn.Type != Pawn || pawn.Pos != (Position{0, 1}) {
		t.Errorf("revert must restore the pawn on a7, got %s", pawn)
	}
}
