package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Board owns the full game state: the 8x8 grid, the live piece list, the
// last applied move, the attack/pin caches for the side that just moved, the
// game result and the zobrist hash. It is the sole mutator of game state and
// tolerates exactly one in-flight search exploration at a time; it is not
// safe for concurrent use.
type Board struct {
	grid   [64]*Piece
	pieces []*Piece
	kings  [2]*Piece

	lastMove *Move

	// Caches describing the side that just moved. They are recomputed by
	// every Apply and are stale after a Revert until the next Apply.
	attacked      [64]bool
	counterChecks [][]Position
	pinnedLines   [][]Position
	pinnedSquares [64]bool

	// underCheck reports whether the side to move is in check.
	underCheck bool

	result    Result
	promotion *Piece

	zobrist zobristTable
	hash    uint64
}

// NewBoard creates a board with the standard 32-piece starting placement.
func NewBoard() *Board {
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make([]*Piece, 0, 32)
	for col, pt := range back {
		pieces = append(pieces, NewPiece(pt, Black, Position{col, 0}))
		pieces = append(pieces, NewPiece(pt, White, Position{col, 7}))
	}
	for col := 0; col < 8; col++ {
		pieces = append(pieces, NewPiece(Pawn, Black, Position{col, 1}))
		pieces = append(pieces, NewPiece(Pawn, White, Position{col, 6}))
	}
	b, err := NewBoardFromPieces(pieces)
	if err != nil {
		panic(err) // the standard placement is always valid
	}
	return b
}

// NewBoardFromPieces creates a board from an arbitrary placement, with white
// to move. The placement must keep every piece on the board, one piece per
// square and exactly one king per color.
func NewBoardFromPieces(pieces []*Piece) (*Board, error) {
	b := &Board{zobrist: newZobristTable(zobristSeed)}
	for _, p := range pieces {
		if !p.Pos.Valid() {
			return nil, fmt.Errorf("piece %s %s outside the board", p.Color, p.Type)
		}
		if b.grid[index(p.Pos)] != nil {
			return nil, fmt.Errorf("square %s occupied twice", p.Pos)
		}
		if p.Type == King {
			if b.kings[p.Color] != nil {
				return nil, fmt.Errorf("%s must have exactly one king", p.Color)
			}
			b.kings[p.Color] = p
		}
		b.place(p)
		b.pieces = append(b.pieces, p)
	}
	if b.kings[White] == nil || b.kings[Black] == nil {
		return nil, fmt.Errorf("both colors must have exactly one king")
	}
	b.Refresh()
	b.evaluateResult()
	return b, nil
}

// PieceAt returns the piece on the given square, or nil if it is empty.
func (b *Board) PieceAt(pos Position) *Piece {
	if !pos.Valid() {
		return nil
	}
	return b.grid[index(pos)]
}

// Pieces returns the live pieces. The slice is shared with the board and
// must not be modified.
func (b *Board) Pieces() []*Piece {
	return b.pieces
}

// King returns the king of the given color.
func (b *Board) King(c Color) *Piece {
	return b.kings[c]
}

// LastMove returns the most recently applied move, or nil at game start.
func (b *Board) LastMove() *Move {
	return b.lastMove
}

// SideToMove returns the color whose turn it is. White moves first.
func (b *Board) SideToMove() Color {
	if b.lastMove == nil {
		return White
	}
	return b.lastMove.Piece.Color.Other()
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.underCheck
}

// Result returns the game outcome, or NoResult while the game is running.
func (b *Board) Result() Result {
	return b.result
}

// Hash returns the incremental zobrist hash of the position. It is valid
// only for the lifetime of this board.
func (b *Board) Hash() uint64 {
	return b.hash
}

// PendingPromotion returns the pawn awaiting a promotion choice, or nil.
// The piece already stands on the back rank as a queen; Promote replaces
// the default choice.
func (b *Board) PendingPromotion() *Piece {
	return b.promotion
}

// place puts the piece on the grid at its stored position and folds its key
// into the hash.
func (b *Board) place(p *Piece) {
	b.grid[index(p.Pos)] = p
	b.hash ^= b.zobrist.key(p)
}

// lift removes the piece from the grid and folds its key out of the hash.
func (b *Board) lift(p *Piece) {
	b.grid[index(p.Pos)] = nil
	b.hash ^= b.zobrist.key(p)
}

// capture removes the piece from the grid and the live list.
func (b *Board) capture(p *Piece) {
	b.lift(p)
	for i, q := range b.pieces {
		if q == p {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			break
		}
	}
}

// transform changes the piece's type in place, keeping the hash in sync.
func (b *Board) transform(p *Piece, pt PieceType) {
	b.hash ^= b.zobrist.key(p)
	p.Type = pt
	if pt == Bishop {
		p.Diagonal = (p.Pos.Column + p.Pos.Rank) % 2
	}
	b.hash ^= b.zobrist.key(p)
}

// MovePiece is the validating entry point for user-driven moves. It either
// fully applies the move or rejects it with a sentinel error before any
// mutation.
func (b *Board) MovePiece(p *Piece, to Position) (*Move, error) {
	if b.result != NoResult {
		return nil, ErrGameOver
	}
	if p == nil || b.grid[index(p.Pos)] != p {
		return nil, ErrIllegalMove
	}
	if !to.Valid() {
		return nil, ErrOutOfBounds
	}
	if p.Color != b.SideToMove() {
		return nil, ErrWrongTurn
	}
	if !slices.Contains(b.LegalMoves(p), to) {
		return nil, ErrIllegalMove
	}
	return b.Apply(p, to), nil
}

// Apply classifies and applies a move without validating it, returning an
// undo-complete record. Callers must pass a destination from the legal set;
// MovePiece does so for user input and the search does so by construction.
// Promotions transform the pawn to a queen immediately and leave it pending
// so the caller may still choose another piece through Promote.
func (b *Board) Apply(p *Piece, to Position) *Move {
	b.promotion = nil
	m := &Move{Piece: p, From: p.Pos, To: to, hadMoved: p.HasMoved}

	switch {
	case p.Type == Pawn && to.Column != p.Pos.Column && b.grid[index(to)] == nil:
		m.EnPassant = true
		m.Captured = b.grid[index(Position{to.Column, p.Pos.Rank})]
		b.capture(m.Captured)
	// Only a two-file king step is castling; an unmoved king stepping one
	// square onto file c or g is a normal move.
	case p.Type == King && !p.HasMoved && abs(to.Column-p.Pos.Column) == 2 && (to.Column == 2 || to.Column == 6):
		if to.Column == 2 {
			m.Castle = QueenSide
		} else {
			m.Castle = KingSide
		}
	default:
		if victim := b.grid[index(to)]; victim != nil {
			m.Captured = victim
			b.capture(victim)
		}
	}
	if p.Type == Pawn && (to.Rank == 0 || to.Rank == 7) {
		m.Promotion = true
	}

	b.lift(p)
	p.Pos = to
	b.place(p)
	if p.Type == Rook || p.Type == King {
		p.HasMoved = true
	}

	if m.Castle != NoCastle {
		corner, target := 7, 5
		if m.Castle == QueenSide {
			corner, target = 0, 3
		}
		rook := b.grid[index(Position{corner, to.Rank})]
		b.lift(rook)
		rook.Pos = Position{target, to.Rank}
		b.place(rook)
		rook.HasMoved = true
	}

	if m.Promotion {
		b.transform(p, Queen)
		b.promotion = p
	}

	b.hash ^= b.zobrist.side
	b.lastMove = m

	b.refreshAnalysis(p.Color)
	b.underCheck = b.attacked[index(b.kings[p.Color.Other()].Pos)]
	b.evaluateResult()
	return m
}

// Revert undoes a move, restoring the previous last-move record. It must be
// called immediately after the Apply it undoes; the attack and pin caches
// are not recomputed and stay stale until the next Apply or Refresh. This is
// the search's explore/undo path.
func (b *Board) Revert(m *Move, previous *Move) {
	if b.promotion == m.Piece {
		b.promotion = nil
	}
	if m.Promotion {
		b.transform(m.Piece, Pawn)
	}
	if m.Castle != NoCastle {
		corner, target := 7, 5
		if m.Castle == QueenSide {
			corner, target = 0, 3
		}
		rook := b.grid[index(Position{target, m.To.Rank})]
		b.lift(rook)
		rook.Pos = Position{corner, m.To.Rank}
		b.place(rook)
		rook.HasMoved = false
	}

	b.lift(m.Piece)
	m.Piece.Pos = m.From
	b.place(m.Piece)
	m.Piece.HasMoved = m.hadMoved

	if m.Captured != nil {
		b.pieces = append(b.pieces, m.Captured)
		b.place(m.Captured)
	}

	b.hash ^= b.zobrist.side
	b.lastMove = previous
	b.result = NoResult
}

// Promote replaces the default queen of a pending promotion with the chosen
// piece and re-evaluates checks and the game result. Only knight, bishop,
// rook and queen are accepted.
func (b *Board) Promote(pt PieceType) error {
	if b.promotion == nil {
		return ErrNoPromotion
	}
	if pt != Knight && pt != Bishop && pt != Rook && pt != Queen {
		return ErrInvalidPromotion
	}
	p := b.promotion
	b.transform(p, pt)
	b.promotion = nil

	b.refreshAnalysis(p.Color)
	b.underCheck = b.attacked[index(b.kings[p.Color.Other()].Pos)]
	b.evaluateResult()
	return nil
}

// Refresh recomputes the attack, pin and check caches from the current
// placement. The search leaves the caches stale after its final revert; the
// search entry points call this before handing the board back.
func (b *Board) Refresh() {
	b.refreshAnalysis(b.SideToMove().Other())
	b.underCheck = b.attacked[index(b.kings[b.SideToMove()].Pos)]
}

// String renders the board with rank and file labels, rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d  ", 8-rank)
		for col := 0; col < 8; col++ {
			if p := b.grid[col+rank*8]; p != nil {
				sb.WriteByte(p.char())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.SideToMove())
	return sb.String()
}
