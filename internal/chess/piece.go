package chess

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// PieceValue is the material value per piece type, in pawns. The king carries
// no material value; decided games are scored separately.
var PieceValue = [6]int{1, 3, 3, 5, 9, 0}

// Piece is a live chessman on the board. Rooks and kings track HasMoved for
// castling rights. Bishops remember the color parity of their starting
// diagonal, which the draw detector compares for opposite bishops.
type Piece struct {
	Type     PieceType
	Color    Color
	Pos      Position
	HasMoved bool
	Diagonal int
}

// NewPiece creates a piece of the given type and color on the given square.
func NewPiece(pt PieceType, c Color, pos Position) *Piece {
	p := &Piece{Type: pt, Color: c, Pos: pos}
	if pt == Bishop {
		p.Diagonal = (pos.Column + pos.Rank) % 2
	}
	return p
}

// Value returns the material value of the piece in pawns.
func (p *Piece) Value() int {
	return PieceValue[p.Type]
}

// char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p *Piece) char() byte {
	chars := "PNBRQKpnbrqk"
	return chars[int(p.Type)+int(p.Color)*6]
}

// String describes the piece with its square, e.g. "White Rook a1".
func (p *Piece) String() string {
	return p.Color.String() + " " + p.Type.String() + " " + p.Pos.String()
}
