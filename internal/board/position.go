package board

import (
	"fmt"
	"strings"
)

// BitboardSet holds one bitboard per Piece, indexed by the Piece ordinal.
type BitboardSet [12]Bitboard

// Occupied returns the union of all 12 boards.
func (b *BitboardSet) Occupied() Bitboard {
	var occ Bitboard
	for _, bb := range b {
		occ |= bb
	}
	return occ
}

// ByColor returns every square held by a piece of color c.
func (b *BitboardSet) ByColor(c Color) Bitboard {
	var occ Bitboard
	for pt := King; pt <= Pawn; pt++ {
		occ |= b[NewPiece(pt, c)]
	}
	return occ
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *BitboardSet) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if bb == 0 {
		return NoPiece
	}
	for p := WhiteKing; p < NoPiece; p++ {
		if b[p]&bb != 0 {
			return p
		}
	}
	return NoPiece
}

// KingSquare returns the square of the king of color c, or NoSquare.
func (b *BitboardSet) KingSquare(c Color) Square {
	return b[NewPiece(King, c)].LSB()
}

// Validate checks the set's structural invariants: boards are pairwise
// disjoint and each color has exactly one king.
func (b *BitboardSet) Validate() error {
	var seen Bitboard
	for p, bb := range b {
		if seen&bb != 0 {
			return fmt.Errorf("%s overlaps another piece on %s", Piece(p), (seen & bb).LSB())
		}
		seen |= bb
	}
	if n := b[WhiteKing].PopCount(); n != 1 {
		return fmt.Errorf("white must have exactly one king, found %d", n)
	}
	if n := b[BlackKing].PopCount(); n != 1 {
		return fmt.Errorf("black must have exactly one king, found %d", n)
	}
	return nil
}

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// castleRight returns the single right for a color and wing.
func castleRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case kingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// CanCastle returns true if the given side still holds the right to castle
// in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

// Position is a complete chess position: piece placement, side to move,
// castling rights and en-passant target. Positions are values; every
// operation that changes one returns a new Position.
type Position struct {
	Boards     BitboardSet
	SideToMove Color
	Castling   CastlingRights
	EnPassant  Square // square passed over by the last double push, NoSquare if none
}

// NewPosition creates the starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Boards.PieceAt(sq)
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Boards.Occupied()&SquareBB(sq) == 0
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.Boards.KingSquare(c)
}

// Validate checks that the position is structurally sound. An en-passant
// target must be empty with the double-pushed pawn just past it.
func (p *Position) Validate() error {
	if err := p.Boards.Validate(); err != nil {
		return err
	}
	if (p.Boards[WhitePawn]|p.Boards[BlackPawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	if p.EnPassant != NoSquare {
		if r := p.EnPassant.Rank(); (p.SideToMove == White && r != 5) || (p.SideToMove == Black && r != 2) {
			return fmt.Errorf("en passant target %s does not fit side to move %s", p.EnPassant, p.SideToMove)
		}
		if !p.IsEmpty(p.EnPassant) {
			return fmt.Errorf("en passant target %s is occupied", p.EnPassant)
		}
		push, _ := pawnDirections(p.SideToMove)
		if p.PieceAt(Step(p.EnPassant, -push)) != NewPiece(Pawn, p.SideToMove.Other()) {
			return fmt.Errorf("no %s pawn in front of en passant target %s", p.SideToMove.Other(), p.EnPassant)
		}
	}
	return nil
}

// String returns a visual representation of the position.
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	return sb.String()
}
