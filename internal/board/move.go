package board

import "fmt"

// MoveFlag marks the special kinds of move.
type MoveFlag uint8

const (
	FlagNormal MoveFlag = iota
	FlagEnPassant
	FlagCastleKingside
	FlagCastleQueenside
	FlagDoublePush
)

// String returns a short name for the flag.
func (f MoveFlag) String() string {
	switch f {
	case FlagNormal:
		return "normal"
	case FlagEnPassant:
		return "en-passant"
	case FlagCastleKingside:
		return "O-O"
	case FlagCastleQueenside:
		return "O-O-O"
	case FlagDoublePush:
		return "double-push"
	default:
		return "unknown"
	}
}

// Move encodes a chess move in 20 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: promotion piece (NoPiece when not promoting)
// bits 16-18: flag
// bit  19:    capture
type Move uint32

const captureBit Move = 1 << 19

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move with the given flag and no promotion.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(NoPiece)<<12 | Move(flag)<<16
}

// NewPromotion creates a pawn move that promotes to the given piece.
func NewPromotion(from, to Square, promo Piece) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12
}

// WithCapture returns the move tagged as a capture.
func (m Move) WithCapture() Move {
	return m | captureBit
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece, or NoPiece.
func (m Move) Promotion() Piece {
	return Piece((m >> 12) & 0xF)
}

// Flag returns the move flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> 16) & 0x7)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion() < NoPiece
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	f := m.Flag()
	return f == FlagCastleKingside || f == FlagCastleQueenside
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCapture returns true if this move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m&captureBit != 0
}

// String returns the coordinate format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Type().Char() + ('a' - 'A'))
	}
	return s
}

// ParseMove parses a coordinate-format move string ("e2e4", "e7e8q") and
// resolves it against the legal moves of the position.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	return p.ResolveMove(from, to, promo)
}

// MoveList is a growable list of moves.
type MoveList []Move

// Contains returns true if the list contains the move.
func (ml MoveList) Contains(m Move) bool {
	for _, x := range ml {
		if x == m {
			return true
		}
	}
	return false
}

// Destinations returns the union of the destination squares.
func (ml MoveList) Destinations() Bitboard {
	var bb Bitboard
	for _, m := range ml {
		bb = bb.Set(m.To())
	}
	return bb
}

// From returns the moves that start on sq.
func (ml MoveList) From(sq Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.From() == sq {
			out = append(out, m)
		}
	}
	return out
}
