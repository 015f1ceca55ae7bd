package board

import "fmt"

// homeCornerRights maps each rook home square to the right it guards.
var homeCornerRights = map[Square]CastlingRights{
	A1: WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A8: BlackQueenSideCastle,
	H8: BlackKingSideCastle,
}

// Apply plays m and returns the resulting position together with the piece
// it captured (NoPiece if none). The receiver is left untouched. Apply does
// not check legality; use IsLegal or History.Push for that.
func (p Position) Apply(m Move) (Position, Piece, error) {
	us := p.SideToMove
	from, to := m.From(), m.To()

	mover := p.PieceAt(from)
	if mover == NoPiece {
		return p, NoPiece, fmt.Errorf("apply %s: no piece on %s", m, from)
	}
	if mover.Color() != us {
		return p, NoPiece, fmt.Errorf("apply %s: %s to move, found %s piece", m, us, mover.Color())
	}
	if m.IsPromotion() && (mover.Type() != Pawn || m.Promotion().Color() != us) {
		return p, NoPiece, fmt.Errorf("apply %s: invalid promotion", m)
	}

	v := NewVBoard(&p)
	captured := v.ApplyMove(m, us)

	next := Position{
		Boards:     v.Boards,
		SideToMove: us.Other(),
		Castling:   p.Castling,
		EnPassant:  NoSquare,
	}

	if mover.Type() == King {
		next.Castling &^= castleRight(us, true) | castleRight(us, false)
	}
	// A rook leaving its corner, or anything captured there.
	next.Castling &^= homeCornerRights[from] | homeCornerRights[to]

	if m.Flag() == FlagDoublePush {
		next.EnPassant = Square((int(from) + int(to)) / 2)
	}

	return next, captured, nil
}
