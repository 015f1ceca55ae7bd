package board

// VBoard is a scratch copy of a piece placement used to try moves out.
// It carries no side to move or rights, only the 12 bitboards.
type VBoard struct {
	Boards BitboardSet
}

// NewVBoard creates a VBoard from a Position.
func NewVBoard(p *Position) VBoard {
	return VBoard{Boards: p.Boards}
}

// Remove clears whatever piece stands on sq and returns it.
func (v *VBoard) Remove(sq Square) Piece {
	piece := v.Boards.PieceAt(sq)
	if piece != NoPiece {
		v.Boards[piece] = v.Boards[piece].Clear(sq)
	}
	return piece
}

// Put places piece on sq. The square must be empty.
func (v *VBoard) Put(piece Piece, sq Square) {
	v.Boards[piece] = v.Boards[piece].Set(sq)
}

// capturedSquare returns the square of the piece m removes: the destination,
// or for en passant the square behind it.
func capturedSquare(m Move, us Color) Square {
	if !m.IsEnPassant() {
		return m.To()
	}
	push, _ := pawnDirections(us)
	return Step(m.To(), -push)
}

// castleRookSquares returns where the rook starts and ends for castling move m.
func castleRookSquares(m Move) (rookFrom, rookTo Square) {
	rank := m.From().Rank()
	if m.Flag() == FlagCastleKingside {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// ApplyMove moves pieces for m (no validation) and returns the captured
// piece, or NoPiece. Captures, en passant, promotion and the castling rook
// are all handled in one update.
func (v *VBoard) ApplyMove(m Move, us Color) Piece {
	from, to := m.From(), m.To()

	mover := v.Remove(from)
	if mover == NoPiece {
		return NoPiece
	}

	captured := NoPiece
	if m.IsCapture() || m.IsEnPassant() || v.Boards.PieceAt(to) != NoPiece {
		captured = v.Remove(capturedSquare(m, us))
	}

	if m.IsPromotion() {
		v.Put(m.Promotion(), to)
	} else {
		v.Put(mover, to)
	}

	if m.IsCastling() {
		rookFrom, rookTo := castleRookSquares(m)
		if rook := v.Remove(rookFrom); rook != NoPiece {
			v.Put(rook, rookTo)
		}
	}
	return captured
}

// IsKingAttacked checks if the king of color us is attacked by the other side.
func (v *VBoard) IsKingAttacked(us Color) bool {
	ksq := v.Boards.KingSquare(us)
	if ksq == NoSquare {
		return false
	}
	return v.Boards.IsAttacked(ksq, us.Other())
}
