package board

import "fmt"

// CheckState is the check status of the side to move.
type CheckState uint8

const (
	NotInCheck CheckState = iota
	SingleCheck
	DoubleCheck
	Checkmate
	Stalemate
)

// String returns the state name.
func (s CheckState) String() string {
	switch s {
	case NotInCheck:
		return "not in check"
	case SingleCheck:
		return "check"
	case DoubleCheck:
		return "double check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// CheckStatus describes how the king of the side to move is attacked.
type CheckStatus struct {
	State    CheckState
	Checkers Bitboard // every enemy piece attacking the king

	// Attacker is the single checking piece, NoSquare unless exactly one.
	Attacker Square

	// Interposition holds the squares between a single sliding checker and
	// the king; occupying any of them blocks the check.
	Interposition Bitboard
}

// InCheck reports whether the king is attacked.
func (s CheckStatus) InCheck() bool {
	return s.Checkers != 0
}

// GameOver reports whether the side to move has no legal move.
func (s CheckStatus) GameOver() bool {
	return s.State == Checkmate || s.State == Stalemate
}

// Check computes the check status of the side to move from attack analysis
// of its king's square. It never reports Checkmate or Stalemate; see Status.
func (p *Position) Check() CheckStatus {
	us := p.SideToMove
	st := CheckStatus{State: NotInCheck, Attacker: NoSquare}

	ksq := p.KingSquare(us)
	if ksq == NoSquare {
		return st
	}

	st.Checkers = p.Boards.AttackersOf(ksq, us.Other())
	switch st.Checkers.PopCount() {
	case 0:
	case 1:
		st.State = SingleCheck
		st.Attacker = st.Checkers.LSB()
		if p.PieceAt(st.Attacker).Type().IsSlider() {
			st.Interposition = Between(st.Attacker, ksq)
		}
	default:
		st.State = DoubleCheck
	}
	return st
}

// Status is Check promoted to Checkmate or Stalemate when the side to move
// has no legal move.
func (p *Position) Status() CheckStatus {
	st := p.Check()
	if p.HasLegalMoves() {
		return st
	}
	if st.InCheck() {
		st.State = Checkmate
	} else {
		st.State = Stalemate
	}
	return st
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Check().InCheck()
}

// pinSet records pieces pinned to their own king and the line each one may
// still move along (up to and including the pinning piece).
type pinSet struct {
	pinned Bitboard
	line   [64]Bitboard
}

// computePins finds pinned pieces of the side to move by looking along every
// ray from the king: an own piece first and an enemy slider that moves along
// that ray second.
func (p *Position) computePins(ksq Square) pinSet {
	var ps pinSet
	us := p.SideToMove
	prof := p.Boards.AttackAnalysis(ksq)

	for _, ray := range prof.Rays {
		first, second := ray.Pieces()
		if first < 0 || second < 0 {
			continue
		}
		blocker, pinner := ray.Steps[first], ray.Steps[second]
		if blocker.Piece.Color() != us || pinner.Piece.Color() == us {
			continue
		}
		pt := pinner.Piece.Type()
		if !pt.IsSlider() || !attacksAlong(pinner.Piece, ray.Direction, second+1) {
			continue
		}

		var line Bitboard
		for i := 0; i <= second; i++ {
			line = line.Set(ray.Steps[i].Square)
		}
		ps.pinned = ps.pinned.Set(blocker.Square)
		ps.line[blocker.Square] = line
	}
	return ps
}

// legality caches what the filter needs for one position.
type legality struct {
	us    Color
	ksq   Square
	check CheckStatus
	pins  pinSet
}

func (p *Position) newLegality() *legality {
	us := p.SideToMove
	ksq := p.KingSquare(us)
	lg := &legality{us: us, ksq: ksq, check: p.Check()}
	if ksq != NoSquare {
		lg.pins = p.computePins(ksq)
	}
	return lg
}

// isLegal decides whether pseudo-legal move m leaves the mover's king safe.
func (p *Position) isLegal(m Move, lg *legality) bool {
	from, to := m.From(), m.To()

	// King steps: the destination must not be attacked once the king has
	// left its origin, so the king cannot shield a square behind itself.
	if from == lg.ksq {
		if m.IsCastling() {
			return lg.check.State == NotInCheck
		}
		v := NewVBoard(p)
		v.Remove(from)
		return !v.Boards.IsAttacked(to, lg.us.Other())
	}

	// En passant removes two pawns from their squares at once, which no
	// static test covers; play it out instead.
	if m.IsEnPassant() {
		v := NewVBoard(p)
		v.ApplyMove(m, lg.us)
		return !v.IsKingAttacked(lg.us)
	}

	switch lg.check.State {
	case DoubleCheck:
		return false
	case SingleCheck:
		if to != lg.check.Attacker && !lg.check.Interposition.IsSet(to) {
			return false
		}
	}

	if lg.pins.pinned.IsSet(from) && !lg.pins.line[from].IsSet(to) {
		return false
	}
	return true
}

// castlingMoves returns the castling moves available to the side to move.
// A right is usable when the king and that rook are on their home squares,
// every square between them is empty, and the king's start, transit and
// destination squares are not attacked.
func (p *Position) castlingMoves(lg *legality) MoveList {
	if lg.check.State != NotInCheck {
		return nil
	}
	us, them := lg.us, lg.us.Other()
	home := E1
	if us == Black {
		home = E8
	}
	if lg.ksq != home {
		return nil
	}

	occupied := p.Boards.Occupied()
	rank := home.Rank()

	var ml MoveList
	for _, kingSide := range [2]bool{true, false} {
		if !p.Castling.CanCastle(us, kingSide) {
			continue
		}

		rookSq, transit, kingTo, flag := NewSquare(0, rank), NewSquare(3, rank), NewSquare(2, rank), FlagCastleQueenside
		if kingSide {
			rookSq, transit, kingTo, flag = NewSquare(7, rank), NewSquare(5, rank), NewSquare(6, rank), FlagCastleKingside
		}

		if p.PieceAt(rookSq) != NewPiece(Rook, us) {
			continue
		}
		if occupied&Between(home, rookSq) != 0 {
			continue
		}
		if p.IsSquareAttacked(home, them) || p.IsSquareAttacked(transit, them) || p.IsSquareAttacked(kingTo, them) {
			continue
		}
		ml = append(ml, NewMove(home, kingTo, flag))
	}
	return ml
}

// legalFrom filters the pseudo-legal moves of the piece on sq.
func (p *Position) legalFrom(sq Square, lg *legality) MoveList {
	var out MoveList
	for _, m := range p.PseudoLegalFrom(sq) {
		if p.isLegal(m, lg) {
			out = append(out, m)
		}
	}
	if sq == lg.ksq {
		out = append(out, p.castlingMoves(lg)...)
	}
	return out
}

// LegalMovesFrom returns the legal moves of the piece on sq. An empty square
// or a piece of the side not to move yields no moves.
func (p *Position) LegalMovesFrom(sq Square) MoveList {
	if !sq.IsValid() {
		return nil
	}
	piece := p.PieceAt(sq)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return nil
	}
	return p.legalFrom(sq, p.newLegality())
}

// LegalDestinations returns the destination squares of LegalMovesFrom(sq).
func (p *Position) LegalDestinations(sq Square) Bitboard {
	return p.LegalMovesFrom(sq).Destinations()
}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() MoveList {
	lg := p.newLegality()
	var out MoveList

	own := p.Boards.ByColor(p.SideToMove)
	if lg.check.State == DoubleCheck {
		// Only the king can answer a double check, apart from the rare en
		// passant capture that removes one checker and blocks the other.
		own &= p.Boards[NewPiece(King, lg.us)] | p.Boards[NewPiece(Pawn, lg.us)]
	}
	for own != 0 {
		out = append(out, p.legalFrom(own.PopLSB(), lg)...)
	}
	return out
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	lg := p.newLegality()
	own := p.Boards.ByColor(p.SideToMove)
	for own != 0 {
		sq := own.PopLSB()
		for _, m := range p.PseudoLegalFrom(sq) {
			if p.isLegal(m, lg) {
				return true
			}
		}
	}
	// Castling never matters here: it needs a king step to f1/d1 (or f8/d8)
	// to be legal as well.
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.Status().State == Checkmate
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return p.Status().State == Stalemate
}

// IsLegal reports whether m is one of the legal moves of the position.
func (p *Position) IsLegal(m Move) bool {
	return p.LegalMovesFrom(m.From()).Contains(m)
}

// ResolveMove finds the legal move from -> to. promo selects the promotion
// piece type; NoPieceType promotes to a queen.
func (p *Position) ResolveMove(from, to Square, promo PieceType) (Move, error) {
	if promo == NoPieceType {
		promo = Queen
	}
	for _, m := range p.LegalMovesFrom(from) {
		if m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion().Type() != promo {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("%s%s: %w", from, to, ErrIllegalMove)
}
