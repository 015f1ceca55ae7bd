package board

// maxRaySteps bounds every sliding walk; no ray is longer than 7 squares.
const maxRaySteps = 7

// promotionPieces lists promotion choices, strongest first.
var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalFrom returns the moves the piece on sq could make by its
// movement rules alone, ignoring whether its own king is left in check.
// Castling is not produced here; see LegalMovesFrom.
// An empty square or a piece of the side not to move yields no moves.
func (p *Position) PseudoLegalFrom(sq Square) MoveList {
	if !sq.IsValid() {
		return nil
	}
	piece := p.PieceAt(sq)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return nil
	}

	var ml MoveList
	switch pt := piece.Type(); pt {
	case Queen:
		ml = p.appendSlides(ml, sq, SlidingDirections[:], maxRaySteps)
	case Rook:
		ml = p.appendSlides(ml, sq, OrthogonalDirections[:], maxRaySteps)
	case Bishop:
		ml = p.appendSlides(ml, sq, DiagonalDirections[:], maxRaySteps)
	case King:
		ml = p.appendSlides(ml, sq, SlidingDirections[:], 1)
	case Knight:
		ml = p.appendSlides(ml, sq, KnightJumps[:], 1)
	case Pawn:
		ml = p.appendPawnMoves(ml, sq)
	}
	return ml
}

// PseudoLegalMoves returns the pseudo-legal moves of every piece of the
// side to move.
func (p *Position) PseudoLegalMoves() MoveList {
	var ml MoveList
	own := p.Boards.ByColor(p.SideToMove)
	for own != 0 {
		ml = append(ml, p.PseudoLegalFrom(own.PopLSB())...)
	}
	return ml
}

// appendSlides walks each direction up to limit steps. An empty square is
// added and the walk continues; an enemy piece other than the king is added
// as a capture and ends the walk; an own piece or the enemy king ends the
// walk without adding anything.
func (p *Position) appendSlides(ml MoveList, from Square, dirs []Direction, limit int) MoveList {
	us := p.SideToMove
	for _, d := range dirs {
		to := from
		for i := 0; i < limit; i++ {
			to = Step(to, d)
			if to == NoSquare {
				break
			}
			target := p.PieceAt(to)
			if target == NoPiece {
				ml = append(ml, NewMove(from, to, FlagNormal))
				continue
			}
			if target.Color() != us && target.Type() != King {
				ml = append(ml, NewMove(from, to, FlagNormal).WithCapture())
			}
			break
		}
	}
	return ml
}

// pawnDirections returns the push direction and the two capture directions
// for a pawn of color c.
func pawnDirections(c Color) (push Direction, captures [2]Direction) {
	if c == White {
		return North, [2]Direction{NorthWest, NorthEast}
	}
	return South, [2]Direction{SouthWest, SouthEast}
}

// appendPawnMoves adds single and double pushes, diagonal captures and en
// passant. Moves onto the last rank are expanded into promotions.
func (p *Position) appendPawnMoves(ml MoveList, from Square) MoveList {
	us := p.SideToMove
	push, captures := pawnDirections(us)

	if one := Step(from, push); one != NoSquare && p.IsEmpty(one) {
		ml = appendPawnMove(ml, us, NewMove(from, one, FlagNormal))

		if from.RelativeRank(us) == 1 {
			if two := Step(one, push); two != NoSquare && p.IsEmpty(two) {
				ml = append(ml, NewMove(from, two, FlagDoublePush))
			}
		}
	}

	for _, d := range captures {
		to := Step(from, d)
		if to == NoSquare {
			continue
		}
		if to == p.EnPassant && p.IsEmpty(to) {
			if p.PieceAt(Step(to, -push)) == NewPiece(Pawn, us.Other()) {
				ml = append(ml, NewMove(from, to, FlagEnPassant).WithCapture())
			}
			continue
		}
		target := p.PieceAt(to)
		if target != NoPiece && target.Color() != us && target.Type() != King {
			ml = appendPawnMove(ml, us, NewMove(from, to, FlagNormal).WithCapture())
		}
	}
	return ml
}

// appendPawnMove adds m, or its four promotion variants if it reaches the
// last rank.
func appendPawnMove(ml MoveList, us Color, m Move) MoveList {
	if m.To().RelativeRank(us) != 7 {
		return append(ml, m)
	}
	for _, pt := range promotionPieces {
		promo := NewPromotion(m.From(), m.To(), NewPiece(pt, us))
		if m.IsCapture() {
			promo = promo.WithCapture()
		}
		ml = append(ml, promo)
	}
	return ml
}

// RayStep is one square visited during attack analysis.
type RayStep struct {
	Square Square
	Piece  Piece // NoPiece when the square is empty
}

// RayTrace is the ordered sequence of squares along one direction, from the
// square nearest the origin out to the board edge.
type RayTrace struct {
	Direction Direction
	Steps     []RayStep
}

// Pieces returns the indices into Steps of up to the first two occupied
// squares, or -1 where there is none.
func (r RayTrace) Pieces() (first, second int) {
	first, second = -1, -1
	for i, s := range r.Steps {
		if s.Piece == NoPiece {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		second = i
		break
	}
	return first, second
}

// AttackProfile is the result of attack analysis from one square: the square
// treated as if it held a queen (eight full rays) plus the eight knight
// landing squares (NoSquare where the jump leaves the board).
type AttackProfile struct {
	Origin Square
	Rays   [8]RayTrace // indexed like SlidingDirections
	Jumps  [8]RayStep  // indexed like KnightJumps
}

// AttackAnalysis traces every queen ray and knight jump from sq regardless of
// what actually occupies sq. Rays are recorded past the first piece so callers
// can look behind a blocker (pins).
func (b *BitboardSet) AttackAnalysis(sq Square) AttackProfile {
	prof := AttackProfile{Origin: sq}
	for i, d := range SlidingDirections {
		trace := RayTrace{Direction: d, Steps: make([]RayStep, 0, maxRaySteps)}
		for to := Step(sq, d); to != NoSquare; to = Step(to, d) {
			trace.Steps = append(trace.Steps, RayStep{Square: to, Piece: b.PieceAt(to)})
		}
		prof.Rays[i] = trace
	}
	for i, d := range KnightJumps {
		to := Step(sq, d)
		prof.Jumps[i] = RayStep{Square: to, Piece: b.PieceAt(to)}
	}
	return prof
}

// attacksAlong reports whether piece, standing dist steps away from the
// analysed square along direction d (d points from the square to the piece),
// attacks the analysed square.
func attacksAlong(piece Piece, d Direction, dist int) bool {
	switch piece.Type() {
	case Queen:
		return true
	case Rook:
		return d.IsOrthogonal()
	case Bishop:
		return d.IsDiagonal()
	case King:
		return dist == 1
	case Pawn:
		if dist != 1 {
			return false
		}
		// A white pawn attacks upward, so it sits below the square.
		if piece.Color() == White {
			return d == SouthEast || d == SouthWest
		}
		return d == NorthEast || d == NorthWest
	}
	return false
}

// Attackers returns the squares of pieces of color by that attack the
// profile's origin.
func (prof *AttackProfile) Attackers(by Color) Bitboard {
	var attackers Bitboard
	for _, ray := range prof.Rays {
		first, _ := ray.Pieces()
		if first < 0 {
			continue
		}
		s := ray.Steps[first]
		if s.Piece.Color() == by && attacksAlong(s.Piece, ray.Direction, first+1) {
			attackers = attackers.Set(s.Square)
		}
	}
	for _, j := range prof.Jumps {
		if j.Piece != NoPiece && j.Piece == NewPiece(Knight, by) {
			attackers = attackers.Set(j.Square)
		}
	}
	return attackers
}

// AttackersOf returns the squares of pieces of color by attacking sq.
func (b *BitboardSet) AttackersOf(sq Square, by Color) Bitboard {
	prof := b.AttackAnalysis(sq)
	return prof.Attackers(by)
}

// IsAttacked reports whether any piece of color by attacks sq.
func (b *BitboardSet) IsAttacked(sq Square, by Color) bool {
	return b.AttackersOf(sq, by) != 0
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.Boards.IsAttacked(sq, byColor)
}
