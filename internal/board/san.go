package board

import (
	"fmt"
	"strings"
)

// SAN converts a legal move of pos to Standard Algebraic Notation.
func (m Move) SAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	switch m.Flag() {
	case FlagCastleKingside:
		return "O-O" + checkSuffix(pos, m)
	case FlagCastleQueenside:
		return "O-O-O" + checkSuffix(pos, m)
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}
	pt := piece.Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(pt.Char())
		sb.WriteString(disambiguation(pos, m, piece))
	}

	if m.IsCapture() {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion().Type().Char())
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// checkSuffix returns "#" or "+" when m mates or checks.
func checkSuffix(pos *Position, m Move) string {
	next, _, err := pos.Apply(m)
	if err != nil {
		return ""
	}
	switch next.Status().State {
	case Checkmate:
		return "#"
	case SingleCheck, DoubleCheck:
		return "+"
	}
	return ""
}

// disambiguation returns the file, rank or square needed to tell m apart
// from another piece of the same kind that can reach the same square.
func disambiguation(pos *Position, m Move, piece Piece) string {
	from, to := m.From(), m.To()

	var rivals []Square
	others := pos.Boards[piece].Clear(from)
	for others != 0 {
		sq := others.PopLSB()
		if pos.LegalDestinations(sq).IsSet(to) {
			rivals = append(rivals, sq)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the matching legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	legal := pos.LegalMoves()

	switch s {
	case "O-O", "0-0":
		for _, m := range legal {
			if m.Flag() == FlagCastleKingside {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%q: %w", orig, ErrIllegalMove)
	case "O-O-O", "0-0-0":
		for _, m := range legal {
			if m.Flag() == FlagCastleQueenside {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%q: %w", orig, ErrIllegalMove)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("invalid SAN %q: missing promotion piece", orig)
		}
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid SAN %q: bad promotion piece", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid SAN %q: unknown piece", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid SAN %q: %w", orig, err)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		}
	}

	for _, m := range legal {
		if m.To() != dest || m.IsCastling() {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.IsPromotion() {
			want := promo
			if want == NoPieceType {
				want = Queen
			}
			if m.Promotion().Type() != want {
				continue
			}
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%q: %w", orig, ErrIllegalMove)
}
