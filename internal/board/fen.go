package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// emptyMarker stands for an empty square in the expanded placement sequence.
const emptyMarker = '.'

// DecodePlacement converts the piece-placement field of a FEN record into a
// BitboardSet. Digits are expanded into empty markers, ranks are reversed so
// rank 1 comes first, and bit i of each piece's board is set wherever the
// i-th marker of the resulting 64-character sequence is that piece's letter.
func DecodePlacement(placement string) (BitboardSet, error) {
	var set BitboardSet

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return set, &ParseError{Input: placement, Reason: "need 8 ranks, got " + strconv.Itoa(len(ranks))}
	}

	var seq strings.Builder
	seq.Grow(64)
	for i := len(ranks) - 1; i >= 0; i-- {
		width := 0
		for j := 0; j < len(ranks[i]); j++ {
			c := ranks[i][j]
			switch {
			case c >= '1' && c <= '8':
				n := int(c - '0')
				seq.WriteString(strings.Repeat(string(emptyMarker), n))
				width += n
			case PieceFromChar(c) != NoPiece:
				seq.WriteByte(c)
				width++
			default:
				return set, &ParseError{Input: placement, Reason: "invalid piece character " + strconv.QuoteRune(rune(c))}
			}
		}
		if width != 8 {
			return set, &ParseError{Input: placement, Reason: "rank " + strconv.Itoa(8-i) + " has " + strconv.Itoa(width) + " squares"}
		}
	}

	markers := seq.String()
	if len(markers) != 64 {
		return set, &ParseError{Input: placement, Reason: "placement decodes to " + strconv.Itoa(len(markers)) + " squares"}
	}
	for p := WhiteKing; p < NoPiece; p++ {
		letter := pieceChars[p]
		for i := 0; i < 64; i++ {
			if markers[i] == letter {
				set[p] |= SquareBB(Square(i))
			}
		}
	}
	return set, nil
}

// EncodePlacement converts a BitboardSet into the FEN piece-placement field,
// rank 8 first, with runs of empty squares compressed into digits.
func EncodePlacement(set BitboardSet) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := set.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseFEN parses a textual position record. The placement, side to move,
// castling and en-passant fields are required; half-move clock and
// full-move number may follow and are ignored.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return Position{}, &ParseError{Input: fen, Reason: "need 4 to 6 fields, got " + strconv.Itoa(len(parts))}
	}

	boards, err := DecodePlacement(parts[0])
	if err != nil {
		return Position{}, err
	}
	pos := Position{Boards: boards, EnPassant: NoSquare}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, &ParseError{Input: fen, Reason: "invalid side to move " + strconv.Quote(parts[1])}
	}

	castling, err := parseCastlingRights(parts[2])
	if err != nil {
		return Position{}, &ParseError{Input: fen, Reason: err.Error()}
	}
	pos.Castling = castling

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, &ParseError{Input: fen, Reason: "invalid en passant square " + strconv.Quote(parts[3])}
		}
		pos.EnPassant = sq
	}

	for _, field := range parts[4:] {
		if _, err := strconv.Atoi(field); err != nil {
			return Position{}, &ParseError{Input: fen, Reason: "invalid move counter " + strconv.Quote(field)}
		}
	}

	if err := pos.Validate(); err != nil {
		return Position{}, &ParseError{Input: fen, Reason: err.Error()}
	}
	return pos, nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	var cr CastlingRights
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("invalid castling character %q", c)
		}
	}
	return cr, nil
}

// FEN returns the four-field textual record of the position: placement,
// side to move, castling rights and en-passant target.
func (p Position) FEN() string {
	var sb strings.Builder

	sb.WriteString(EncodePlacement(p.Boards))

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	return sb.String()
}
