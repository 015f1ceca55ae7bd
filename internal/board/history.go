package board

import "fmt"

// History is the append-only record of a game: every position since the
// start (index 0) and the pieces captured along the way. A History is a
// value; Push and Undo return a new History and never modify entries that
// another History value can see.
type History struct {
	positions []Position
	moves     []Move
	captures  []Piece
}

// NewHistory starts a history at the given position.
func NewHistory(start Position) History {
	return History{positions: []Position{start}}
}

// Len returns the number of positions recorded (plies played + 1).
func (h History) Len() int {
	return len(h.positions)
}

// At returns the i-th position, 0 being the start.
func (h History) At(i int) Position {
	return h.positions[i]
}

// Current returns the latest position, the only one moves are generated for.
func (h History) Current() Position {
	return h.positions[len(h.positions)-1]
}

// Moves returns a copy of the moves played, in order.
func (h History) Moves() []Move {
	return append([]Move(nil), h.moves...)
}

// Captures returns a copy of the capture log.
func (h History) Captures() []Piece {
	return append([]Piece(nil), h.captures...)
}

// FullMoveNumber returns the FEN full-move number of the current position,
// counting from 1 at the start position.
func (h History) FullMoveNumber() int {
	plies := len(h.positions) - 1
	if h.positions[0].SideToMove == Black {
		plies++
	}
	return plies/2 + 1
}

// Push plays m in the current position. The move is matched against the
// legal moves by origin, destination and promotion, so a bare
// NewMove(from, to, FlagNormal) resolves to the castling or en-passant move
// it names.
func (h History) Push(m Move) (History, error) {
	cur := h.Current()

	promo := NoPieceType
	if m.IsPromotion() {
		promo = m.Promotion().Type()
	}
	legal, err := cur.ResolveMove(m.From(), m.To(), promo)
	if err != nil {
		return h, err
	}

	next, captured, err := cur.Apply(legal)
	if err != nil {
		return h, err
	}

	// Three-index slices force append to copy, so older History values keep
	// their own backing arrays.
	n := len(h.positions)
	out := History{
		positions: append(h.positions[:n:n], next),
		moves:     append(h.moves[:len(h.moves):len(h.moves)], legal),
		captures:  h.captures[:len(h.captures):len(h.captures)],
	}
	if captured != NoPiece {
		out.captures = append(out.captures, captured)
	}
	return out, nil
}

// Undo returns the history without its last ply. Undoing the start position
// returns the history unchanged.
func (h History) Undo() History {
	n := len(h.positions)
	if n <= 1 {
		return h
	}
	out := History{
		positions: h.positions[: n-1 : n-1],
		moves:     h.moves[: n-2 : n-2],
		captures:  h.captures[:len(h.captures):len(h.captures)],
	}
	if h.moves[n-2].IsCapture() {
		out.captures = out.captures[: len(out.captures)-1 : len(out.captures)-1]
	}
	return out
}

// Records returns the textual record of every position, one per ply. This
// list is the canonical save format.
func (h History) Records() []string {
	records := make([]string, len(h.positions))
	for i, pos := range h.positions {
		records[i] = pos.FEN()
	}
	return records
}

// LoadHistory rebuilds a history from saved records. Each record must follow
// from the previous one by exactly one legal move; the moves and the capture
// log are recovered along the way.
func LoadHistory(records []string) (History, error) {
	if len(records) == 0 {
		return History{}, fmt.Errorf("load history: no records")
	}

	start, err := ParseFEN(records[0])
	if err != nil {
		return History{}, fmt.Errorf("load history: record 0: %w", err)
	}
	h := NewHistory(start)

	for i, rec := range records[1:] {
		want, err := ParseFEN(rec)
		if err != nil {
			return History{}, fmt.Errorf("load history: record %d: %w", i+1, err)
		}
		m, ok := findMoveBetween(h.Current(), want)
		if !ok {
			return History{}, fmt.Errorf("load history: record %d is not one legal move after record %d: %w", i+1, i, ErrIllegalMove)
		}
		if h, err = h.Push(m); err != nil {
			return History{}, fmt.Errorf("load history: record %d: %w", i+1, err)
		}
	}
	return h, nil
}

// findMoveBetween returns the legal move that turns from into to.
func findMoveBetween(from, to Position) (Move, bool) {
	for _, m := range from.LegalMoves() {
		next, _, err := from.Apply(m)
		if err == nil && next == to {
			return m, true
		}
	}
	return NoMove, false
}
