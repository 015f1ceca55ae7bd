package board

import "fmt"

// Perft counts the leaf nodes of the legal move tree of p to depth plies.
// It panics if a generated move cannot be applied, since that means the
// generator and the applier disagree.
func Perft(p Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		nodes += Perft(mustApply(p, m), depth-1)
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes int64
}

// Divide runs Perft below each legal root move, in generation order.
func Divide(p Position, depth int) []DivideEntry {
	moves := p.LegalMoves()
	out := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		out = append(out, DivideEntry{Move: m, Nodes: Perft(mustApply(p, m), depth-1)})
	}
	return out
}

func mustApply(p Position, m Move) Position {
	next, _, err := p.Apply(m)
	if err != nil {
		panic(fmt.Sprintf("perft: generated move %s in %s: %v", m, p.FEN(), err))
	}
	return next
}
