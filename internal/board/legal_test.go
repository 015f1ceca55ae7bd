package board

import (
	"errors"
	"testing"
)

func TestPinnedPieces(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		want Bitboard
	}{
		{
			name: "bishop pinned on a file has no moves",
			fen:  "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1",
			from: E2,
			want: 0,
		},
		{
			name: "rook pinned on a file slides along it",
			fen:  "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1",
			from: E2,
			want: FileE &^ (Rank1 | Rank2),
		},
		{
			name: "knight pinned on a diagonal",
			fen:  "6k1/8/8/8/1b6/8/3N4/4K3 w - - 0 1",
			from: D2,
			want: 0,
		},
		{
			name: "bishop pinned on a diagonal keeps the diagonal",
			fen:  "6k1/8/8/8/1b6/8/3B4/4K3 w - - 0 1",
			from: D2,
			want: SquareBB(C3) | SquareBB(B4),
		},
		{
			name: "two own pieces on the line means no pin",
			fen:  "4r1k1/8/8/8/8/4N3/4B3/4K3 w - - 0 1",
			from: E2,
			want: SquareBB(D1) | SquareBB(F1) | SquareBB(D3) | SquareBB(C4) | SquareBB(B5) | SquareBB(A6) | SquareBB(F3) | SquareBB(G4) | SquareBB(H5),
		},
		{
			name: "rook does not pin along a diagonal",
			fen:  "6k1/8/8/8/1r6/8/3N4/4K3 w - - 0 1",
			from: D2,
			want: SquareBB(B1) | SquareBB(F1) | SquareBB(B3) | SquareBB(F3) | SquareBB(C4) | SquareBB(E4),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			if got := pos.LegalDestinations(tc.from); got != tc.want {
				t.Errorf("LegalDestinations(%s) = %v, want %v", tc.from, got.Squares(), tc.want.Squares())
			}
		})
	}
}

func TestCastling(t *testing.T) {
	kingSide := NewMove(E1, G1, FlagCastleKingside)
	queenSide := NewMove(E1, C1, FlagCastleQueenside)

	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{"both available", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", false, false},
		{"transit square attacked", "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1", false, true},
		{"destination attacked", "4k3/8/8/8/8/8/2r5/R3K2R w KQ - 0 1", true, false},
		{"knight between king and rook", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", true, false},
		{"in check", "4r2k/8/8/8/8/8/8/R3K2R w KQ - 0 1", false, false},
		{"b1 attacked does not matter", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", false, true},
		{"rook missing from its corner", "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			moves := pos.LegalMovesFrom(E1)
			if got := moves.Contains(kingSide); got != tc.kingSide {
				t.Errorf("O-O legal = %v, want %v (moves %v)", got, tc.kingSide, moves)
			}
			if got := moves.Contains(queenSide); got != tc.queenSide {
				t.Errorf("O-O-O legal = %v, want %v (moves %v)", got, tc.queenSide, moves)
			}
		})
	}
}

func TestCastlingMovesBothPieces(t *testing.T) {
	pos := mustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	m, err := pos.ResolveMove(E8, C8, NoPieceType)
	if err != nil {
		t.Fatal(err)
	}
	if m.Flag() != FlagCastleQueenside {
		t.Fatalf("ResolveMove(e8, c8) flag = %s, want queenside castle", m.Flag())
	}
	next, _, err := pos.Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	if next.PieceAt(C8) != BlackKing || next.PieceAt(D8) != BlackRook || !next.IsEmpty(A8) || !next.IsEmpty(E8) {
		t.Errorf("after O-O-O:\n%s", next)
	}
	if next.Castling != WhiteKingSideCastle|WhiteQueenSideCastle {
		t.Errorf("Castling = %s, want KQ", next.Castling)
	}
}

func TestEnPassantOnlyImmediately(t *testing.T) {
	h := NewHistory(mustParseFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1"))

	var err error
	h, err = h.Push(NewMove(D7, D5, FlagNormal))
	if err != nil {
		t.Fatal(err)
	}
	cur := h.Current()
	if cur.EnPassant != D6 {
		t.Fatalf("EnPassant = %s, want d6", cur.EnPassant)
	}
	want := NewMove(E5, D6, FlagEnPassant).WithCapture()
	if !cur.LegalMovesFrom(E5).Contains(want) {
		t.Errorf("exd6 e.p. missing from %v", cur.LegalMovesFrom(E5))
	}

	for _, m := range []Move{NewMove(E1, E2, FlagNormal), NewMove(E8, D8, FlagNormal)} {
		if h, err = h.Push(m); err != nil {
			t.Fatal(err)
		}
	}
	cur = h.Current()
	if got := cur.LegalDestinations(E5); got != SquareBB(E6) {
		t.Errorf("LegalDestinations(e5) = %v, want [e6]", got.Squares())
	}
}

func TestEnPassantResolvesPawnCheck(t *testing.T) {
	// d2-d4 checks the king on c5; exd3 e.p. removes the checker.
	pos := mustParseFEN(t, "8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")

	st := pos.Status()
	if st.State != SingleCheck || st.Attacker != D4 {
		t.Fatalf("Status() = %+v, want check from d4", st)
	}

	moves := pos.LegalMovesFrom(E4)
	want := NewMove(E4, D3, FlagEnPassant).WithCapture()
	if len(moves) != 1 || moves[0] != want {
		t.Errorf("LegalMovesFrom(e4) = %v, want [%s]", moves, want)
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	pos := mustParseFEN(t, epHorizontalFEN)
	if got := pos.LegalDestinations(E4); got != SquareBB(E3) {
		t.Errorf("LegalDestinations(e4) = %v, want [e3]", got.Squares())
	}
}

func TestLegalMovesFromWrongSide(t *testing.T) {
	pos := NewPosition()
	if moves := pos.LegalMovesFrom(E7); moves != nil {
		t.Errorf("LegalMovesFrom(e7) = %v, want none for the side not to move", moves)
	}
	if moves := pos.LegalMovesFrom(E4); moves != nil {
		t.Errorf("LegalMovesFrom(e4) = %v, want none for an empty square", moves)
	}
	if moves := pos.LegalMovesFrom(NoSquare); moves != nil {
		t.Errorf("LegalMovesFrom(NoSquare) = %v, want none", moves)
	}
}

func TestResolveMove(t *testing.T) {
	pos := mustParseFEN(t, "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")

	m, err := pos.ResolveMove(B7, B8, NoPieceType)
	if err != nil {
		t.Fatal(err)
	}
	if m.Promotion() != WhiteQueen {
		t.Errorf("default promotion = %s, want Q", m.Promotion())
	}

	m, err = pos.ResolveMove(B7, B8, Knight)
	if err != nil {
		t.Fatal(err)
	}
	if m.Promotion() != WhiteKnight {
		t.Errorf("promotion = %s, want N", m.Promotion())
	}

	if _, err := pos.ResolveMove(B7, C8, NoPieceType); err == nil {
		t.Error("ResolveMove(b7, c8) succeeded on an empty square")
	} else if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("error %v does not wrap ErrIllegalMove", err)
	}
}
