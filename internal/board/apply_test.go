package board

import "testing"

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	pos := NewPosition()
	before := pos

	next, captured, err := pos.Apply(NewMove(E2, E4, FlagDoublePush))
	if err != nil {
		t.Fatal(err)
	}
	if pos != before {
		t.Error("Apply modified its receiver")
	}
	if captured != NoPiece {
		t.Errorf("captured = %s, want none", captured)
	}
	if next.SideToMove != Black || next.EnPassant != E3 {
		t.Errorf("after e4: side %s, ep %s", next.SideToMove, next.EnPassant)
	}
	if next.PieceAt(E4) != WhitePawn || !next.IsEmpty(E2) {
		t.Errorf("pawn not moved:\n%s", next)
	}
}

func TestApplyCastlingRights(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move Move
		want CastlingRights
	}{
		{"king move clears both", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(E1, F1, FlagNormal), BlackKingSideCastle | BlackQueenSideCastle},
		{"h1 rook move clears K", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(H1, H4, FlagNormal), WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle},
		{"capturing a8 rook clears q", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(A1, A8, FlagNormal).WithCapture(), WhiteKingSideCastle | BlackKingSideCastle},
		{"unrelated move keeps all", "r3k2r/8/8/8/8/8/P7/R3K2R w KQkq - 0 1", NewMove(A2, A3, FlagNormal), AllCastling},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			next, _, err := pos.Apply(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			if next.Castling != tc.want {
				t.Errorf("Castling = %s, want %s", next.Castling, tc.want)
			}
		})
	}
}

func TestApplyEnPassantCapture(t *testing.T) {
	pos := mustParseFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	next, captured, err := pos.Apply(NewMove(E5, D6, FlagEnPassant).WithCapture())
	if err != nil {
		t.Fatal(err)
	}
	if captured != BlackPawn {
		t.Errorf("captured = %s, want p", captured)
	}
	if !next.IsEmpty(D5) || !next.IsEmpty(E5) || next.PieceAt(D6) != WhitePawn {
		t.Errorf("after exd6:\n%s", next)
	}
	if next.EnPassant != NoSquare {
		t.Errorf("EnPassant = %s, want cleared", next.EnPassant)
	}
}

func TestApplyPromotion(t *testing.T) {
	pos := mustParseFEN(t, "2r1k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	next, captured, err := pos.Apply(NewPromotion(B7, C8, WhiteKnight).WithCapture())
	if err != nil {
		t.Fatal(err)
	}
	if captured != BlackRook {
		t.Errorf("captured = %s, want r", captured)
	}
	if next.PieceAt(C8) != WhiteKnight || next.Boards[WhitePawn] != 0 {
		t.Errorf("after bxc8=N:\n%s", next)
	}
}

func TestApplyErrors(t *testing.T) {
	pos := NewPosition()
	bad := []Move{
		NewMove(E4, E5, FlagNormal),
		NewMove(E7, E5, FlagDoublePush),
		NewPromotion(G1, F3, WhiteQueen),
		NewPromotion(E2, E4, BlackQueen),
	}
	for _, m := range bad {
		if _, _, err := pos.Apply(m); err == nil {
			t.Errorf("Apply(%s) succeeded, want error", m)
		}
	}
}

func TestBoardsStayDisjointThroughPlay(t *testing.T) {
	pos := mustParseFEN(t, kiwipeteFEN)
	for _, m := range pos.LegalMoves() {
		next, _, err := pos.Apply(m)
		if err != nil {
			t.Fatalf("Apply(%s): %v", m, err)
		}
		if err := next.Boards.Validate(); err != nil {
			t.Errorf("after %s: %v", m, err)
		}
		if next.IsSquareAttacked(next.KingSquare(pos.SideToMove), next.SideToMove) {
			t.Errorf("legal move %s leaves the king attacked", m)
		}
	}
}
