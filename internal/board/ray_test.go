package board

import "testing"

func TestStep(t *testing.T) {
	tests := []struct {
		name   string
		origin Square
		dir    Direction
		want   Square
	}{
		{"north from e4", E4, North, E5},
		{"north off the top", E8, North, NoSquare},
		{"south off the bottom", E1, South, NoSquare},
		{"west from file a wraps", A4, West, NoSquare},
		{"east from file h wraps", H4, East, NoSquare},
		{"northeast from file h wraps", H4, NorthEast, NoSquare},
		{"southwest from file a wraps", A5, SouthWest, NoSquare},
		{"northeast from a1", A1, NorthEast, B2},
		{"blocked stays blocked", NoSquare, North, NoSquare},
		{"knight from a1 west wraps", A1, WestNorthWest, NoSquare},
		{"knight from b1 two files west wraps", B1, WestNorthWest, NoSquare},
		{"knight from g1 two files east wraps", G1, EastNorthEast, NoSquare},
		{"knight from h1 one file east wraps", H1, NorthNorthEast, NoSquare},
		{"knight from g1 one file east", G1, NorthNorthEast, H3},
		{"knight from a1 up", A1, NorthNorthEast, B3},
		{"knight from a1 right", A1, EastNorthEast, C2},
		{"knight off the bottom", C2, SouthSouthEast, NoSquare},
		{"unknown offset", E4, Direction(3), NoSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Step(tc.origin, tc.dir); got != tc.want {
				t.Errorf("Step(%s, %d) = %s, want %s", tc.origin, tc.dir, got, tc.want)
			}
		})
	}
}

func TestKnightOnA1HasTwoJumps(t *testing.T) {
	got := KnightAttacks(A1)
	want := SquareBB(B3) | SquareBB(C2)
	if got != want {
		t.Errorf("KnightAttacks(a1) =\n%s\nwant\n%s", got, want)
	}
}

func TestKingAttacksCorner(t *testing.T) {
	if n := KingAttacks(H8).PopCount(); n != 3 {
		t.Errorf("KingAttacks(h8) has %d squares, want 3", n)
	}
	if n := KingAttacks(D4).PopCount(); n != 8 {
		t.Errorf("KingAttacks(d4) has %d squares, want 8", n)
	}
}

func TestPawnAttacksNeverWrap(t *testing.T) {
	if got, want := PawnAttacks(A2, White), SquareBB(B3); got != want {
		t.Errorf("PawnAttacks(a2, White) = %v, want %v", got.Squares(), want.Squares())
	}
	if got, want := PawnAttacks(H7, Black), SquareBB(G6); got != want {
		t.Errorf("PawnAttacks(h7, Black) = %v, want %v", got.Squares(), want.Squares())
	}
}

func TestRay(t *testing.T) {
	if got := Ray(A1, North); len(got) != 7 || got[6] != A8 {
		t.Errorf("Ray(a1, North) = %v", got)
	}
	got := Ray(D4, NorthEast)
	want := []Square{E5, F6, G7, H8}
	if len(got) != len(want) {
		t.Fatalf("Ray(d4, NorthEast) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ray(d4, NorthEast)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if got := Ray(H5, East); len(got) != 0 {
		t.Errorf("Ray(h5, East) = %v, want empty", got)
	}
}

func TestBetween(t *testing.T) {
	if n := Between(A1, H8).PopCount(); n != 6 {
		t.Errorf("Between(a1, h8) has %d squares, want 6", n)
	}
	if got, want := Between(E1, E4), SquareBB(E2)|SquareBB(E3); got != want {
		t.Errorf("Between(e1, e4) = %v, want %v", got.Squares(), want.Squares())
	}
	if got := Between(A1, B3); got != 0 {
		t.Errorf("Between(a1, b3) = %v, want empty", got.Squares())
	}
	if Between(E1, H1) != Between(H1, E1) {
		t.Error("Between is not symmetric")
	}
}

func TestSquareAt(t *testing.T) {
	sq, err := SquareAt(4, 3)
	if err != nil || sq != E4 {
		t.Fatalf("SquareAt(4, 3) = %s, %v; want e4", sq, err)
	}

	for _, c := range [][2]int{{-1, 0}, {0, 8}, {8, 8}} {
		if _, err := SquareAt(c[0], c[1]); err == nil {
			t.Errorf("SquareAt(%d, %d) succeeded, want RangeError", c[0], c[1])
		} else if _, ok := err.(*RangeError); !ok {
			t.Errorf("SquareAt(%d, %d) error %T, want *RangeError", c[0], c[1], err)
		}
	}
}
