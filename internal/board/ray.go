package board

// Direction is a signed square offset used to walk the board.
type Direction int8

// Sliding (king-step) directions.
const (
	North     Direction = 8
	South     Direction = -8
	East      Direction = 1
	West      Direction = -1
	NorthEast Direction = 9
	NorthWest Direction = 7
	SouthEast Direction = -7
	SouthWest Direction = -9
)

// Knight jump offsets, named by their long leg first.
const (
	NorthNorthEast Direction = 17
	NorthNorthWest Direction = 15
	EastNorthEast  Direction = 10
	WestNorthWest  Direction = 6
	EastSouthEast  Direction = -6
	WestSouthWest  Direction = -10
	SouthSouthEast Direction = -15
	SouthSouthWest Direction = -17
)

var (
	// OrthogonalDirections are the rook rays.
	OrthogonalDirections = [4]Direction{North, East, South, West}

	// DiagonalDirections are the bishop rays.
	DiagonalDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}

	// SlidingDirections are the queen and king rays.
	SlidingDirections = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

	// KnightJumps are the eight knight offsets.
	KnightJumps = [8]Direction{
		NorthNorthEast, NorthNorthWest, EastNorthEast, WestNorthWest,
		EastSouthEast, WestSouthWest, SouthSouthEast, SouthSouthWest,
	}
)

// FileDelta returns how many files a single step in this direction moves
// (negative = toward file a). ok is false for an offset that is neither a
// sliding direction nor a knight jump.
func (d Direction) FileDelta() (delta int, ok bool) {
	switch d {
	case North, South:
		return 0, true
	case East, NorthEast, SouthEast, NorthNorthEast, SouthSouthEast:
		return 1, true
	case West, NorthWest, SouthWest, NorthNorthWest, SouthSouthWest:
		return -1, true
	case EastNorthEast, EastSouthEast:
		return 2, true
	case WestNorthWest, WestSouthWest:
		return -2, true
	}
	return 0, false
}

// IsDiagonal reports whether d is one of the four bishop rays.
func (d Direction) IsDiagonal() bool {
	return d == NorthEast || d == NorthWest || d == SouthEast || d == SouthWest
}

// IsOrthogonal reports whether d is one of the four rook rays.
func (d Direction) IsOrthogonal() bool {
	return d == North || d == South || d == East || d == West
}

// Step returns the square reached by moving one step from origin in
// direction d, or NoSquare when the step is blocked:
//   - origin is already NoSquare (a blocked ray stays blocked)
//   - the index leaves [0,63] (top/bottom edge)
//   - the file would leave [0,7], which catches both the a/h wrap of
//     single steps and the two-file wrap of knight jumps from the a/b and
//     g/h files
func Step(origin Square, d Direction) Square {
	if origin >= NoSquare {
		return NoSquare
	}
	to := int(origin) + int(d)
	if to < 0 || to > 63 {
		return NoSquare
	}
	df, ok := d.FileDelta()
	if !ok {
		return NoSquare
	}
	if f := origin.File() + df; f < 0 || f > 7 {
		return NoSquare
	}
	return Square(to)
}

// Ray returns every square from origin (exclusive) to the board edge in
// direction d, nearest first. At most 7 squares.
func Ray(origin Square, d Direction) []Square {
	squares := make([]Square, 0, 7)
	for sq := Step(origin, d); sq != NoSquare; sq = Step(sq, d) {
		squares = append(squares, sq)
	}
	return squares
}

// Pre-computed step tables, built with Step at init.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	betweenBB [64][64]Bitboard // squares strictly between two aligned squares
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		for _, d := range KnightJumps {
			knightAttacks[sq] = knightAttacks[sq].Set(Step(sq, d))
		}
		for _, d := range SlidingDirections {
			kingAttacks[sq] = kingAttacks[sq].Set(Step(sq, d))

			var between Bitboard
			for _, to := range Ray(sq, d) {
				betweenBB[sq][to] = between
				between = between.Set(to)
			}
		}
		pawnAttacks[White][sq] = SquareBB(Step(sq, NorthEast)) | SquareBB(Step(sq, NorthWest))
		pawnAttacks[Black][sq] = SquareBB(Step(sq, SouthEast)) | SquareBB(Step(sq, SouthWest))
	}
}

// KnightAttacks returns the knight jump targets from a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king step targets from a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the diagonal capture targets of a pawn of color c.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// Between returns the squares strictly between two squares.
// Returns empty if the squares are not on a common rank, file or diagonal.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}
