// Package render draws board frames onto output targets. The game core only
// ever talks to a Target, so a terminal, a file or a test double can stand in
// for a screen.
package render

import (
	"image/color"

	"github.com/hailam/chesscore/internal/board"
)

// Frame is everything needed to draw one board state.
type Frame struct {
	Boards     board.BitboardSet
	Highlight  board.Bitboard // legal destinations of the selected piece
	Selected   board.Square   // NoSquare when nothing is selected
	LastMove   board.Move
	SideToMove board.Color
	Status     board.CheckStatus
}

// CheckedKing returns the square of the king in check, or NoSquare.
func (f *Frame) CheckedKing() board.Square {
	if !f.Status.InCheck() {
		return board.NoSquare
	}
	return f.Boards.KingSquare(f.SideToMove)
}

// Target receives a frame every time the game state changes.
type Target interface {
	Draw(f Frame) error
}

// TargetFunc adapts a function to a Target.
type TargetFunc func(f Frame) error

// Draw calls fn(f).
func (fn TargetFunc) Draw(f Frame) error {
	return fn(f)
}

// Nop discards every frame.
var Nop Target = TargetFunc(func(Frame) error { return nil })

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		TextColor:      color.RGBA{40, 44, 52, 255},
	}
}

// squareColor returns the base color of a square; a1 is dark.
func (t *Theme) squareColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return t.DarkSquare
	}
	return t.LightSquare
}
