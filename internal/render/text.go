package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// TextTarget draws frames as a plain-text diagram, rank 8 at the top.
// Selected square: (P). Legal destination: * on an empty square, or a *
// before the piece that would be captured.
type TextTarget struct {
	w io.Writer
}

// NewTextTarget returns a target writing to w.
func NewTextTarget(w io.Writer) *TextTarget {
	return &TextTarget{w: w}
}

// Draw writes the frame.
func (t *TextTarget) Draw(f Frame) error {
	_, err := io.WriteString(t.w, FormatText(f))
	return err
}

// FormatText renders f as the diagram TextTarget writes.
func FormatText(f Frame) string {
	var sb strings.Builder
	sb.WriteString("   +------------------------+\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, " %d |", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			sb.WriteString(cell(f, sq))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   +------------------------+\n")
	sb.WriteString("     a  b  c  d  e  f  g  h\n")

	fmt.Fprintf(&sb, "%s to move", f.SideToMove)
	if st := f.Status.State; st != board.NotInCheck {
		fmt.Fprintf(&sb, " (%s)", st)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func cell(f Frame, sq board.Square) string {
	piece := f.Boards.PieceAt(sq)
	c := "."
	if piece != board.NoPiece {
		c = piece.String()
	}

	switch {
	case sq == f.Selected:
		return "(" + c + ")"
	case f.Highlight.IsSet(sq) && piece == board.NoPiece:
		return " * "
	case f.Highlight.IsSet(sq):
		return "*" + c + " "
	}
	return " " + c + " "
}
