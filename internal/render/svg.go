package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultSquareSize is the edge of one square in SVG user units.
const DefaultSquareSize = 60

// pieceGlyphs maps each Piece to its Unicode chess symbol, board order.
var pieceGlyphs = [12]string{
	"♔", "♕", "♖", "♗", "♘", "♙",
	"♚", "♛", "♜", "♝", "♞", "♟",
}

// SVGTarget draws each frame as a standalone SVG document.
type SVGTarget struct {
	w          io.Writer
	theme      *Theme
	squareSize int
}

// NewSVGTarget returns a target writing SVG documents to w.
func NewSVGTarget(w io.Writer) *SVGTarget {
	return &SVGTarget{w: w, theme: DefaultTheme(), squareSize: DefaultSquareSize}
}

// SetTheme replaces the color scheme.
func (t *SVGTarget) SetTheme(theme *Theme) {
	t.theme = theme
}

// SetSquareSize sets the square edge in user units.
func (t *SVGTarget) SetSquareSize(size int) {
	if size > 0 {
		t.squareSize = size
	}
}

// Draw writes the frame as one SVG document.
func (t *SVGTarget) Draw(f Frame) error {
	ew := &errWriter{w: t.w}
	canvas := svg.New(ew)

	sz := t.squareSize
	margin := sz / 3
	size := 8*sz + 2*margin
	canvas.Start(size, size)
	canvas.Title(fmt.Sprintf("%s to move", f.SideToMove))
	canvas.Rect(0, 0, size, size, fill(t.theme.LightSquare))

	checked := f.CheckedKing()
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := t.squareOrigin(sq, margin)
		canvas.Rect(x, y, sz, sz, fill(t.theme.squareColor(sq)))

		switch {
		case sq == f.Selected:
			canvas.Rect(x, y, sz, sz, fill(t.theme.SelectedSquare))
		case sq == checked:
			canvas.Rect(x, y, sz, sz, fill(t.theme.CheckColor))
		case f.LastMove != board.NoMove && (sq == f.LastMove.From() || sq == f.LastMove.To()):
			canvas.Rect(x, y, sz, sz, fill(t.theme.LastMoveColor))
		}

		piece := f.Boards.PieceAt(sq)
		if piece != board.NoPiece {
			canvas.Text(x+sz/2, y+sz*3/4, pieceGlyphs[piece],
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", sz*3/4))
		}

		if f.Highlight.IsSet(sq) {
			r := sz / 6
			if piece != board.NoPiece {
				r = sz / 2
				canvas.Circle(x+sz/2, y+sz/2, r-2, stroke(t.theme.LegalMoveColor, sz/12))
			} else {
				canvas.Circle(x+sz/2, y+sz/2, r, fill(t.theme.LegalMoveColor))
			}
		}
	}

	label := fmt.Sprintf("text-anchor:middle;font-size:%dpx;%s", margin*2/3, fill(t.theme.TextColor))
	for i := 0; i < 8; i++ {
		canvas.Text(margin+i*sz+sz/2, size-margin/4, string(rune('a'+i)), label)
		canvas.Text(margin/2, margin+(7-i)*sz+sz/2+margin/4, string(rune('1'+i)), label)
	}

	canvas.End()
	return ew.err
}

// squareOrigin returns the top-left corner of sq, rank 8 at the top.
func (t *SVGTarget) squareOrigin(sq board.Square, margin int) (int, int) {
	return margin + sq.File()*t.squareSize, margin + (7-sq.Rank())*t.squareSize
}

func fill(c color.RGBA) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.2f", c.R, c.G, c.B, float64(c.A)/255)
}

func stroke(c color.RGBA, width int) string {
	return fmt.Sprintf("fill:none;stroke:rgb(%d,%d,%d);stroke-opacity:%.2f;stroke-width:%d",
		c.R, c.G, c.B, float64(c.A)/255, width)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
