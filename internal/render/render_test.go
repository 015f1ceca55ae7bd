package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func startFrame(t *testing.T) Frame {
	t.Helper()
	pos := board.NewPosition()
	return Frame{
		Boards:     pos.Boards,
		Selected:   board.NoSquare,
		SideToMove: pos.SideToMove,
		Status:     pos.Status(),
	}
}

func TestFormatText(t *testing.T) {
	f := startFrame(t)
	f.Selected = board.G1
	f.Highlight = board.SquareBB(board.F3) | board.SquareBB(board.H3)

	out := FormatText(f)
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[1], " 8 | r  n  b  q  k  b  n  r ") {
		t.Errorf("rank 8 line = %q", lines[1])
	}
	if !strings.Contains(lines[8], "(N)") {
		t.Errorf("rank 1 line %q does not mark the selected knight", lines[8])
	}
	if strings.Count(lines[6], " * ") != 2 {
		t.Errorf("rank 3 line %q should show two destinations", lines[6])
	}
	if !strings.Contains(out, "White to move") {
		t.Errorf("missing side to move:\n%s", out)
	}
}

func TestFormatTextShowsCheck(t *testing.T) {
	pos, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	f := Frame{Boards: pos.Boards, Selected: board.NoSquare, SideToMove: pos.SideToMove, Status: pos.Status()}
	if out := FormatText(f); !strings.Contains(out, "Black to move (checkmate)") {
		t.Errorf("output does not report checkmate:\n%s", out)
	}
	if f.CheckedKing() != board.H8 {
		t.Errorf("CheckedKing() = %s, want h8", f.CheckedKing())
	}
}

func TestTextTarget(t *testing.T) {
	var buf bytes.Buffer
	target := NewTextTarget(&buf)
	if err := target.Draw(startFrame(t)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("nothing written")
	}
}

func TestSVGTarget(t *testing.T) {
	var buf bytes.Buffer
	target := NewSVGTarget(&buf)

	f := startFrame(t)
	f.Selected = board.E2
	f.Highlight = board.SquareBB(board.E3) | board.SquareBB(board.E4)
	if err := target.Draw(f); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("%d move markers, want 2", n)
	}
	if !strings.Contains(out, "♔") || !strings.Contains(out, "♚") {
		t.Error("kings missing from the drawing")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVGTargetReportsWriteError(t *testing.T) {
	if err := NewSVGTarget(failingWriter{}).Draw(startFrame(t)); err == nil {
		t.Error("Draw succeeded on a failing writer")
	}
}

func TestTargetFunc(t *testing.T) {
	var got Frame
	target := TargetFunc(func(f Frame) error {
		got = f
		return nil
	})
	f := startFrame(t)
	if err := target.Draw(f); err != nil {
		t.Fatal(err)
	}
	if got.Boards != f.Boards {
		t.Error("TargetFunc did not receive the frame")
	}
	if err := Nop.Draw(f); err != nil {
		t.Errorf("Nop.Draw: %v", err)
	}
}

func TestSVGTargetSquareSize(t *testing.T) {
	var buf bytes.Buffer
	target := NewSVGTarget(&buf)
	target.SetSquareSize(30)
	target.SetSquareSize(-1)

	theme := DefaultTheme()
	theme.DarkSquare.R, theme.DarkSquare.G, theme.DarkSquare.B = 1, 2, 3
	target.SetTheme(theme)

	if err := target.Draw(startFrame(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// 8 squares of 30 plus a 10 unit margin on each side.
	if !strings.Contains(out, `width="260"`) {
		t.Errorf("square size not applied:\n%.300s", out)
	}
	if !strings.Contains(out, "fill:rgb(1,2,3)") {
		t.Error("theme not applied")
	}
}
