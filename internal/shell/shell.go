// Package shell implements a line-oriented console for playing a game
// through a session.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/session"
)

// GameCatalog lists and removes saved games.
type GameCatalog interface {
	ListGames() ([]string, error)
	DeleteGame(id string) error
}

// Shell reads commands and applies them to a session.
type Shell struct {
	sess  *session.Session
	games GameCatalog
	out   io.Writer
	text  *render.TextTarget
}

// New creates a shell writing its replies to out. games may be nil.
func New(sess *session.Session, games GameCatalog, out io.Writer) *Shell {
	return &Shell{
		sess:  sess,
		games: games,
		out:   out,
		text:  render.NewTextTarget(out),
	}
}

// Run reads commands from in until "quit" or end of input.
func (sh *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sh.Execute(line) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns false on "quit".
func (sh *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "board", "d":
		sh.handleBoard()
	case "fen":
		pos := sh.sess.Position()
		fmt.Fprintln(sh.out, pos.FEN())
	case "select":
		sh.handleSelect(args)
	case "moves":
		sh.handleMoves(args)
	case "move":
		sh.handleMove(args)
	case "undo":
		if !sh.sess.Undo() {
			fmt.Fprintln(sh.out, "nothing to undo")
		}
	case "status":
		sh.handleStatus()
	case "history":
		sh.handleHistory()
	case "captures":
		sh.handleCaptures()
	case "save":
		sh.handleSave(args)
	case "load":
		sh.handleLoad(args)
	case "games":
		sh.handleGames()
	case "delete":
		sh.handleDelete(args)
	case "svg":
		sh.handleSVG(args)
	case "new":
		sh.handleNew(args)
	case "perft":
		sh.handlePerft(args)
	case "help":
		sh.handleHelp()
	case "quit", "exit":
		return false
	default:
		// A bare move ("e4", "e2e4") is the most common input.
		if len(parts) == 1 {
			sh.handleMove(parts)
			return true
		}
		sh.errorf("unknown command %q (try help)", cmd)
	}
	return true
}

func (sh *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(sh.out, "error: "+format+"\n", args...)
}

func (sh *Shell) handleBoard() {
	if err := sh.sess.DrawTo(sh.text); err != nil {
		sh.errorf("%v", err)
	}
}

func parseSquareArg(args []string) (board.Square, bool) {
	if len(args) == 0 {
		return board.NoSquare, false
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return board.NoSquare, false
	}
	return sq, true
}

// handleSelect selects a piece and shows the board with its destinations.
func (sh *Shell) handleSelect(args []string) {
	sq, ok := parseSquareArg(args)
	if !ok {
		sh.errorf("usage: select <square>")
		return
	}
	mask, err := sh.sess.Select(sq.File(), sq.Rank())
	if err != nil {
		sh.errorf("%v", err)
		return
	}
	sh.handleBoard()
	fmt.Fprintf(sh.out, "%s: %s\n", sq, squareList(mask))
}

// handleMoves lists legal moves, of one piece or of the side to move.
func (sh *Shell) handleMoves(args []string) {
	pos := sh.sess.Position()

	var moves board.MoveList
	if len(args) > 0 {
		sq, ok := parseSquareArg(args)
		if !ok {
			sh.errorf("usage: moves [square]")
			return
		}
		if _, err := sh.sess.LegalDestinationsMask(sq.File(), sq.Rank()); err != nil {
			sh.errorf("%v", err)
			return
		}
		moves = pos.LegalMovesFrom(sq)
	} else {
		moves = pos.LegalMoves()
	}

	sans := make([]string, len(moves))
	for i, m := range moves {
		sans[i] = m.SAN(&pos)
	}
	fmt.Fprintf(sh.out, "%d moves: %s\n", len(moves), strings.Join(sans, " "))
}

// handleMove plays a move. With a selection, a bare destination square
// moves the selected piece.
func (sh *Shell) handleMove(args []string) {
	if len(args) == 0 {
		sh.errorf("usage: move <e2e4|Nf3|square>")
		return
	}
	text := args[0]

	if sel := sh.sess.Selected(); sel != board.NoSquare && len(text) == 2 {
		if sq, err := board.ParseSquare(text); err == nil {
			if _, err := sh.sess.MoveTo(sq.File(), sq.Rank(), board.NoPieceType); err != nil {
				sh.errorf("%v", err)
				return
			}
			sh.reportLastMove()
			return
		}
	}

	if _, err := sh.sess.PlayText(text); err != nil {
		sh.errorf("%v", err)
		return
	}
	sh.reportLastMove()
}

func (sh *Shell) reportLastMove() {
	sans := sh.sess.SANHistory()
	h := sh.sess.History()
	if len(sans) == 0 {
		return
	}
	fmt.Fprintf(sh.out, "played %s\n", sans[len(sans)-1])
	if st := sh.sess.Status(); st.State != board.NotInCheck {
		fmt.Fprintf(sh.out, "%s to move: %s\n", h.Current().SideToMove, st.State)
	}
}

func (sh *Shell) handleStatus() {
	h := sh.sess.History()
	st := sh.sess.Status()
	cur := h.Current()
	fmt.Fprintf(sh.out, "move %d, %s to move, %s\n", h.FullMoveNumber(), cur.SideToMove, st.State)
	if st.Attacker != board.NoSquare {
		fmt.Fprintf(sh.out, "checked by %s on %s\n", cur.PieceAt(st.Attacker), st.Attacker)
	} else if st.Checkers.PopCount() > 1 {
		fmt.Fprintf(sh.out, "checked from %s\n", squareList(st.Checkers))
	}
}

func (sh *Shell) handleHistory() {
	sans := sh.sess.SANHistory()
	if len(sans) == 0 {
		fmt.Fprintln(sh.out, "no moves")
		return
	}
	h := sh.sess.History()
	black := h.At(0).SideToMove == board.Black

	var sb strings.Builder
	num := 1
	for i, san := range sans {
		switch {
		case i == 0 && black:
			fmt.Fprintf(&sb, "%d... %s ", num, san)
			num++
		case (i%2 == 0) != black:
			fmt.Fprintf(&sb, "%d. %s ", num, san)
		default:
			fmt.Fprintf(&sb, "%s ", san)
			num++
		}
	}
	fmt.Fprintln(sh.out, strings.TrimSpace(sb.String()))
}

func (sh *Shell) handleCaptures() {
	caps := sh.sess.Captures()
	if len(caps) == 0 {
		fmt.Fprintln(sh.out, "no captures")
		return
	}
	letters := make([]string, len(caps))
	for i, p := range caps {
		letters[i] = p.String()
	}
	fmt.Fprintln(sh.out, strings.Join(letters, " "))
}

func (sh *Shell) handleSave(args []string) {
	if len(args) != 1 {
		sh.errorf("usage: save <id>")
		return
	}
	if err := sh.sess.Save(args[0]); err != nil {
		sh.errorf("%v", err)
		return
	}
	fmt.Fprintf(sh.out, "saved %s\n", args[0])
}

func (sh *Shell) handleLoad(args []string) {
	if len(args) != 1 {
		sh.errorf("usage: load <id>")
		return
	}
	if err := sh.sess.Load(args[0]); err != nil {
		sh.errorf("%v", err)
		return
	}
	fmt.Fprintf(sh.out, "loaded %s (%d plies)\n", args[0], sh.sess.History().Len()-1)
}

func (sh *Shell) handleGames() {
	if sh.games == nil {
		sh.errorf("%v", session.ErrNoStore)
		return
	}
	ids, err := sh.games.ListGames()
	if err != nil {
		sh.errorf("%v", err)
		return
	}
	if len(ids) == 0 {
		fmt.Fprintln(sh.out, "no saved games")
		return
	}
	for _, id := range ids {
		fmt.Fprintln(sh.out, id)
	}
}

func (sh *Shell) handleDelete(args []string) {
	if len(args) != 1 {
		sh.errorf("usage: delete <id>")
		return
	}
	if sh.games == nil {
		sh.errorf("%v", session.ErrNoStore)
		return
	}
	if err := sh.games.DeleteGame(args[0]); err != nil {
		sh.errorf("%v", err)
		return
	}
	fmt.Fprintf(sh.out, "deleted %s\n", args[0])
}

// handleSVG writes the current frame to an SVG file.
func (sh *Shell) handleSVG(args []string) {
	if len(args) != 1 {
		sh.errorf("usage: svg <file>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		sh.errorf("%v", err)
		return
	}
	defer f.Close()

	if err := sh.sess.DrawTo(render.NewSVGTarget(f)); err != nil {
		sh.errorf("%v", err)
		return
	}
	fmt.Fprintf(sh.out, "wrote %s\n", args[0])
}

// handleNew starts a new game, from the standard position or a FEN.
func (sh *Shell) handleNew(args []string) {
	start := board.NewPosition()
	if len(args) > 0 {
		pos, err := board.ParseFEN(strings.Join(args, " "))
		if err != nil {
			sh.errorf("%v", err)
			return
		}
		start = pos
	}
	sh.sess.Reset(start)
	fmt.Fprintln(sh.out, "new game")
}

func (sh *Shell) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			sh.errorf("usage: perft <depth>")
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := board.Perft(sh.sess.Position(), depth)
	elapsed := time.Since(start)

	fmt.Fprintf(sh.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(sh.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(sh.out, "NPS: %.0f\n", nps)
	}
}

func (sh *Shell) handleHelp() {
	fmt.Fprint(sh.out, `commands:
  board                 show the board
  fen                   print the current position record
  select <sq>           select a piece and show its destinations
  moves [sq]            list legal moves
  move <e2e4|Nf3|sq>    play a move (a bare square moves the selected piece)
  undo                  take back the last move
  status                check state of the side to move
  history               moves played so far
  captures              pieces captured so far
  save <id> / load <id> store or restore the game
  games                 list saved games
  delete <id>           remove a saved game
  svg <file>            write the board as SVG
  new [fen]             start a new game
  perft <depth>         count move tree nodes
  quit
`)
}

// squareList formats a set of squares as "a3 c3", or "-" when empty.
func squareList(bb board.Bitboard) string {
	if bb == 0 {
		return "-"
	}
	sqs := bb.Squares()
	names := make([]string, len(sqs))
	for i, sq := range sqs {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
