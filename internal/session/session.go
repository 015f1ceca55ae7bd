// Package session holds one game in progress: its history, the current piece
// selection and the render target that is redrawn after every change. All
// methods are safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/storage"
)

// ErrNoPiece is returned when a square that must hold a piece is empty.
var ErrNoPiece = errors.New("no piece on square")

// ErrNoSelection is returned by MoveTo when no piece is selected.
var ErrNoSelection = errors.New("no piece selected")

// ErrNoStore is returned by Save and Load on a session without a store.
var ErrNoStore = errors.New("no game store configured")

// GameStore persists games between sessions.
type GameStore interface {
	SaveGame(g *storage.SavedGame) error
	LoadGame(id string) (*storage.SavedGame, error)
}

// Session is a single game. The zero value is not usable; call New.
type Session struct {
	mu sync.Mutex

	history    board.History
	sanHistory []string

	selected   board.Square
	legalMoves board.MoveList

	target render.Target
	store  GameStore
}

// New starts a session at start. target may be nil to draw nothing and store
// may be nil to disable Save and Load.
func New(start board.Position, target render.Target, store GameStore) *Session {
	if target == nil {
		target = render.Nop
	}
	s := &Session{
		history:  board.NewHistory(start),
		selected: board.NoSquare,
		target:   target,
		store:    store,
	}
	s.redraw()
	return s
}

// NewFromFEN starts a session at the position described by fen.
func NewFromFEN(fen string, target render.Target, store GameStore) (*Session, error) {
	start, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return New(start, target, store), nil
}

// CurrentBitboards returns the twelve piece boards of the current position.
func (s *Session) CurrentBitboards() board.BitboardSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current().Boards
}

// Position returns the current position.
func (s *Session) Position() board.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// LegalDestinationsMask returns the squares the piece on (file, rank) may
// legally move to. A piece of the side not to move has no destinations.
func (s *Session) LegalDestinationsMask(file, rank int) (board.Bitboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moves, _, err := s.movesAt(file, rank)
	if err != nil {
		return 0, err
	}
	return moves.Destinations(), nil
}

// movesAt validates (file, rank) and returns the legal moves of its piece.
func (s *Session) movesAt(file, rank int) (board.MoveList, board.Square, error) {
	sq, err := board.SquareAt(file, rank)
	if err != nil {
		return nil, board.NoSquare, err
	}
	pos := s.history.Current()
	if pos.PieceAt(sq) == board.NoPiece {
		return nil, sq, fmt.Errorf("%s: %w", sq, ErrNoPiece)
	}
	return pos.LegalMovesFrom(sq), sq, nil
}

// Select selects the piece on (file, rank) and returns its legal
// destinations. Selecting an empty square or an opponent piece clears the
// selection.
func (s *Session) Select(file, rank int) (board.Bitboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves, sq, err := s.movesAt(file, rank)
	if err != nil {
		s.clearSelection()
		s.redraw()
		return 0, err
	}

	pos := s.history.Current()
	if pos.PieceAt(sq).Color() != pos.SideToMove {
		s.clearSelection()
	} else {
		s.selected = sq
		s.legalMoves = moves
	}
	s.redraw()
	return moves.Destinations(), nil
}

// ClearSelection deselects the selected piece.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelection()
	s.redraw()
}

// Selected returns the selected square, or NoSquare.
func (s *Session) Selected() board.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) clearSelection() {
	s.selected = board.NoSquare
	s.legalMoves = nil
}

// MoveTo moves the selected piece to (file, rank). promo picks the promotion
// piece; NoPieceType promotes to a queen. A king may also castle by moving
// onto its own rook.
func (s *Session) MoveTo(file, rank int, promo board.PieceType) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, err := board.SquareAt(file, rank)
	if err != nil {
		return board.NoMove, err
	}
	if s.selected == board.NoSquare {
		return board.NoMove, ErrNoSelection
	}

	from := s.selected
	m := s.findMove(from, to, promo)
	if m == board.NoMove {
		s.clearSelection()
		s.redraw()
		return board.NoMove, fmt.Errorf("%s%s: %w", from, to, board.ErrIllegalMove)
	}
	if err := s.play(m); err != nil {
		return board.NoMove, err
	}
	return m, nil
}

// findMove finds the selected piece's legal move to dst.
func (s *Session) findMove(src, dst board.Square, promo board.PieceType) board.Move {
	if promo == board.NoPieceType {
		promo = board.Queen
	}
	for _, move := range s.legalMoves {
		if move.From() != src {
			continue
		}
		if move.To() == dst {
			if move.IsPromotion() && move.Promotion().Type() != promo {
				continue
			}
			return move
		}

		// Kingside: E1→H1 (White) or E8→H8 (Black) should match E1→G1 / E8→G8
		// Queenside: E1→A1 (White) or E8→A8 (Black) should match E1→C1 / E8→C8
		if move.IsCastling() {
			switch {
			case move.Flag() == board.FlagCastleKingside && dst.File() == 7 && dst.Rank() == src.Rank():
				return move
			case move.Flag() == board.FlagCastleQueenside && dst.File() == 0 && dst.Rank() == src.Rank():
				return move
			}
		}
	}
	return board.NoMove
}

// Play plays m in the current position. m is matched against the legal moves
// by origin, destination and promotion.
func (s *Session) Play(m board.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play(m)
}

// PlayText plays a move written in coordinate form ("e2e4") or SAN ("Nf3").
func (s *Session) PlayText(text string) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.history.Current()
	m, err := pos.ParseMove(text)
	if err != nil {
		san, sanErr := board.ParseSAN(text, &pos)
		if sanErr != nil {
			return board.NoMove, fmt.Errorf("move %q: %w", text, sanErr)
		}
		m = san
	}
	if err := s.play(m); err != nil {
		return board.NoMove, err
	}
	return m, nil
}

func (s *Session) play(m board.Move) error {
	pos := s.history.Current()
	log.Printf("[MOVE] Before: SideToMove=%v, Move=%v (from=%v to=%v)",
		pos.SideToMove, m, m.From(), m.To())

	next, err := s.history.Push(m)
	if err != nil {
		return err
	}
	played := next.Moves()[next.Len()-2]

	s.sanHistory = append(s.sanHistory, played.SAN(&pos))
	s.history = next
	s.clearSelection()

	st := s.status()
	log.Printf("[MOVE] After: SideToMove=%v, %s", s.history.Current().SideToMove, st.State)
	s.redraw()
	return nil
}

// Undo takes back the last move. It reports false at the start position.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.history.Len() <= 1 {
		return false
	}
	s.history = s.history.Undo()
	s.sanHistory = s.sanHistory[:len(s.sanHistory)-1]
	s.clearSelection()
	log.Printf("[MOVE] Undo: %d plies left", s.history.Len()-1)
	s.redraw()
	return true
}

// Reset starts a new game at start, keeping the target and store.
func (s *Session) Reset(start board.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = board.NewHistory(start)
	s.sanHistory = nil
	s.clearSelection()
	s.redraw()
}

// Status returns the check state of the side to move.
func (s *Session) Status() board.CheckStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() board.CheckStatus {
	pos := s.history.Current()
	return pos.Status()
}

// History returns the game history. The value is immutable and stays valid
// after further moves.
func (s *Session) History() board.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Records returns the textual position records of the game.
func (s *Session) Records() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Records()
}

// SANHistory returns the moves played in SAN.
func (s *Session) SANHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sanHistory...)
}

// Captures returns the captured pieces in capture order.
func (s *Session) Captures() []board.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Captures()
}

// Save stores the game under id.
func (s *Session) Save(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNoStore
	}
	captures := s.history.Captures()
	letters := make([]string, len(captures))
	for i, p := range captures {
		letters[i] = p.String()
	}
	g := &storage.SavedGame{ID: id, Records: s.history.Records(), Captures: letters}
	if err := s.store.SaveGame(g); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	log.Printf("[STORE] saved game %s (%d plies)", id, g.Plies())
	return nil
}

// Load replaces the game with the one stored under id. The stored records
// are replayed, so a corrupted game is rejected and the session is left as
// it was.
func (s *Session) Load(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNoStore
	}
	g, err := s.store.LoadGame(id)
	if err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}
	h, err := board.LoadHistory(g.Records)
	if err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}

	sans := make([]string, 0, h.Len()-1)
	for i, m := range h.Moves() {
		pos := h.At(i)
		sans = append(sans, m.SAN(&pos))
	}

	s.history = h
	s.sanHistory = sans
	s.clearSelection()
	log.Printf("[STORE] loaded game %s (%d plies)", id, h.Len()-1)
	s.redraw()
	return nil
}

// Frame returns the frame describing the current state.
func (s *Session) Frame() render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

func (s *Session) frame() render.Frame {
	pos := s.history.Current()
	f := render.Frame{
		Boards:     pos.Boards,
		Highlight:  s.legalMoves.Destinations(),
		Selected:   s.selected,
		SideToMove: pos.SideToMove,
		Status:     pos.Status(),
	}
	if moves := s.history.Moves(); len(moves) > 0 {
		f.LastMove = moves[len(moves)-1]
	}
	return f
}

// DrawTo draws the current frame onto t, outside the session's own target.
func (s *Session) DrawTo(t render.Target) error {
	s.mu.Lock()
	f := s.frame()
	s.mu.Unlock()
	return t.Draw(f)
}

// redraw sends the current frame to the target. Drawing failures are logged;
// they never undo a state change.
func (s *Session) redraw() {
	if err := s.target.Draw(s.frame()); err != nil {
		log.Printf("[DRAW] %v", err)
	}
}
