// ChessPlay - a console chess board with saved games
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/session"
	"github.com/hailam/chesscore/internal/shell"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	dbDir    = flag.String("db", "", "database directory (default: platform data directory)")
	inMemory = flag.Bool("inmem", false, "keep saved games in memory only")
	startFEN = flag.String("fen", board.StartFEN, "starting position")
	gameID   = flag.String("game", "", "saved game to resume")
	quiet    = flag.Bool("quiet", false, "do not redraw the board after every change")
)

func main() {
	flag.Parse()

	if dir := os.Getenv("CHESSPLAY_DB"); *dbDir == "" && dir != "" {
		*dbDir = dir
	}

	store, err := openStorage()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var target render.Target = render.NewTextTarget(os.Stdout)
	if *quiet {
		target = render.Nop
	}

	sess, err := session.NewFromFEN(*startFEN, target, store)
	if err != nil {
		log.Fatal(err)
	}
	if *gameID != "" {
		if err := sess.Load(*gameID); err != nil {
			log.Fatal(err)
		}
	}

	if err := shell.New(sess, store, os.Stdout).Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}

func openStorage() (*storage.Storage, error) {
	switch {
	case *inMemory:
		return storage.OpenInMemory()
	case *dbDir != "":
		return storage.Open(*dbDir)
	default:
		return storage.NewStorage()
	}
}
