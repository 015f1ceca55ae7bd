// Package storage persists saved games in a BadgerDB database.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/slices"
)

const appName = "chessplay"

// Storage keys
const gamePrefix = "game/"

// ErrGameNotFound is returned when no game is stored under an id.
var ErrGameNotFound = errors.New("game not found")

// SavedGame is a stored game: the ordered position records of its history
// plus the capture log, one piece letter per capture.
type SavedGame struct {
	ID        string    `json:"-"`
	Records   []string  `json:"records"`
	Captures  []string  `json:"captures"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plies returns the number of moves played in the game.
func (g *SavedGame) Plies() int {
	if len(g.Records) == 0 {
		return 0
	}
	return len(g.Records) - 1
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// DefaultDir returns the directory saved games live in when none is given:
// $XDG_DATA_HOME/chessplay/games if set, else chessplay/games under the
// user configuration directory. The directory is created if missing.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		base = dir
	}

	dbDir := filepath.Join(base, appName, "games")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	log.Printf("[STORE] database directory: %s", dbDir)
	return dbDir, nil
}

// NewStorage opens the database in DefaultDir.
func NewStorage() (*Storage, error) {
	dbDir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) ([]byte, error) {
	if id == "" || strings.ContainsAny(id, "/ \t\n") {
		return nil, fmt.Errorf("invalid game id %q", id)
	}
	return []byte(gamePrefix + id), nil
}

// SaveGame stores g under g.ID, replacing any previous game with that id.
func (s *Storage) SaveGame(g *SavedGame) error {
	key, err := gameKey(g.ID)
	if err != nil {
		return err
	}
	if len(g.Records) == 0 {
		return fmt.Errorf("save game %s: no records", g.ID)
	}

	g.UpdatedAt = time.Now()
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// LoadGame loads the game stored under id.
func (s *Storage) LoadGame(id string) (*SavedGame, error) {
	key, err := gameKey(id)
	if err != nil {
		return nil, err
	}

	g := &SavedGame{ID: id}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%s: %w", id, ErrGameNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, g)
		})
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGame removes the game stored under id.
func (s *Storage) DeleteGame(id string) error {
	key, err := gameKey(id)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%s: %w", id, ErrGameNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListGames returns the ids of all stored games in sorted order.
func (s *Storage) ListGames() ([]string, error) {
	var ids []string
	prefix := []byte(gamePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, gamePrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(ids)
	return ids, nil
}

// HasGame reports whether a game is stored under id.
func (s *Storage) HasGame(id string) (bool, error) {
	key, err := gameKey(id)
	if err != nil {
		return false, err
	}

	found := false
	err = s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		found = err == nil
		return err
	})
	return found, err
}
