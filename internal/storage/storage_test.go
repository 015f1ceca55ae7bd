package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var sampleRecords = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3",
}

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openTestStorage(t)

	t.Run("SaveAndLoad", func(t *testing.T) {
		g := &SavedGame{ID: "opening", Records: sampleRecords, Captures: []string{}}
		if err := s.SaveGame(g); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}

		loaded, err := s.LoadGame("opening")
		if err != nil {
			t.Fatalf("LoadGame: %v", err)
		}
		if loaded.ID != "opening" {
			t.Errorf("ID = %q, want opening", loaded.ID)
		}
		if len(loaded.Records) != 2 || loaded.Records[1] != sampleRecords[1] {
			t.Errorf("Records = %v", loaded.Records)
		}
		if loaded.Plies() != 1 {
			t.Errorf("Plies() = %d, want 1", loaded.Plies())
		}
		if loaded.UpdatedAt.IsZero() {
			t.Error("UpdatedAt not set")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		g := &SavedGame{ID: "opening", Records: sampleRecords[:1]}
		if err := s.SaveGame(g); err != nil {
			t.Fatal(err)
		}
		loaded, err := s.LoadGame("opening")
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Plies() != 0 {
			t.Errorf("Plies() = %d after overwrite, want 0", loaded.Plies())
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := s.LoadGame("missing"); !errors.Is(err, ErrGameNotFound) {
			t.Errorf("LoadGame(missing) error = %v, want ErrGameNotFound", err)
		}
		if err := s.DeleteGame("missing"); !errors.Is(err, ErrGameNotFound) {
			t.Errorf("DeleteGame(missing) error = %v, want ErrGameNotFound", err)
		}
	})

	t.Run("InvalidID", func(t *testing.T) {
		for _, id := range []string{"", "a/b", "two words"} {
			if err := s.SaveGame(&SavedGame{ID: id, Records: sampleRecords}); err == nil {
				t.Errorf("SaveGame(%q) succeeded", id)
			}
		}
		if err := s.SaveGame(&SavedGame{ID: "empty"}); err == nil {
			t.Error("SaveGame without records succeeded")
		}
	})
}

func TestListAndDelete(t *testing.T) {
	s := openTestStorage(t)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := s.SaveGame(&SavedGame{ID: id, Records: sampleRecords}); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(ids) != len(want) {
		t.Fatalf("ListGames() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListGames()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if err := s.DeleteGame("mid"); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.HasGame("mid"); err != nil || ok {
		t.Errorf("HasGame(mid) = %v, %v after delete", ok, err)
	}
	if ok, err := s.HasGame("alpha"); err != nil || !ok {
		t.Errorf("HasGame(alpha) = %v, %v", ok, err)
	}
	if ok, err := s.HasGame("alp"); err != nil || ok {
		t.Errorf("HasGame(alp) = %v, %v; a key prefix is not a game", ok, err)
	}
	if _, err := s.HasGame("bad id"); err == nil {
		t.Error("HasGame accepted an id with a space")
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveGame(&SavedGame{ID: "kept", Records: sampleRecords}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	g, err := s.LoadGame("kept")
	if err != nil {
		t.Fatalf("LoadGame after reopen: %v", err)
	}
	if len(g.Records) != len(sampleRecords) {
		t.Errorf("Records = %v", g.Records)
	}
}

func TestDefaultDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dbDir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir failed: %v", err)
	}
	if want := filepath.Join(base, appName, "games"); dbDir != want {
		t.Errorf("DefaultDir() = %s, want %s", dbDir, want)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
