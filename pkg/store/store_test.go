package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/board"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

func testBoard(id string) *board.Board {
	p := geom.V(0, 0)
	return &board.Board{
		ID:   id,
		Name: "Board " + id,
		Grid: geom.V(4, 4),
		Widgets: []board.Widget{
			{ID: "clock", Type: "Clock", Size: geom.V(2, 2), Position: &p},
			{ID: "feed", Size: geom.V(4, 1)},
		},
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if err := s.Put(ctx, testBoard("home")); err != nil {
				t.Fatalf("Put error: %v", err)
			}
			got, err := s.Get(ctx, "home")
			if err != nil {
				t.Fatalf("Get error: %v", err)
			}
			if got.Name != "Board home" || len(got.Widgets) != 2 || got.Widgets[0].Position == nil {
				t.Errorf("Get = %+v", got)
			}

			// Put overwrites.
			b := testBoard("home")
			b.Name = "renamed"
			if err := s.Put(ctx, b); err != nil {
				t.Fatalf("second Put error: %v", err)
			}
			got, _ = s.Get(ctx, "home")
			if got.Name != "renamed" {
				t.Errorf("Name after overwrite = %q", got.Name)
			}

			if err := s.Delete(ctx, "home"); err != nil {
				t.Fatalf("Delete error: %v", err)
			}
			if _, err := s.Get(ctx, "home"); !errs.Is(err, errs.ErrCodeBoardNotFound) {
				t.Errorf("Get after Delete = %v, want BOARD_NOT_FOUND", err)
			}
			if err := s.Delete(ctx, "home"); !errs.Is(err, errs.ErrCodeBoardNotFound) {
				t.Errorf("second Delete = %v, want BOARD_NOT_FOUND", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"zeta", "alpha", "mid"} {
				if err := s.Put(ctx, testBoard(id)); err != nil {
					t.Fatalf("Put(%s) error: %v", id, err)
				}
			}
			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List error: %v", err)
			}
			want := []string{"alpha", "mid", "zeta"}
			if len(list) != len(want) {
				t.Fatalf("List returned %d boards, want %d", len(list), len(want))
			}
			for i, sum := range list {
				if sum.ID != want[i] {
					t.Errorf("list[%d].ID = %q, want %q", i, sum.ID, want[i])
				}
				if sum.Widgets != 2 || !sum.Grid.Equal(geom.V(4, 4)) || sum.UpdatedAt.IsZero() {
					t.Errorf("list[%d] = %+v", i, sum)
				}
			}
		})
	}
}

func TestStorePutRejects(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		b    *board.Board
		code errs.Code
	}{
		{"nil", nil, errs.ErrCodeInvalidInput},
		{"empty id", testBoard(""), errs.ErrCodeInvalidInput},
		{"path id", testBoard("../etc"), errs.ErrCodeInvalidInput},
		{"invalid board", &board.Board{ID: "x", Grid: geom.V(0, 0)}, errs.ErrCodeInvalidGrid},
	}
	for name, s := range backends(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				if err := s.Put(ctx, tt.b); !errs.Is(err, tt.code) {
					t.Errorf("Put = %v, want code %s", err, tt.code)
				}
			})
		}
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	b := testBoard("home")
	if err := s.Put(ctx, b); err != nil {
		t.Fatal(err)
	}
	b.Widgets[0].ID = "mutated"

	got, _ := s.Get(ctx, "home")
	if got.Widgets[0].ID != "clock" {
		t.Error("store shares the board passed to Put")
	}
	got.Name = "mutated"
	again, _ := s.Get(ctx, "home")
	if again.Name != "Board home" {
		t.Error("store shares the board returned by Get")
	}
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, testBoard("home")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "home" {
		t.Errorf("List = %+v, want only home", list)
	}

	info, err := os.Stat(filepath.Join(dir, "home.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("board file mode = %o, want 600", perm)
	}
	if s.Path() != dir {
		t.Errorf("Path() = %q, want %q", s.Path(), dir)
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoConfig{URI: "not-a-uri"}); err == nil {
		t.Error("NewMongoStore should reject an invalid URI")
	}
}
