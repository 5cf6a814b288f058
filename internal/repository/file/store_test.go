package file

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/repositories"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
)

func newTestStore(t *testing.T) (repositories.CharacterRepository, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(dir, logger), dir
}

func TestCreateAndLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "Aria", "char-1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.Version != 1 {
		t.Errorf("Create() version = %d, want 1", created.Version)
	}

	loaded, err := store.Load(ctx, "char-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil for existing character")
	}
	if loaded.Name != "Aria" {
		t.Errorf("Load() name = %q, want %q", loaded.Name, "Aria")
	}
	if loaded.Version != 1 {
		t.Errorf("Load() version = %d, want 1", loaded.Version)
	}
	if got, ok := pathmap.Get(loaded.Data, "identity.characterName"); !ok || got != "Aria" {
		t.Errorf("identity.characterName = %v (ok=%v), want Aria", got, ok)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store, _ := newTestStore(t)

	ch, err := store.Load(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ch != nil {
		t.Errorf("Load() = %v, want nil", ch)
	}
}

func TestInvalidIDsNeverTouchDisk(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	badIDs := []string{"../escape", "a/b", "id with spaces", "name.json", "", "über"}
	for _, id := range badIDs {
		t.Run(id, func(t *testing.T) {
			if _, err := store.Load(ctx, id); !errors.Is(err, domain.ErrInvalidID) {
				t.Errorf("Load(%q) error = %v, want ErrInvalidID", id, err)
			}
			if err := store.Delete(ctx, id); !errors.Is(err, domain.ErrInvalidID) {
				t.Errorf("Delete(%q) error = %v, want ErrInvalidID", id, err)
			}
			if _, err := store.Create(ctx, "X", id); !errors.Is(err, domain.ErrInvalidID) {
				t.Errorf("Create(%q) error = %v, want ErrInvalidID", id, err)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			t.Errorf("unexpected file created: %s", entry.Name())
		}
	}
}

func TestSaveRequiresID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), &models.Character{Name: "Nameless"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Save() error = %v, want ErrValidation", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Rin", "char-2"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := store.Delete(ctx, "char-2"); err != nil {
		t.Fatalf("first Delete() error: %v", err)
	}
	if err := store.Delete(ctx, "char-2"); err != nil {
		t.Errorf("second Delete() error: %v, want nil", err)
	}
}

func TestListSkipsCorruptFiles(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Aria", "good-1"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := store.Create(ctx, "Rin", "good-2"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// A corrupt sibling must not hide valid documents.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	// A parseable file missing required fields is skipped too.
	if err := os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{"id":"empty"}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("List() returned %d items, want 2", len(items))
	}
}

func TestListDefaultsMissingVersion(t *testing.T) {
	store, dir := newTestStore(t)

	// A document written before versioning existed.
	legacy := `{
  "schemaVersion": 1,
  "id": "legacy",
  "name": "Old Timer",
  "createdAt": "2020-01-01T00:00:00Z",
  "updatedAt": "2020-01-02T00:00:00Z",
  "data": {}
}`
	if err := os.WriteFile(filepath.Join(dir, "legacy.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List() returned %d items, want 1", len(items))
	}
	if items[0].Version != 1 {
		t.Errorf("legacy version = %d, want 1", items[0].Version)
	}
}

func TestListSortsByUpdatedAtDescending(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "First", "order-1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	second, err := store.Create(ctx, "Second", "order-2")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Push the second character clearly ahead.
	second.UpdatedAt = first.UpdatedAt.Add(time.Hour)
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("List() returned %d items, want 2", len(items))
	}
	if items[0].ID != "order-2" || items[1].ID != "order-1" {
		t.Errorf("List() order = [%s, %s], want [order-2, order-1]", items[0].ID, items[1].ID)
	}
}

func TestLoadPropagatesParseFailure(t *testing.T) {
	store, dir := newTestStore(t)

	if err := os.WriteFile(filepath.Join(dir, "mangled.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if _, err := store.Load(context.Background(), "mangled"); err == nil {
		t.Error("Load() of a corrupt existing file should error, got nil")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Aria", "tmp-check"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "tmp-check.json" && entry.Name() != ".lock" {
			t.Errorf("unexpected leftover file: %s", entry.Name())
		}
	}
}
