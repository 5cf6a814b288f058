// Package file implements the character repository as one pretty-printed
// JSON document per character in a single directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/repositories"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
)

// idPattern keeps ids path safe: no separators, no traversal.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// Store persists characters under dir, one <id>.json file each. Writes go
// through a uniquely-named temp file and an atomic rename, so readers never
// observe a partial document. The flock guards individual file operations
// against concurrent processes; it is never held across a read-modify-write,
// so the version field remains the only lost-update protection.
type Store struct {
	dir      string
	fileLock *flock.Flock
	logger   *slog.Logger
}

// NewStore creates a character store rooted at dir. The directory is created
// on first use.
func NewStore(dir string, logger *slog.Logger) repositories.CharacterRepository {
	return &Store{
		dir:      dir,
		fileLock: flock.New(filepath.Join(dir, ".lock")),
		logger:   logger,
	}
}

// List enumerates every parseable character file, newest first. Corrupt or
// incomplete files are skipped with a debug log, never fatal.
func (s *Store) List(ctx context.Context) ([]models.CharacterSummary, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	items := make([]models.CharacterSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Debug("skipping unreadable character file", "file", entry.Name(), "error", err)
			continue
		}

		var ch models.Character
		if err := json.Unmarshal(raw, &ch); err != nil {
			s.logger.Debug("skipping corrupt character file", "file", entry.Name(), "error", err)
			continue
		}
		if ch.ID == "" || ch.Name == "" || ch.UpdatedAt.IsZero() {
			s.logger.Debug("skipping incomplete character file", "file", entry.Name())
			continue
		}

		version := ch.Version
		if version == 0 {
			// Documents written before versioning existed.
			version = 1
		}

		items = append(items, models.CharacterSummary{
			ID:        ch.ID,
			Name:      ch.Name,
			UpdatedAt: ch.UpdatedAt,
			Version:   version,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	return items, nil
}

// Load reads a single character. Missing file yields (nil, nil); unlike
// List, a parse failure for a file that does exist propagates.
func (s *Store) Load(ctx context.Context, id string) (*models.Character, error) {
	path, err := s.characterPath(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read character %s: %w", id, err)
	}

	var ch models.Character
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, fmt.Errorf("failed to parse character %s: %w", id, err)
	}
	if ch.Data == nil {
		ch.Data = make(map[string]any)
	}

	return &ch, nil
}

// Create builds and persists a fresh character at version 1.
func (s *Store) Create(ctx context.Context, name, id string) (*models.Character, error) {
	now := time.Now().UTC()
	ch := &models.Character{
		SchemaVersion: models.CurrentSchemaVersion,
		ID:            id,
		Name:          name,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
		Data:          make(map[string]any),
	}

	// Keep name mirrored in data.identity.characterName.
	pathmap.Set(ch.Data, "identity.characterName", name)

	if err := s.Save(ctx, ch); err != nil {
		return nil, err
	}

	s.logger.Info("character created", "id", id, "name", name)
	return ch, nil
}

// Save writes the character through a uniquely-named temp file in the same
// directory followed by an atomic rename.
func (s *Store) Save(ctx context.Context, ch *models.Character) error {
	if ch.ID == "" {
		return &domain.ValidationError{Message: "character must have an id"}
	}

	target, err := s.characterPath(ch.ID)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(ch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal character %s: %w", ch.ID, err)
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer release()

	tmp := fmt.Sprintf("%s.tmp-%s", target, uuid.New().String())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Delete removes the character file. A missing file counts as success.
func (s *Store) Delete(ctx context.Context, id string) error {
	path, err := s.characterPath(id)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete character %s: %w", id, err)
	}

	s.logger.Info("character deleted", "id", id)
	return nil
}

// characterPath validates the id before building a filesystem path, so a
// malicious id never reaches disk.
func (s *Store) characterPath(id string) (string, error) {
	if !idPattern.MatchString(id) {
		return "", &domain.InvalidIDError{ID: id}
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// acquireLock takes the cross-process lock for the duration of one file
// operation. Callers must invoke the returned release function.
func (s *Store) acquireLock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire file lock: %w", err)
	}
	if !locked {
		return nil, errors.New("could not acquire file lock")
	}

	return func() { _ = s.fileLock.Unlock() }, nil
}
