package repositories

import (
	"context"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
)

// CharacterRepository defines durable CRUD over character documents.
type CharacterRepository interface {
	// List enumerates all stored characters sorted by updatedAt descending.
	// Files that fail to parse are skipped, never fatal: one corrupt
	// document must not hide its siblings.
	List(ctx context.Context) ([]models.CharacterSummary, error)

	// Load returns the character with the given id, or (nil, nil) when no
	// document exists for a valid id. A parse failure for an existing file
	// is an error.
	Load(ctx context.Context, id string) (*models.Character, error)

	// Create builds a fresh character at version 1 with the name mirrored
	// into data.identity.characterName, persists it and returns it.
	Create(ctx context.Context, name, id string) (*models.Character, error)

	// Save persists the character atomically; a reader never observes a
	// half-written file.
	Save(ctx context.Context, character *models.Character) error

	// Delete removes the backing file. Deleting an absent document is not
	// an error.
	Delete(ctx context.Context, id string) error
}
