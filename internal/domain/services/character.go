package services

import (
	"context"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
)

// CreateCharacterRequest creates a new character sheet.
type CreateCharacterRequest struct {
	Name string `json:"name"`
}

// RenameCharacterRequest renames a character under optimistic concurrency.
type RenameCharacterRequest struct {
	Name            string `json:"name"`
	ExpectedVersion int    `json:"expectedVersion"`
}

// BatchedUpdateRequest applies a batch of field edits under optimistic
// concurrency. Name, when non-blank, renames the character in the same
// write.
type BatchedUpdateRequest struct {
	ExpectedVersion int                  `json:"expectedVersion"`
	Name            string               `json:"name,omitempty"`
	Updates         []models.FieldUpdate `json:"updates"`
}

// CharacterService defines character sheet business logic.
type CharacterService interface {
	ListCharacters(ctx context.Context) ([]models.CharacterSummary, error)
	CreateCharacter(ctx context.Context, req *CreateCharacterRequest) (*models.Character, error)
	GetCharacter(ctx context.Context, id string) (*models.Character, error)
	RenameCharacter(ctx context.Context, id string, req *RenameCharacterRequest) (*models.CharacterSummary, error)
	UpdateCharacter(ctx context.Context, id string, req *BatchedUpdateRequest) (*models.UpdateResult, error)
	DeleteCharacter(ctx context.Context, id string) error
}
