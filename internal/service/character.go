// Package service implements character sheet business logic over the
// repository.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmelim/local-character-sheets/internal/config"
	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/repositories"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
	"github.com/dmelim/local-character-sheets/internal/schema"
)

// identityNamePath is the data path kept in sync with the top-level name.
const identityNamePath = "identity.characterName"

// characterService implements the CharacterService interface
type characterService struct {
	repo   repositories.CharacterRepository
	schema *schema.Schema
	logger *slog.Logger
}

// NewCharacterService creates a new character service
func NewCharacterService(
	repo repositories.CharacterRepository,
	fieldSchema *schema.Schema,
	logger *slog.Logger,
) services.CharacterService {
	return &characterService{
		repo:   repo,
		schema: fieldSchema,
		logger: logger,
	}
}

// ListCharacters returns summaries of every stored character, newest first.
func (s *characterService) ListCharacters(ctx context.Context) ([]models.CharacterSummary, error) {
	return s.repo.List(ctx)
}

// CreateCharacter creates a new character sheet with a generated id.
func (s *characterService) CreateCharacter(ctx context.Context, req *services.CreateCharacterRequest) (*models.Character, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxCharacterNameLength)),
	); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid create request: %v", err)}
	}

	ch, err := s.repo.Create(ctx, req.Name, uuid.New().String())
	if err != nil {
		return nil, err
	}

	s.logger.Info("character created", "id", ch.ID, "name", ch.Name)
	return ch, nil
}

// GetCharacter returns the full document for an id.
func (s *characterService) GetCharacter(ctx context.Context, id string) (*models.Character, error) {
	ch, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("character %s not found", id)}
	}
	return ch, nil
}

// RenameCharacter renames a character under optimistic concurrency, keeping
// name and data.identity.characterName in sync.
func (s *characterService) RenameCharacter(ctx context.Context, id string, req *services.RenameCharacterRequest) (*models.CharacterSummary, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxCharacterNameLength)),
		validation.Field(&req.ExpectedVersion, validation.Required, validation.Min(1)),
	); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid rename request: %v", err)}
	}

	ch, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("character %s not found", id)}
	}
	if ch.Version != req.ExpectedVersion {
		return nil, &domain.VersionConflictError{Expected: req.ExpectedVersion, Current: ch.Version}
	}

	ch.Name = req.Name
	pathmap.Set(ch.Data, identityNamePath, req.Name)
	ch.Version++
	ch.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, ch); err != nil {
		return nil, err
	}

	s.logger.Info("character renamed", "id", id, "name", ch.Name, "version", ch.Version)

	return &models.CharacterSummary{
		ID:        ch.ID,
		Name:      ch.Name,
		UpdatedAt: ch.UpdatedAt,
		Version:   ch.Version,
	}, nil
}

// UpdateCharacter applies a batch of field edits under optimistic
// concurrency. Unknown paths are dropped so only schema-defined data is
// persisted; a single wrong-typed value rejects the entire batch before
// anything is applied.
func (s *characterService) UpdateCharacter(ctx context.Context, id string, req *services.BatchedUpdateRequest) (*models.UpdateResult, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ExpectedVersion, validation.Required, validation.Min(1)),
		validation.Field(&req.Updates, validation.NotNil),
	); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid update request: %v", err)}
	}

	ch, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("character %s not found", id)}
	}
	if ch.Version != req.ExpectedVersion {
		return nil, &domain.VersionConflictError{Expected: req.ExpectedVersion, Current: ch.Version}
	}

	// Validate the whole batch before touching the document.
	retained := make([]models.FieldUpdate, 0, len(req.Updates))
	for _, update := range req.Updates {
		if update.Path == "" {
			continue
		}
		field, ok := s.schema.Lookup(update.Path)
		if !ok {
			s.logger.Debug("dropping update for unknown field", "character_id", id, "path", update.Path)
			continue
		}
		if !valueMatchesType(field.Type, update.Value) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid value for %s", field.Path)}
		}
		retained = append(retained, update)
	}

	// Apply in order; last write wins for duplicate paths within a batch.
	for _, update := range retained {
		pathmap.Set(ch.Data, update.Path, update.Value)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		ch.Name = name
		pathmap.Set(ch.Data, identityNamePath, name)
	}

	ch.SchemaVersion = models.CurrentSchemaVersion
	ch.Version++
	ch.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, ch); err != nil {
		return nil, err
	}

	s.logger.Info("character updated",
		"id", id,
		"version", ch.Version,
		"fields", len(retained),
	)

	return &models.UpdateResult{Version: ch.Version, UpdatedAt: ch.UpdatedAt}, nil
}

// DeleteCharacter removes a character. Deleting an already-absent character
// succeeds.
func (s *characterService) DeleteCharacter(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("character delete requested", "id", id)
	return nil
}

// valueMatchesType checks a submitted value against a field's declared type.
// Numeric fields accept null so a field can be cleared; JSON decoding hands
// numbers to us as float64, but int is accepted for Go callers.
func valueMatchesType(fieldType schema.FieldType, value any) bool {
	switch fieldType {
	case schema.FieldNumber:
		switch value.(type) {
		case float64, int, nil:
			return true
		}
		return false
	case schema.FieldString:
		_, ok := value.(string)
		return ok
	case schema.FieldBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}
