package models

import (
	"time"
)

// CurrentSchemaVersion is stamped on every saved character. Reserved for
// future migrations.
const CurrentSchemaVersion = 1

// Character is one sheet, persisted as a single pretty-printed JSON file
// named after its ID. Version increments by exactly 1 on every successful
// mutation and serves as an optimistic lock.
type Character struct {
	SchemaVersion int            `json:"schemaVersion"`
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Version       int            `json:"version"`
	Data          map[string]any `json:"data"`
}

// CharacterSummary is the listing view of a character. Name duplicates
// data.identity.characterName so listings never need to open the full
// document.
type CharacterSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"version"`
}

// FieldUpdate assigns a value to one dotted data path.
type FieldUpdate struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// UpdateResult is returned from a batched update. The full document is
// deliberately omitted; the client already holds the edited state.
type UpdateResult struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}
