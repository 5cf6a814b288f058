package config

const (
	// MaxCharacterNameLength is the maximum length for character names.
	// Names should be short and descriptive; the sheet itself holds the
	// long-form text.
	MaxCharacterNameLength = 200
)
