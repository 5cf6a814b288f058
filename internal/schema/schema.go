// Package schema is the static registry of valid dotted data paths and
// their declared primitive types. Only schema-defined fields are ever
// persisted into a character's data mapping.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldType is the declared primitive type of a field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// FieldDef declares a single editable field on the sheet.
type FieldDef struct {
	Path      string    `yaml:"path"`
	Label     string    `yaml:"label"`
	Type      FieldType `yaml:"type"`
	Section   string    `yaml:"section"`
	Multiline bool      `yaml:"multiline,omitempty"`
}

// Schema maps dotted paths to field definitions.
type Schema struct {
	fields []FieldDef
	byPath map[string]FieldDef
}

// New builds a schema from the given definitions. A later definition for an
// already-known path overrides the earlier one.
func New(defs []FieldDef) *Schema {
	s := &Schema{
		fields: make([]FieldDef, 0, len(defs)),
		byPath: make(map[string]FieldDef, len(defs)),
	}
	for _, def := range defs {
		if _, exists := s.byPath[def.Path]; !exists {
			s.fields = append(s.fields, def)
		} else {
			for i := range s.fields {
				if s.fields[i].Path == def.Path {
					s.fields[i] = def
					break
				}
			}
		}
		s.byPath[def.Path] = def
	}
	return s
}

// Default returns the built-in D&D 5e sheet schema.
func Default() *Schema {
	return New(builtinFields)
}

// extensionFile is the YAML shape of a schema extension file.
type extensionFile struct {
	Fields []FieldDef `yaml:"fields"`
}

// Load returns the built-in schema extended with field definitions from the
// given YAML file. Extension fields may also override built-in definitions
// by path.
func Load(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var ext extensionFile
	if err := yaml.Unmarshal(raw, &ext); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	for _, def := range ext.Fields {
		if def.Path == "" {
			return nil, fmt.Errorf("schema file %s: field with empty path", path)
		}
		switch def.Type {
		case FieldString, FieldNumber, FieldBoolean:
		default:
			return nil, fmt.Errorf("schema file %s: field %s has unknown type %q", path, def.Path, def.Type)
		}
	}

	defs := make([]FieldDef, 0, len(builtinFields)+len(ext.Fields))
	defs = append(defs, builtinFields...)
	defs = append(defs, ext.Fields...)
	return New(defs), nil
}

// Lookup returns the definition for a dotted path.
func (s *Schema) Lookup(path string) (FieldDef, bool) {
	def, ok := s.byPath[path]
	return def, ok
}

// Fields returns all field definitions in declaration order.
func (s *Schema) Fields() []FieldDef {
	return s.fields
}

// Sections returns the distinct section names in declaration order.
func (s *Schema) Sections() []string {
	seen := make(map[string]bool)
	var sections []string
	for _, def := range s.fields {
		if !seen[def.Section] {
			seen[def.Section] = true
			sections = append(sections, def.Section)
		}
	}
	return sections
}
