package loam

import (
	"strings"

	"github.com/aretw0/rivercross/pkg/adapters/file"
)

// PuzzleMetadata represents a puzzle document: the whole file for JSON/YAML,
// or the frontmatter of a Markdown file whose body becomes the description.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type PuzzleMetadata struct {
	ID               string              `json:"id" mapstructure:"id"`
	Name             string              `json:"name" mapstructure:"name"`
	Description      string              `json:"description" mapstructure:"description"`
	Characters       any                 `json:"characters" mapstructure:"characters"`
	Boat             file.BoatDefinition `json:"boat" mapstructure:"boat"`
	RestrictedStates []any               `json:"restricted_states" mapstructure:"restricted_states"`
	InitialState     any                 `json:"initial_state" mapstructure:"initial_state"`
}

// Definition converts the metadata into the shared definition form.
func (m PuzzleMetadata) Definition(content string) file.Definition {
	desc := m.Description
	if body := strings.TrimSpace(content); body != "" && desc == "" {
		desc = body
	}
	return file.Definition{
		Name:             m.Name,
		Description:      desc,
		Characters:       m.Characters,
		Boat:             m.Boat,
		RestrictedStates: m.RestrictedStates,
		InitialState:     m.InitialState,
	}
}
