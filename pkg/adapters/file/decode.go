package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/rivercross/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names a definition encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported puzzle file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Decode parses a definition.
func Decode(data []byte, format Format) (domain.Puzzle, error) {
	var def Definition
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&def); err != nil {
			return domain.Puzzle{}, fmt.Errorf("%w: decode json: %w", domain.ErrInvalidPuzzle, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return domain.Puzzle{}, fmt.Errorf("%w: decode yaml: %w", domain.ErrInvalidPuzzle, err)
		}
	default:
		return domain.Puzzle{}, fmt.Errorf("unsupported format %q", format)
	}
	return def.Puzzle()
}

// LoadPuzzle reads a single definition file. The file name (without extension)
// becomes the puzzle name when the file does not set one.
func LoadPuzzle(path string) (domain.Puzzle, error) {
	format, err := FormatOf(path)
	if err != nil {
		return domain.Puzzle{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Puzzle{}, fmt.Errorf("%w: %s", domain.ErrPuzzleNotFound, path)
		}
		return domain.Puzzle{}, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	p, err := Decode(data, format)
	if err != nil {
		return domain.Puzzle{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}
