package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/rivercross/pkg/domain"
)

// Store implements ports.SolutionStore using the local filesystem.
// It stores reports as JSON files named after the puzzle fingerprint.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".rivercross/solutions".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".rivercross", "solutions")
	}
	return &Store{BasePath: basePath}
}

// Save persists the report to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, fingerprint string, report *domain.Report) error {
	if err := checkKey(fingerprint); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure solution directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, fingerprint+".json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+fingerprint+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing solution file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to solution file: %w", err)
	}
	return nil
}

// Load retrieves a report from its JSON file.
func (s *Store) Load(ctx context.Context, fingerprint string) (*domain.Report, error) {
	if err := checkKey(fingerprint); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.BasePath, fingerprint+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSolutionNotFound
		}
		return nil, fmt.Errorf("failed to read solution file: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Delete removes the report file.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	if err := checkKey(fingerprint); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.BasePath, fingerprint+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete solution file: %w", err)
	}
	return nil
}

// List returns the cached fingerprints.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}

	var fingerprints []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		fingerprints = append(fingerprints, strings.TrimSuffix(name, ".json"))
	}
	return fingerprints, nil
}

func checkKey(fingerprint string) error {
	if fingerprint == "" {
		return fmt.Errorf("fingerprint cannot be empty")
	}
	if strings.ContainsAny(fingerprint, `/\`) || fingerprint == "." || fingerprint == ".." {
		return fmt.Errorf("invalid fingerprint %q", fingerprint)
	}
	return nil
}
