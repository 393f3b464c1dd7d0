// Package file stores models as JSON or YAML documents in a directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jza/pkg/domain"
)

// Format selects the on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Store implements ports.ModelStore using the local filesystem.
type Store struct {
	BasePath string
	format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects JSON (the default) or YAML documents.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".jza/models".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".jza", "models")
	}
	s := &Store{BasePath: basePath, format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ext() string {
	if s.format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (s *Store) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return filepath.Join(s.BasePath, name+s.ext()), nil
}

func (s *Store) marshal(doc *domain.Document) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (s *Store) unmarshal(data []byte, doc *domain.Document) error {
	if s.format == FormatYAML {
		return yaml.Unmarshal(data, doc)
	}
	return json.Unmarshal(data, doc)
}

// Save writes the document atomically: the data goes to a temporary file in
// the same directory, is synced, and is then renamed over the destination.
func (s *Store) Save(ctx context.Context, name string, doc *domain.Document) error {
	destPath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}

	data, err := s.marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+s.ext()+".part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
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

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing model file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to model file: %w", err)
	}
	return nil
}

// Load reads the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	filePath, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var doc domain.Document
	if err := s.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, name, err)
	}
	return &doc, nil
}

// Delete removes the model file.
func (s *Store) Delete(ctx context.Context, name string) error {
	filePath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// List returns the names of all stored models in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var names []string
	for _, entry := range entries {
		n := entry.Name()
		if entry.IsDir() || strings.HasPrefix(n, "tmp-") || filepath.Ext(n) != s.ext() {
			continue
		}
		names = append(names, strings.TrimSuffix(n, s.ext()))
	}
	slices.Sort(names)
	return names, nil
}
