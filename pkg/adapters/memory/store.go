// Package memory provides an in-process model store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/jza/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Document),
	}
}

func clone(doc *domain.Document) *domain.Document {
	return &domain.Document{
		States:      slices.Clone(doc.States),
		Transitions: slices.Clone(doc.Transitions),
	}
}

// Save keeps a copy of the document.
func (s *Store) Save(ctx context.Context, name string, doc *domain.Document) error {
	copied := clone(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored document.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	return clone(doc), nil
}

// Delete removes the model.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored model names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
