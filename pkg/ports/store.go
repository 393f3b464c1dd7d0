package ports

import (
	"context"

	"github.com/aretw0/jza/pkg/domain"
)

// ModelStore persists serialized automata under a name.
type ModelStore interface {
	// Save persists the document under name, replacing any previous version.
	Save(ctx context.Context, name string, doc *domain.Document) error

	// Load retrieves the document stored under name.
	// Returns domain.ErrModelNotFound if the model does not exist.
	Load(ctx context.Context, name string) (*domain.Document, error)

	// Delete removes the model. Deleting a missing model is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored model names.
	List(ctx context.Context) ([]string, error)
}
