package ports

import (
	"context"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

// DocumentRepository is the uniform persistence contract every resource type
// shares, parameterized by collection at construction time.
//
// Identifier strings are the database's native id in hex form; a malformed id
// yields domain.ErrInvalidID, a missing document domain.ErrNotFound.
type DocumentRepository interface {
	// Create persists fields as a new document, assigning the identifier
	// and createdAt server-side, and returns the stored document.
	Create(ctx context.Context, fields map[string]any) (*domain.Document, error)

	// FindAll returns every document in the collection, order unspecified.
	FindAll(ctx context.Context) ([]domain.Document, error)

	// FindByID returns the document with the given identifier.
	FindByID(ctx context.Context, id string) (*domain.Document, error)

	// FindByCriteria returns all documents matching an exact-value filter.
	// Empty criteria behaves like FindAll.
	FindByCriteria(ctx context.Context, criteria map[string]any) ([]domain.Document, error)

	// FindOneByField returns the first document whose attribute equals value.
	FindOneByField(ctx context.Context, attribute string, value any) (*domain.Document, error)

	// Update replaces the named fields of an existing document. createdAt is
	// preserved from the stored document, never written from fields.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Document, error)

	// Delete removes the document with the given identifier.
	Delete(ctx context.Context, id string) error
}
