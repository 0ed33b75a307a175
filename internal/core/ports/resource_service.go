package ports

import (
	"context"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

// CreateResult is returned after creating a document. Code carries the
// one-time onboarding code for generated-credential resources (members) and
// is empty otherwise.
type CreateResult struct {
	Document *domain.Document
	Code     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Document *domain.Document
	Token    string
}

// ResourceService defines the use-case operations of one resource type.
type ResourceService interface {
	Create(ctx context.Context, payload map[string]any) (*CreateResult, error)
	List(ctx context.Context) ([]domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	Search(ctx context.Context, criteria map[string]any) ([]domain.Document, error)
	Update(ctx context.Context, id string, payload map[string]any) (*domain.Document, error)
	Delete(ctx context.Context, id string) error

	// Login authenticates by email and plaintext password. Only credential
	// resources (members, users) support it.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginLimiter bounds repeated login failures per account.
type LoginLimiter interface {
	// TooManyAttempts reports whether the account has exhausted its failure
	// budget for the current window.
	TooManyAttempts(ctx context.Context, email string) (bool, error)

	// RecordFailure counts one failed attempt against the account.
	RecordFailure(ctx context.Context, email string) error

	// Reset clears the account's failure count after a successful login.
	Reset(ctx context.Context, email string) error
}
