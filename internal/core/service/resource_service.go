package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tkaing/ecologie-api/internal/core/domain"
	"github.com/tkaing/ecologie-api/internal/core/ports"
)

// ResourceService implements the CRUD use cases of one resource type on top
// of a document repository, plus the credential lifecycle for members/users.
type ResourceService struct {
	desc    domain.Descriptor
	repo    ports.DocumentRepository
	creds   *CredentialService
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

// NewResourceService builds the service for desc. creds may be nil for
// resources without credentials; limiter may be nil to disable login
// throttling.
func NewResourceService(desc domain.Descriptor, repo ports.DocumentRepository, creds *CredentialService, limiter ports.LoginLimiter, logger zerolog.Logger) *ResourceService {
	return &ResourceService{
		desc:    desc,
		repo:    repo,
		creds:   creds,
		limiter: limiter,
		logger:  logger.With().Str("resource", desc.Name).Logger(),
	}
}

// Create persists a validated payload. For generated-credential resources an
// onboarding code is produced, its hash stored, and the plaintext returned
// exactly once in the result. For the others a client-supplied password is
// hashed when present, otherwise the document simply has no credential.
func (s *ResourceService) Create(ctx context.Context, payload map[string]any) (*ports.CreateResult, error) {
	fields := s.desc.Extract(payload)

	var code string
	if s.desc.Credential {
		plaintext := ""
		if s.desc.GeneratedCode {
			code = s.creds.GenerateCode()
			plaintext = code
		} else if supplied, ok := payload[domain.PasswordField].(string); ok && supplied != "" {
			plaintext = supplied
		}
		if plaintext != "" {
			hash, err := s.creds.Hash(plaintext)
			if err != nil {
				return nil, err
			}
			fields[domain.PasswordField] = hash
		}
	}

	doc, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("create failed")
		return nil, err
	}

	s.logger.Info().Str("id", doc.ID).Msg("document created")
	return &ports.CreateResult{Document: s.redact(doc), Code: code}, nil
}

func (s *ResourceService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.redactAll(docs), nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.redact(doc), nil
}

// Search filters by exact match on declared attributes only, so criteria can
// never probe identifiers or stored credential hashes.
func (s *ResourceService) Search(ctx context.Context, criteria map[string]any) ([]domain.Document, error) {
	docs, err := s.repo.FindByCriteria(ctx, s.desc.Extract(criteria))
	if err != nil {
		return nil, err
	}
	return s.redactAll(docs), nil
}

// Update replaces the declared fields of an existing document. The stored
// createdAt and credential hash survive every update; neither can be set
// from client input.
func (s *ResourceService) Update(ctx context.Context, id string, payload map[string]any) (*domain.Document, error) {
	fields := s.desc.Extract(payload)

	doc, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", doc.ID).Msg("document updated")
	return s.redact(doc), nil
}

// Delete checks existence before removing the document, so a missing id
// yields domain.ErrNotFound rather than a bare driver error.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("document deleted")
	return nil
}

// Login authenticates by email. Unknown email yields domain.ErrNotFound,
// a wrong or absent password domain.ErrInvalidCredentials, and an exhausted
// failure budget domain.ErrTooManyAttempts.
func (s *ResourceService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if !s.desc.Credential {
		return nil, domain.ErrLoginNotSupported
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, email)
		if err != nil {
			// Limiter outage must not take logins down with it.
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	doc, err := s.repo.FindOneByField(ctx, "email", email)
	if err != nil {
		return nil, err
	}

	hash, _ := doc.Fields[domain.PasswordField].(string)
	if hash == "" || s.creds.Compare(hash, password) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	token, err := s.creds.Token(s.desc.Name, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", doc.ID).Msg("login succeeded")
	return &ports.LoginResult{Document: s.redact(doc), Token: token}, nil
}

func (s *ResourceService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter record failed")
	}
}

// redact strips the stored credential hash before a document leaves the
// service.
func (s *ResourceService) redact(doc *domain.Document) *domain.Document {
	if !s.desc.Credential || doc == nil {
		return doc
	}
	clone := doc.Clone()
	delete(clone.Fields, domain.PasswordField)
	return clone
}

func (s *ResourceService) redactAll(docs []domain.Document) []domain.Document {
	if !s.desc.Credential {
		return docs
	}
	out := make([]domain.Document, len(docs))
	for i := range docs {
		out[i] = *s.redact(&docs[i])
	}
	return out
}
