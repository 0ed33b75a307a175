package service

import (
	"math/rand/v2"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

const (
	codeLength  = 8
	codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CredentialService generates onboarding codes, hashes and verifies stored
// passwords, and signs login tokens.
//
// Passwords are stored as salted bcrypt hashes. The original reversible
// AES-with-shared-key scheme was dropped deliberately: a stored credential
// must not be recoverable.
type CredentialService struct {
	jwtSecret string
	tokenTTL  time.Duration
}

func NewCredentialService(jwtSecret string, tokenTTL time.Duration) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &CredentialService{jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// GenerateCode returns an 8-character alphanumeric onboarding code. The code
// is a one-time bootstrap credential handed to a new member, not a security
// boundary, so a non-cryptographic source is acceptable.
func (s *CredentialService) GenerateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.IntN(len(codeCharset))]
	}
	return string(b)
}

// Hash returns the bcrypt hash of plaintext.
func (s *CredentialService) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks plaintext against a stored hash.
func (s *CredentialService) Compare(hash, plaintext string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Token signs an HS256 JWT for an authenticated document.
func (s *CredentialService) Token(resource string, doc *domain.Document) (string, error) {
	claims := jwt.MapClaims{
		"sub":      doc.ID,
		"resource": resource,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	if email, ok := doc.Fields["email"].(string); ok {
		claims["email"] = email
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
