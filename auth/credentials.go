package auth

import (
	"time"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/token"
	"github.com/jrsteele09/go-contacts-server/users"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and checks passwords and issues and decodes session tokens
type Credentials struct {
	tokens     *token.Manager
	bcryptCost int
}

func NewCredentials(tokens *token.Manager, bcryptCost int) (*Credentials, error) {
	if tokens == nil {
		return nil, errors.New("[NewCredentials] token manager is required")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Credentials{
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}, nil
}

// HashPassword returns a salted bcrypt hash of plaintext
func (c *Credentials) HashPassword(plaintext string) (string, error) {
	hash, err := users.HashPassword(plaintext, c.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.Validationf("password must be at most %d bytes", users.MaxPasswordBytes)
	}
	if err != nil {
		return "", errors.Wrap(err, "Credentials.HashPassword")
	}
	return hash, nil
}

// VerifyPassword never errors; a mismatch or a malformed hash is simply false
func (c *Credentials) VerifyPassword(plaintext, hash string) bool {
	return users.CheckPasswordHash(plaintext, hash)
}

func (c *Credentials) IssueToken(userID string, ttl time.Duration) (string, error) {
	return c.tokens.Issue(userID, ttl)
}

// IssueSessionToken issues a token with the configured expiry window
func (c *Credentials) IssueSessionToken(userID string) (string, error) {
	return c.tokens.IssueDefault(userID)
}

// DecodeToken returns the user ID carried by a valid, unexpired token
func (c *Credentials) DecodeToken(rawToken string) (string, error) {
	return c.tokens.Decode(rawToken)
}
