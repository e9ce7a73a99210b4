package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/pkg/errors"
)

const defaultAccessTokenExpiry = 30 * time.Minute

// Manager issues and decodes stateless session tokens. Nothing is persisted:
// a token is valid while its signature checks out and its exp has not passed.
type Manager struct {
	signer            Signer
	accessTokenExpiry time.Duration
	nowFunc           func() time.Time
}

type ManagerOption func(*Manager)

// WithTokenExpiry sets the expiry used by IssueDefault
func WithTokenExpiry(accessTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = accessTokenExpiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(signer Signer, options ...ManagerOption) (*Manager, error) {
	if signer == nil {
		return nil, errors.New("[token.New] signer is required")
	}

	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry <= 0 {
		m.accessTokenExpiry = defaultAccessTokenExpiry
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m, nil
}

// AccessTokenExpiry is the window used by IssueDefault
func (c *Manager) AccessTokenExpiry() time.Duration {
	return c.accessTokenExpiry
}

// Issue signs a token for userID that expires ttl from now
func (c *Manager) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("Manager.Issue: empty subject")
	}
	if ttl <= 0 {
		return "", errors.Errorf("Manager.Issue: ttl must be positive, got %s", ttl)
	}

	now := c.nowFunc()
	claims := jwt.MapClaims{
		"sub": userID,              // The user the session belongs to
		"iat": now.Unix(),          // Issued At
		"exp": now.Add(ttl).Unix(), // Expiry: decode fails at or after this instant
		"jti": uuid.New().String(), // Unique token ID
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "Manager.Issue")
	}
	return signed, nil
}

// IssueDefault signs a token using the configured expiry window
func (c *Manager) IssueDefault(userID string) (string, error) {
	return c.Issue(userID, c.accessTokenExpiry)
}

// Decode verifies the signature and expiry of rawToken and returns its subject.
// Failures are reported as ErrTokenExpired or ErrInvalidToken, never a panic.
func (c *Manager) Decode(rawToken string) (string, error) {
	if strings.TrimSpace(rawToken) == "" {
		return "", apperrors.ErrInvalidToken
	}

	parsed, err := jwt.Parse(
		rawToken,
		c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.nowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.Wrapf(apperrors.ErrInvalidToken, "%s", err.Error())
	}
	if !parsed.Valid {
		return "", apperrors.ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperrors.ErrInvalidToken
	}
	return sub, nil
}
