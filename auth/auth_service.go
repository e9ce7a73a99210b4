package auth

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/oauth2"
	"github.com/jrsteele09/go-contacts-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RegisterRequest is the body of a registration call
type RegisterRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	Password string  `json:"password"`
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService is the user directory and the identity resolver. It registers
// users, logs them in, and turns a bearer token back into a user record.
type AuthService struct {
	users       users.UserRepo   // Registered accounts
	credentials *Credentials     // Password hashing and token handling
	nowTime     func() time.Time // nowTime function (injectable for testing)
}

// AuthServiceOption defines a function type to modify the AuthService instance.
type AuthServiceOption func(*AuthService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthServiceOption {
	return func(as *AuthService) {
		as.nowTime = nowFunc
	}
}

// NewAuthService initializes a new AuthService with required dependencies.
func NewAuthService(userRepo users.UserRepo, credentials *Credentials, options ...AuthServiceOption) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewAuthService] Users repo is required")
	}
	if credentials == nil {
		return nil, errors.New("[NewAuthService] credentials are required")
	}

	authService := &AuthService{
		users:       userRepo,
		credentials: credentials,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(authService)
	}

	return authService, nil
}

// Register creates an account keyed by the normalised email and returns its public view.
func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (*users.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := users.NormaliseEmail(req.Email)

	// The unique index still catches a concurrent registration; this check
	// just skips the bcrypt work for the common duplicate case
	if _, err := as.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrConflict
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := as.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		ID:           email,
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    as.nowTime().UTC().Truncate(time.Millisecond),
	}
	if err := as.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user", user.ID).Msg("user registered")
	public := user.Public()
	return &public, nil
}

// Login checks the password and returns a bearer token. An unknown email and
// a wrong password both fail with ErrLoginFailed.
func (as *AuthService) Login(ctx context.Context, req LoginRequest) (*oauth2.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := as.users.GetByEmail(ctx, users.NormaliseEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, err
	}
	if !as.credentials.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrLoginFailed
	}

	accessToken, err := as.credentials.IssueSessionToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Login] failed to issue token")
	}
	return oauth2.NewBearerTokenResponse(accessToken), nil
}

// ResolveCaller returns the user a bearer token was issued to. Every failure to
// establish an identity is ErrUnauthorized; a store failure is passed through.
func (as *AuthService) ResolveCaller(ctx context.Context, rawToken string) (*users.User, error) {
	userID, err := as.credentials.DecodeToken(rawToken)
	if err != nil {
		return nil, unauthorized(err)
	}

	user, err := as.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, unauthorized(err)
		}
		return nil, err
	}
	return user, nil
}

// Me projects the resolved caller to its public view
func (as *AuthService) Me(user *users.User) users.PublicUser {
	return user.Public()
}
