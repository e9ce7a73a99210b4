package auth

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

// ErrLoginFailed is returned for an unknown email and for a wrong password alike
var ErrLoginFailed = fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials)

// unauthorized keeps cause in the chain for logging while classifying the
// failure as ErrUnauthorized
func unauthorized(cause error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, cause)
}
