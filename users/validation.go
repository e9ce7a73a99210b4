package users

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

// ValidateEmail accepts a bare address (no display name) with a dotted domain
func ValidateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return apperrors.Validationf("email is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed || addr.Name != "" {
		return apperrors.Validationf("value is not a valid email address")
	}
	at := strings.LastIndex(trimmed, "@")
	domain := trimmed[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return apperrors.Validationf("value is not a valid email address")
	}
	return nil
}

// ValidatePassword counts characters for the minimum and bytes for the
// maximum, since bcrypt only accepts up to MaxPasswordBytes
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperrors.Validationf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return apperrors.Validationf("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}
