package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the services and mapped to HTTP statuses by the server
var (
	// Registration
	ErrConflict = errors.New("user with this email already exists")

	// Authentication errors
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Ownership scoped lookups
	ErrNotFound = errors.New("not found")

	// Input errors
	ErrValidation = errors.New("validation error")

	// Store errors
	ErrServiceUnavailable = errors.New("database error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf returns an ErrValidation carrying a formatted message
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Unavailable marks a store failure. The driver error stays in the chain.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrServiceUnavailable, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
