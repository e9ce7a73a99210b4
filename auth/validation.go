package auth

import (
	"github.com/jrsteele09/go-contacts-server/users"
)

func (r RegisterRequest) Validate() error {
	if err := users.ValidateEmail(r.Email); err != nil {
		return err
	}
	return users.ValidatePassword(r.Password)
}

// Validate only checks the shape of the email. Password length is not
// enforced at login so older accounts are never locked out by a rule change.
func (r LoginRequest) Validate() error {
	return users.ValidateEmail(r.Email)
}
