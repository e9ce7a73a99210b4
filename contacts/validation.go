package contacts

import (
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/users"
)

const (
	MinNameLength  = 1
	MinPhoneLength = 6
)

func (n NewContact) Validate() error {
	if err := validateName(n.Name); err != nil {
		return err
	}
	if err := validatePhone(n.Phone); err != nil {
		return err
	}
	return users.ValidateEmail(n.Email)
}

// Validate rejects present fields with bad values. Required text fields and
// the favorite flag cannot be cleared with null; notes and tags can.
func (u Update) Validate() error {
	if u.Name.Set {
		if u.Name.Null {
			return apperrors.Validationf("name cannot be null")
		}
		if err := validateName(u.Name.Value); err != nil {
			return err
		}
	}
	if u.Phone.Set {
		if u.Phone.Null {
			return apperrors.Validationf("phone cannot be null")
		}
		if err := validatePhone(u.Phone.Value); err != nil {
			return err
		}
	}
	if u.Email.Set {
		if u.Email.Null {
			return apperrors.Validationf("email cannot be null")
		}
		if err := users.ValidateEmail(u.Email.Value); err != nil {
			return err
		}
	}
	if u.IsFavorite.Set && u.IsFavorite.Null {
		return apperrors.Validationf("isFavorite cannot be null")
	}
	return nil
}

func validateName(name string) error {
	if len([]rune(name)) < MinNameLength {
		return apperrors.Validationf("name must be at least %d character long", MinNameLength)
	}
	return nil
}

func validatePhone(phone string) error {
	if len([]rune(phone)) < MinPhoneLength {
		return apperrors.Validationf("phone must be at least %d characters long", MinPhoneLength)
	}
	return nil
}
