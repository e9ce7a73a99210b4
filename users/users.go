package users

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt input limit
)

// User is a registered account. The ID is the normalised email, so there is
// exactly one user per email regardless of casing.
type User struct {
	ID           string    `json:"id" bson:"_id"`                        // Normalised email
	Email        string    `json:"email" bson:"email"`                   // Normalised email
	Name         *string   `json:"name,omitempty" bson:"name,omitempty"` // Optional display name
	PasswordHash string    `json:"-" bson:"passwordHash"`                // Hashed password - never serialize
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`           // Registration time
}

// PublicUser is the view of a User returned to clients
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// NormaliseEmail lower-cases and trims an email so it can be used as a user ID
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. Malformed hashes report false.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
