package users

import "context"

type UserRepo interface {
	// Create stores a new user. A second user with the same ID fails with ErrConflict.
	Create(ctx context.Context, user *User) error
	// GetByID fails with ErrNotFound when no user has the ID
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail looks a user up by normalised email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
