package contacts

import (
	"context"
	"time"
)

// Repo persists contacts. Every lookup and mutation is scoped to ownerID, and a
// contact owned by someone else is reported as ErrNotFound.
type Repo interface {
	Insert(ctx context.Context, contact *Contact) error
	// List returns the owner's matching contacts, most recently created first
	List(ctx context.Context, ownerID string, filter Filter) ([]*Contact, error)
	Get(ctx context.Context, ownerID, id string) (*Contact, error)
	// Update applies the present fields of u and stamps updatedAt in a single write
	Update(ctx context.Context, ownerID, id string, u Update, updatedAt time.Time) (*Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
}
