package contacts

import (
	"slices"
	"strings"
	"time"

	"github.com/jrsteele09/go-contacts-server/internal/utils"
)

// Contact is an address book entry tagged with the user that owns it
type Contact struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"userId" bson:"userId"`
	Name       string    `json:"name" bson:"name"`
	Phone      string    `json:"phone" bson:"phone"`
	Email      string    `json:"email" bson:"email"`
	Notes      *string   `json:"notes" bson:"notes"`
	Tags       []string  `json:"tags" bson:"tags"`
	IsFavorite bool      `json:"isFavorite" bson:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewContact holds the caller supplied fields of a contact being created
type NewContact struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Notes      *string  `json:"notes"`
	Tags       []string `json:"tags"`
	IsFavorite *bool    `json:"isFavorite"`
}

// Update is a partial update. Only fields with Set are applied; a field that
// was never sent is left untouched, which is not the same as sending null.
type Update struct {
	Name       utils.Optional[string]   `json:"name"`
	Phone      utils.Optional[string]   `json:"phone"`
	Email      utils.Optional[string]   `json:"email"`
	Notes      utils.Optional[*string]  `json:"notes"`
	Tags       utils.Optional[[]string] `json:"tags"`
	IsFavorite utils.Optional[bool]     `json:"isFavorite"`
}

// IsEmpty reports whether the update carries no fields at all
func (u Update) IsEmpty() bool {
	return !u.Name.Set && !u.Phone.Set && !u.Email.Set && !u.Notes.Set && !u.Tags.Set && !u.IsFavorite.Set
}

// Apply copies the present fields onto c. It does not touch UpdatedAt.
func (u Update) Apply(c *Contact) {
	if u.Name.Set {
		c.Name = u.Name.Value
	}
	if u.Phone.Set {
		c.Phone = u.Phone.Value
	}
	if u.Email.Set {
		c.Email = u.Email.Value
	}
	if u.Notes.Set {
		c.Notes = u.Notes.Value
	}
	if u.Tags.Set {
		c.Tags = utils.NonNil(slices.Clone(u.Tags.Value))
	}
	if u.IsFavorite.Set {
		c.IsFavorite = u.IsFavorite.Value
	}
}

// Filter narrows a listing. Empty Search and Tag, and a nil Favorite, match everything.
type Filter struct {
	Search   string
	Tag      string
	Favorite *bool
}

// Matches reports whether c satisfies every supplied filter
func (f Filter) Matches(c *Contact) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Phone), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			return false
		}
	}
	if f.Tag != "" && !slices.Contains(c.Tags, f.Tag) {
		return false
	}
	if f.Favorite != nil && c.IsFavorite != *f.Favorite {
		return false
	}
	return true
}
