package fakecontactrepo

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

var _ contacts.Repo = (*FakeContactRepo)(nil)

type storedContact struct {
	contact contacts.Contact
	seq     int
}

type FakeContactRepo struct {
	contacts map[string]*storedContact
	seq      int
	lock     sync.RWMutex

	// Err, when set, is returned by every call to simulate an unreachable store
	Err error
}

func NewFakeContactRepo() *FakeContactRepo {
	return &FakeContactRepo{
		contacts: make(map[string]*storedContact),
	}
}

func (r *FakeContactRepo) Insert(_ context.Context, c *contacts.Contact) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.Err != nil {
		return apperrors.Unavailable("FakeContactRepo.Insert", r.Err)
	}
	if _, ok := r.contacts[c.ID]; ok {
		return apperrors.Unavailable("FakeContactRepo.Insert", apperrors.ErrConflict)
	}
	r.seq++
	r.contacts[c.ID] = &storedContact{contact: copyContact(c), seq: r.seq}
	return nil
}

func (r *FakeContactRepo) List(_ context.Context, ownerID string, filter contacts.Filter) ([]*contacts.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.Err != nil {
		return nil, apperrors.Unavailable("FakeContactRepo.List", r.Err)
	}

	matched := make([]*storedContact, 0)
	for _, sc := range r.contacts {
		if sc.contact.UserID != ownerID || !filter.Matches(&sc.contact) {
			continue
		}
		matched = append(matched, sc)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.contact.CreatedAt.Equal(b.contact.CreatedAt) {
			return a.contact.CreatedAt.After(b.contact.CreatedAt)
		}
		return a.seq > b.seq
	})

	list := make([]*contacts.Contact, 0, len(matched))
	for _, sc := range matched {
		c := copyContact(&sc.contact)
		list = append(list, &c)
	}
	return list, nil
}

func (r *FakeContactRepo) Get(_ context.Context, ownerID, id string) (*contacts.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.Err != nil {
		return nil, apperrors.Unavailable("FakeContactRepo.Get", r.Err)
	}
	sc, ok := r.owned(ownerID, id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := copyContact(&sc.contact)
	return &c, nil
}

func (r *FakeContactRepo) Update(_ context.Context, ownerID, id string, u contacts.Update, updatedAt time.Time) (*contacts.Contact, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.Err != nil {
		return nil, apperrors.Unavailable("FakeContactRepo.Update", r.Err)
	}
	sc, ok := r.owned(ownerID, id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u.Apply(&sc.contact)
	sc.contact.UpdatedAt = updatedAt
	c := copyContact(&sc.contact)
	return &c, nil
}

func (r *FakeContactRepo) Delete(_ context.Context, ownerID, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.Err != nil {
		return apperrors.Unavailable("FakeContactRepo.Delete", r.Err)
	}
	if _, ok := r.owned(ownerID, id); !ok {
		return apperrors.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

// Len returns the number of stored contacts across all owners
func (r *FakeContactRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.contacts)
}

func (r *FakeContactRepo) owned(ownerID, id string) (*storedContact, bool) {
	sc, ok := r.contacts[id]
	if !ok || sc.contact.UserID != ownerID {
		return nil, false
	}
	return sc, true
}

func copyContact(c *contacts.Contact) contacts.Contact {
	out := *c
	out.Tags = slices.Clone(c.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if c.Notes != nil {
		notes := *c.Notes
		out.Notes = &notes
	}
	return out
}
