package fakeuserrepo

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex

	// Err, when set, is returned by every call to simulate an unreachable store
	Err error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.Err != nil {
		return apperrors.Unavailable("FakeUserRepo.Create", ur.Err)
	}
	if _, ok := ur.users[user.ID]; ok {
		return apperrors.ErrConflict
	}
	if _, ok := ur.emailIds[user.Email]; ok {
		return apperrors.ErrConflict
	}
	ur.users[user.ID] = *user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if ur.Err != nil {
		return nil, apperrors.Unavailable("FakeUserRepo.GetByEmail", ur.Err)
	}
	id, ok := ur.emailIds[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := ur.users[id]
	return &u, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if ur.Err != nil {
		return nil, apperrors.Unavailable("FakeUserRepo.GetByID", ur.Err)
	}
	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// Len returns the number of stored users
func (ur *FakeUserRepo) Len() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users)
}
