package contacts

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/internal/utils"
	"github.com/pkg/errors"
)

// Service is the contact store. Callers pass the resolved owner ID; the
// service never looks at contacts belonging to anyone else.
type Service struct {
	repo    Repo
	nowTime func() time.Time // injectable for testing
	newID   func() string    // opaque id generator
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithIDGenerator replaces the UUID generator used for new contact IDs
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(repo Repo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[contacts.NewService] repo is required")
	}

	s := &Service{
		repo:    repo,
		nowTime: time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// now is truncated to the store's millisecond precision so a read back
// returns exactly what was written
func (s *Service) now() time.Time {
	return s.nowTime().UTC().Truncate(time.Millisecond)
}

func (s *Service) Create(ctx context.Context, ownerID string, in NewContact) (*Contact, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	c := &Contact{
		ID:         s.newID(),
		UserID:     ownerID,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      strings.TrimSpace(in.Email),
		Notes:      in.Notes,
		Tags:       utils.NonNil(slices.Clone(in.Tags)),
		IsFavorite: utils.Value(in.IsFavorite),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, ownerID string, filter Filter) ([]*Contact, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	list, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return utils.NonNil(list), nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Contact, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Update applies only the fields present in u. An empty update returns the
// current record without bumping updatedAt.
func (s *Service) Update(ctx context.Context, ownerID, id string, u Update) (*Contact, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return s.repo.Get(ctx, ownerID, id)
	}
	if u.Email.Set {
		u.Email.Value = strings.TrimSpace(u.Email.Value)
	}
	return s.repo.Update(ctx, ownerID, id, u, s.now())
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return apperrors.ErrUnauthorized
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// ToggleFavorite negates the favorite flag.
//
// The read and the write are separate store calls, so two concurrent toggles
// of the same contact can both read the same value and write the same result,
// losing one toggle. This is accepted: last writer wins.
func (s *Service) ToggleFavorite(ctx context.Context, ownerID, id string) (*Contact, error) {
	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ownerID, id, Update{IsFavorite: utils.Some(!current.IsFavorite)}, s.now())
}
