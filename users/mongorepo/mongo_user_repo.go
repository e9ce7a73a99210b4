package mongouserrepo

import (
	"context"
	"errors"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/users"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ users.UserRepo = (*MongoUserRepo)(nil)

// MongoUserRepo stores users in a collection keyed by normalised email
type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(coll *mongo.Collection) *MongoUserRepo {
	return &MongoUserRepo{coll: coll}
}

func (r *MongoUserRepo) Create(ctx context.Context, user *users.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return storeError("MongoUserRepo.Create", err)
	}
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.findOne(ctx, "MongoUserRepo.GetByID", bson.M{"_id": id})
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.findOne(ctx, "MongoUserRepo.GetByEmail", bson.M{"email": email})
}

func (r *MongoUserRepo) findOne(ctx context.Context, op string, filter bson.M) (*users.User, error) {
	var u users.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError(op, err)
	}
	return &u, nil
}

func storeError(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("user store failure")
	return apperrors.Unavailable(op, err)
}
