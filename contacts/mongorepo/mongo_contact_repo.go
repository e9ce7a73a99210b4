package mongocontactrepo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/internal/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ contacts.Repo = (*MongoContactRepo)(nil)

// MongoContactRepo stores contacts keyed by generated id and tagged with userId
type MongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepo(coll *mongo.Collection) *MongoContactRepo {
	return &MongoContactRepo{coll: coll}
}

func (r *MongoContactRepo) Insert(ctx context.Context, c *contacts.Contact) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return storeError("MongoContactRepo.Insert", err)
	}
	return nil
}

func (r *MongoContactRepo) List(ctx context.Context, ownerID string, filter contacts.Filter) ([]*contacts.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, ListQuery(ownerID, filter), opts)
	if err != nil {
		return nil, storeError("MongoContactRepo.List", err)
	}
	defer cur.Close(ctx)

	list := make([]*contacts.Contact, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, storeError("MongoContactRepo.List", err)
	}
	for _, c := range list {
		c.Tags = utils.NonNil(c.Tags)
	}
	return list, nil
}

func (r *MongoContactRepo) Get(ctx context.Context, ownerID, id string) (*contacts.Contact, error) {
	var c contacts.Contact
	if err := r.coll.FindOne(ctx, ownedQuery(ownerID, id)).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("MongoContactRepo.Get", err)
	}
	c.Tags = utils.NonNil(c.Tags)
	return &c, nil
}

func (r *MongoContactRepo) Update(ctx context.Context, ownerID, id string, u contacts.Update, updatedAt time.Time) (*contacts.Contact, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": SetDocument(u, updatedAt)}

	var c contacts.Contact
	if err := r.coll.FindOneAndUpdate(ctx, ownedQuery(ownerID, id), update, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("MongoContactRepo.Update", err)
	}
	c.Tags = utils.NonNil(c.Tags)
	return &c, nil
}

func (r *MongoContactRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedQuery(ownerID, id))
	if err != nil {
		return storeError("MongoContactRepo.Delete", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListQuery builds the find filter for a listing. Search text is quoted so it
// matches as a literal, case-insensitive substring.
func ListQuery(ownerID string, filter contacts.Filter) bson.M {
	query := bson.M{"userId": ownerID}

	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"phone": pattern},
			bson.M{"email": pattern},
		}
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Favorite != nil {
		query["isFavorite"] = *filter.Favorite
	}
	return query
}

// SetDocument returns the $set body for the present fields of u plus updatedAt
func SetDocument(u contacts.Update, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt}
	if u.Name.Set {
		set["name"] = u.Name.Value
	}
	if u.Phone.Set {
		set["phone"] = u.Phone.Value
	}
	if u.Email.Set {
		set["email"] = u.Email.Value
	}
	if u.Notes.Set {
		set["notes"] = u.Notes.Value
	}
	if u.Tags.Set {
		set["tags"] = utils.NonNil(u.Tags.Value)
	}
	if u.IsFavorite.Set {
		set["isFavorite"] = u.IsFavorite.Value
	}
	return set
}

func ownedQuery(ownerID, id string) bson.M {
	return bson.M{"_id": id, "userId": ownerID}
}

func storeError(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("contact store failure")
	return apperrors.Unavailable(op, err)
}
