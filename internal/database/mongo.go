package database

import (
	"context"

	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	ContactsCollection = "contacts"

	ContactsUserNameIndex = "user_name_idx"
)

// Store owns the process-wide Mongo client. It is opened once at startup,
// handed to the repositories, and closed at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore wraps an already connected client
func NewStore(client *mongo.Client, databaseName string) *Store {
	return &Store{
		client: client,
		db:     client.Database(databaseName),
	}
}

// Connect dials the configured deployment and pings it, both bounded by the
// configured timeout
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	timeout := cfg.GetDatabaseTimeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.GetMongoURI()).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "[database.Connect] connect")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "[database.Connect] ping")
	}

	log.Info().Str("database", cfg.GetDatabaseName()).Msg("connected to MongoDB")
	return NewStore(client, cfg.GetDatabaseName()), nil
}

func (s *Store) Users() *mongo.Collection {
	return s.db.Collection(UsersCollection)
}

func (s *Store) Contacts() *mongo.Collection {
	return s.db.Collection(ContactsCollection)
}

// UserIndexes enforces one user per normalised email
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// ContactIndexes supports owner scoped lookups and listings
func ContactIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName(ContactsUserNameIndex),
		},
	}
}

// EnsureIndexes creates the indexes if missing. Creating an existing index is a no-op.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.Users().Indexes().CreateMany(ctx, UserIndexes()); err != nil {
		return errors.Wrap(err, "[Store.EnsureIndexes] users")
	}
	if _, err := s.Contacts().Indexes().CreateMany(ctx, ContactIndexes()); err != nil {
		return errors.Wrap(err, "[Store.EnsureIndexes] contacts")
	}
	log.Info().Msg("database indexes ensured")
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "[Store.Close]")
	}
	log.Info().Msg("database connection closed")
	return nil
}
