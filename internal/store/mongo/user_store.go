package mongo

import (
	"context"
	"errors"

	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UserStore is the MongoDB implementation of store.UserStore.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore wires the 'users' collection and ensures the unique index
// backing the email uniqueness invariant.
func NewUserStore(ctx context.Context, db *mongo.Database) (*UserStore, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &UserStore{coll: coll}, nil
}

// Create inserts a new user, translating a duplicate-email write into
// store.ErrConflict.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return err
}

// FindByEmail retrieves a user by email address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByID retrieves a user by their unique ID.
func (s *UserStore) FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the total number of registered users.
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
