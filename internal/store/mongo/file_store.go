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

// FileStore is the MongoDB implementation of store.FileStore, backed by the
// 'files' collection.
type FileStore struct {
	coll *mongo.Collection
}

// NewFileStore wires the 'files' collection.
func NewFileStore(db *mongo.Database) *FileStore {
	return &FileStore{coll: db.Collection("files")}
}

// Create persists a new node and fills in its generated ID.
func (s *FileStore) Create(ctx context.Context, node *domain.FileNode) error {
	if node.ID.IsZero() {
		node.ID = bson.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, node)
	return err
}

// FindByID retrieves a node regardless of owner.
func (s *FileStore) FindByID(ctx context.Context, id bson.ObjectID) (*domain.FileNode, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByOwner retrieves a node scoped to {id, owner}. A miss on either
// field yields the same store.ErrNotFound.
func (s *FileStore) FindByOwner(ctx context.Context, id, ownerID bson.ObjectID) (*domain.FileNode, error) {
	return s.findOne(ctx, bson.M{"_id": id, "userId": ownerID})
}

func (s *FileStore) findOne(ctx context.Context, filter bson.M) (*domain.FileNode, error) {
	var node domain.FileNode
	if err := s.coll.FindOne(ctx, filter).Decode(&node); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &node, nil
}

// ListChildren returns one zero-based page of the owner's nodes under
// parentID. A nil parentID selects root-level nodes, which are stored
// without a parentId field.
func (s *FileStore) ListChildren(ctx context.Context, ownerID bson.ObjectID, parentID *bson.ObjectID, page int64) ([]*domain.FileNode, error) {
	filter := bson.M{"userId": ownerID}
	if parentID != nil {
		filter["parentId"] = *parentID
	} else {
		filter["parentId"] = bson.M{"$exists": false}
	}

	findOptions := options.Find().
		SetSkip(page * store.PageSize).
		SetLimit(store.PageSize)

	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	nodes := []*domain.FileNode{}
	if err := cursor.All(ctx, &nodes); err != nil {
		return nil, err
	}

	return nodes, nil
}

// SetVisibility performs an atomic find-and-update scoped to {id, owner}.
// The single-document atomicity of findOneAndUpdate is what prevents a
// lost update between concurrent publish calls on the same node.
func (s *FileStore) SetVisibility(ctx context.Context, id, ownerID bson.ObjectID, isPublic bool) (*domain.FileNode, error) {
	filter := bson.M{"_id": id, "userId": ownerID}
	update := bson.M{"$set": bson.M{"isPublic": isPublic}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var node domain.FileNode
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&node); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &node, nil
}

// Count returns the total number of file nodes.
func (s *FileStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
