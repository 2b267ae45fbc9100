package store

import (
	"context"
	"errors"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Standard errors returned by the store layer. The service layer handles
// specific database outcomes without being coupled to the driver.
var (
	ErrNotFound = errors.New("requested item not found")
	ErrConflict = errors.New("item already exists")
)

// PageSize is the fixed window returned by ListChildren. Pages are
// zero-based.
const PageSize = 20

// UserStore defines the interface for user data operations. Create must
// return store.ErrConflict when the email is already taken.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail retrieves a user by email address. Returns
	// store.ErrNotFound if no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID retrieves a user by their unique ID. Returns
	// store.ErrNotFound if no user matches.
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)

	// Count returns the total number of registered users.
	Count(ctx context.Context) (int64, error)
}

// FileStore defines the interface for file metadata operations.
type FileStore interface {
	// Create persists a new node and fills in its generated ID.
	Create(ctx context.Context, node *domain.FileNode) error

	// FindByID retrieves a node regardless of owner. Returns
	// store.ErrNotFound if no node matches.
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.FileNode, error)

	// FindByOwner retrieves a node scoped to {id, owner}. A wrong owner is
	// indistinguishable from a nonexistent id: both return store.ErrNotFound.
	FindByOwner(ctx context.Context, id, ownerID bson.ObjectID) (*domain.FileNode, error)

	// ListChildren returns one zero-based page (PageSize items) of the
	// owner's nodes under parentID; nil parentID means the root. Ordering is
	// the store's natural retrieval order, stable across calls without
	// intervening writes.
	ListChildren(ctx context.Context, ownerID bson.ObjectID, parentID *bson.ObjectID, page int64) ([]*domain.FileNode, error)

	// SetVisibility atomically updates isPublic on the node matching
	// {id, owner} and returns the updated document, or store.ErrNotFound if
	// nothing matched.
	SetVisibility(ctx context.Context, id, ownerID bson.ObjectID, isPublic bool) (*domain.FileNode, error)

	// Count returns the total number of file nodes.
	Count(ctx context.Context) (int64, error)
}

// SessionStore defines the interface for the expiring token-to-user
// mapping backing authentication.
type SessionStore interface {
	// Create stores token -> userID with the given time-to-live.
	Create(ctx context.Context, token string, userID bson.ObjectID, ttl time.Duration) error

	// Resolve returns the user ID for a token. Expired and nonexistent
	// tokens both return store.ErrNotFound.
	Resolve(ctx context.Context, token string) (bson.ObjectID, error)

	// Revoke deletes the mapping, returning store.ErrNotFound when no such
	// token was stored.
	Revoke(ctx context.Context, token string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
