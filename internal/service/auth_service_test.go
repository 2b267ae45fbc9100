package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/apperror"
	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/platform/crypto"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeUserStore is an in-memory implementation of store.UserStore. Using a
// hand-written fake keeps tests dependency-free and easy to read.
type fakeUserStore struct {
	byEmail map[string]*domain.User
	byID    map[bson.ObjectID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[bson.ObjectID]*domain.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrConflict
	}
	user.ID = bson.NewObjectID()
	copied := *user
	f.byEmail[user.Email] = &copied
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byEmail)), nil
}

// fakeSessionStore is an in-memory implementation of store.SessionStore.
// TTLs are recorded but never enforced; expiry is simulated by deleting.
type fakeSessionStore struct {
	sessions map[string]bson.ObjectID
	ttls     map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]bson.ObjectID),
		ttls:     make(map[string]time.Duration),
	}
}

func (f *fakeSessionStore) Create(ctx context.Context, token string, userID bson.ObjectID, ttl time.Duration) error {
	f.sessions[token] = userID
	f.ttls[token] = ttl
	return nil
}

func (f *fakeSessionStore) Resolve(ctx context.Context, token string) (bson.ObjectID, error) {
	id, ok := f.sessions[token]
	if !ok {
		return bson.ObjectID{}, store.ErrNotFound
	}
	return id, nil
}

func (f *fakeSessionStore) Revoke(ctx context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return store.ErrNotFound
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) Ping(ctx context.Context) error { return nil }

// expire simulates the key aging out of the store.
func (f *fakeSessionStore) expire(token string) {
	delete(f.sessions, token)
}

// seqTokens mints predictable tokens so tests can reference them.
type seqTokens struct{ n int }

func (s *seqTokens) New() string {
	s.n++
	return fmt.Sprintf("token-%d", s.n)
}

func newTestAuthService() (AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, &seqTokens{}, crypto.NewBcryptManager(4), 24*time.Hour)
	return svc, users, sessions
}

func TestSignup(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.Equal(t, "bob@dylan.com", user.Email)
	assert.NotEmpty(t, user.ID)
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "", "pw")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Signup(ctx, "bob@dylan.com", "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "bob@dylan.com", "other")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLoginThenResolve(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.Hex())

	// Sessions are independent: a second login mints a distinct token and
	// both resolve.
	token2, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)

	_, err = sessions.Resolve(ctx, token)
	assert.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@dylan.com", "toto1234!"},
		{"wrong password", "bob@dylan.com", "nope"},
		{"empty email", "", "toto1234!"},
		{"empty password", "bob@dylan.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
		})
	}
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Revoking again behaves like revoking a token that never existed.
	err = svc.Logout(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestExpiredSessionIndistinguishable(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	sessions.expire(token)

	_, expiredErr := sessions.Resolve(ctx, token)
	_, unknownErr := sessions.Resolve(ctx, "never-issued")
	assert.Equal(t, expiredErr, unknownErr)
}

func TestMe(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	stored, err := users.FindByEmail(ctx, "bob@dylan.com")
	require.NoError(t, err)

	me, err := svc.Me(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, created, me)

	_, err = svc.Me(ctx, bson.NewObjectID())
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}
