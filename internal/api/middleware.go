package api

import (
	"context"
	"net/http"

	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-Token"

// CtxKey is a custom type for context keys to avoid collisions.
type CtxKey string

// UserIDKey is the key for storing the requester's ID in the request context.
const UserIDKey CtxKey = "userID"

// AuthMiddleware resolves the X-Token header against the session store.
type AuthMiddleware struct {
	sessions store.SessionStore
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(sessions store.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth rejects requests without a resolvable session. On success the
// requester's ID is added to the request context for downstream handlers.
// Missing, unknown and expired tokens all produce the same 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		userID, err := m.sessions.Resolve(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext safely retrieves the requester's ID from the context.
func GetUserIDFromContext(ctx context.Context) (bson.ObjectID, bool) {
	userID, ok := ctx.Value(UserIDKey).(bson.ObjectID)
	return userID, ok
}
