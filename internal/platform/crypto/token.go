package crypto

import "github.com/google/uuid"

// TokenGenerator defines the interface for minting session tokens. Tokens
// are opaque: they prove nothing by themselves and only gain meaning
// through the session store mapping.
type TokenGenerator interface {
	New() string
}

// UUIDGenerator mints version 4 UUIDs, which draw from crypto/rand and are
// unguessable for this purpose.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// New returns a fresh opaque token.
func (UUIDGenerator) New() string {
	return uuid.NewString()
}
