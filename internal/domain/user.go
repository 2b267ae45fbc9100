package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account in the 'users' collection. Email is unique
// across the collection; the hash is never serialized to clients.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the client-facing projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ToPublic strips everything a client has no business seeing.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}
