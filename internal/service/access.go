package service

import (
	"github.com/Tribeoftech/atlas-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Access decisions are pure functions of the requester and the node. A nil
// requester is an anonymous caller. Denials are reported to clients as
// "not found" further up the stack so they never reveal that a foreign
// private node exists.

// CanRead permits reading a node's content iff it is public or the
// requester owns it.
func CanRead(requester *bson.ObjectID, node *domain.FileNode) bool {
	if node.IsPublic {
		return true
	}
	return CanMutate(requester, node)
}

// CanMutate permits owner-only operations (publish/unpublish). Anonymous
// requesters and non-owners are always denied.
func CanMutate(requester *bson.ObjectID, node *domain.FileNode) bool {
	return requester != nil && *requester == node.OwnerID
}
