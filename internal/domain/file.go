package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FileType enumerates the kinds of nodes in the hierarchy.
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// ValidFileType reports whether t is one of the three accepted node types.
func ValidFileType(t FileType) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// RootParentID is the wire representation of "no parent". Internally the
// root is modelled as a nil ParentID; the literal "0" exists only at the
// API boundary.
const RootParentID = "0"

// ThumbnailWidths are the derived variant sizes generated for every
// uploaded image, widest first. Content retrieval accepts exactly these
// values for its size parameter.
var ThumbnailWidths = []int{500, 250, 100}

// FileNode represents a document in the 'files' collection: a folder or a
// content entry (file/image) in a user's hierarchy.
//
// A nil ParentID means the node sits at the root of its owner's tree.
// LocalPath is empty for folders and records the durable-storage location
// of the uploaded content for files and images.
type FileNode struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID   bson.ObjectID  `bson:"userId" json:"userId"`
	Name      string         `bson:"name" json:"name"`
	Type      FileType       `bson:"type" json:"type"`
	IsPublic  bool           `bson:"isPublic" json:"isPublic"`
	ParentID  *bson.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	LocalPath string         `bson:"localPath,omitempty" json:"-"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// IsFolder reports whether the node is a folder.
func (n *FileNode) IsFolder() bool { return n.Type == TypeFolder }

// PublicFileNode is the client-facing projection of a FileNode. ParentID is
// serialized as the literal "0" for root-level nodes to keep the wire shape
// stable for existing clients.
type PublicFileNode struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"userId"`
	Name      string   `json:"name"`
	Type      FileType `json:"type"`
	IsPublic  bool     `json:"isPublic"`
	ParentID  string   `json:"parentId"`
	LocalPath string   `json:"localPath,omitempty"`
}

// ToPublic builds the projection returned by every file endpoint.
func (n *FileNode) ToPublic() PublicFileNode {
	parent := RootParentID
	if n.ParentID != nil {
		parent = n.ParentID.Hex()
	}
	p := PublicFileNode{
		ID:       n.ID.Hex(),
		OwnerID:  n.OwnerID.Hex(),
		Name:     n.Name,
		Type:     n.Type,
		IsPublic: n.IsPublic,
		ParentID: parent,
	}
	if !n.IsFolder() {
		p.LocalPath = n.LocalPath
	}
	return p
}
