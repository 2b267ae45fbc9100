package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/apperror"
	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/storage/disk"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ContentStorage abstracts the durable byte storage behind uploads so the
// service can be tested against a temp directory or a fake.
type ContentStorage interface {
	Save(data []byte) (string, error)
	Open(path string) (io.ReadCloser, error)
}

// TaskQueue abstracts the job queue the upload path produces into.
type TaskQueue interface {
	// EnqueueThumbnail schedules thumbnail generation for an image node.
	// Callers must only invoke it after the node is durably persisted.
	EnqueueThumbnail(ctx context.Context, fileID, ownerID string) error
}

// CreateInput carries the fields of an upload request.
type CreateInput struct {
	Name     string
	Type     domain.FileType
	ParentID string // "" or "0" means root
	IsPublic bool
	Data     string // base64 payload, required for non-folder types
}

// FileService defines the interface for the upload/retrieval business
// logic.
type FileService interface {
	Create(ctx context.Context, ownerID bson.ObjectID, in CreateInput) (domain.PublicFileNode, error)
	Show(ctx context.Context, ownerID bson.ObjectID, fileID string) (domain.PublicFileNode, error)
	Index(ctx context.Context, ownerID bson.ObjectID, parentID string, page int64) ([]domain.PublicFileNode, error)
	SetPublic(ctx context.Context, ownerID bson.ObjectID, fileID string, isPublic bool) (domain.PublicFileNode, error)

	// Content streams a node's bytes. A nil requester is an anonymous
	// caller; a non-nil size selects a derived variant width.
	Content(ctx context.Context, requester *bson.ObjectID, fileID string, size *int) (io.ReadCloser, string, error)
}

// fileService is the concrete implementation of the FileService interface.
type fileService struct {
	files   store.FileStore
	content ContentStorage
	queue   TaskQueue
	logger  *slog.Logger
}

// NewFileService creates a new instance of the file service.
func NewFileService(files store.FileStore, content ContentStorage, queue TaskQueue, logger *slog.Logger) FileService {
	return &fileService{
		files:   files,
		content: content,
		queue:   queue,
		logger:  logger,
	}
}

// parseParentID maps the wire-level parent reference onto the internal
// model: absent or "0" means root (nil), anything else must be a valid
// object id.
func parseParentID(parentID string) (*bson.ObjectID, error) {
	if parentID == "" || parentID == domain.RootParentID {
		return nil, nil
	}
	id, err := bson.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// resolveParent validates the parent reference: it either is the root or
// an existing folder owned by the same user.
func (s *fileService) resolveParent(ctx context.Context, ownerID bson.ObjectID, parentID string) (*bson.ObjectID, error) {
	parent, err := parseParentID(parentID)
	if err != nil {
		return nil, apperror.Validation("parentId", "Parent not found")
	}
	if parent == nil {
		return nil, nil
	}

	node, err := s.files.FindByOwner(ctx, *parent, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Validation("parentId", "Parent not found")
		}
		return nil, apperror.Internal(err)
	}
	if !node.IsFolder() {
		return nil, apperror.Validation("parentId", "Parent is not a folder")
	}
	return parent, nil
}

// Create validates an upload request and persists the node. Validation
// short-circuits in a fixed order: name, type, data, parent. For images a
// thumbnail job is enqueued only after the node is committed, so the
// worker can never race a nonexistent record.
func (s *fileService) Create(ctx context.Context, ownerID bson.ObjectID, in CreateInput) (domain.PublicFileNode, error) {
	if in.Name == "" {
		return domain.PublicFileNode{}, apperror.MissingField("name")
	}
	if !domain.ValidFileType(in.Type) {
		return domain.PublicFileNode{}, apperror.MissingField("type")
	}
	if in.Data == "" && in.Type != domain.TypeFolder {
		return domain.PublicFileNode{}, apperror.MissingField("data")
	}

	parent, err := s.resolveParent(ctx, ownerID, in.ParentID)
	if err != nil {
		return domain.PublicFileNode{}, err
	}

	node := &domain.FileNode{
		OwnerID:   ownerID,
		Name:      in.Name,
		Type:      in.Type,
		IsPublic:  in.IsPublic,
		ParentID:  parent,
		CreatedAt: time.Now(),
	}

	if in.Type != domain.TypeFolder {
		payload, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return domain.PublicFileNode{}, apperror.Validation("data", "Invalid data")
		}

		path, err := s.content.Save(payload)
		if err != nil {
			return domain.PublicFileNode{}, apperror.Internal(err)
		}
		node.LocalPath = path
	}

	if err := s.files.Create(ctx, node); err != nil {
		return domain.PublicFileNode{}, apperror.Internal(err)
	}

	if in.Type == domain.TypeImage {
		// The upload has already committed; a lost job only delays
		// thumbnails until a replay, so it must not fail the request.
		if err := s.queue.EnqueueThumbnail(ctx, node.ID.Hex(), ownerID.Hex()); err != nil {
			s.logger.Error("failed to enqueue thumbnail job",
				"fileId", node.ID.Hex(), "error", err)
		}
	}

	return node.ToPublic(), nil
}

// Show returns the requester's own node. This is the owner-scoped detail
// view: another user's node is reported as not found even when public.
func (s *fileService) Show(ctx context.Context, ownerID bson.ObjectID, fileID string) (domain.PublicFileNode, error) {
	id, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return domain.PublicFileNode{}, apperror.NotFound()
	}

	node, err := s.files.FindByOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicFileNode{}, apperror.NotFound()
		}
		return domain.PublicFileNode{}, apperror.Internal(err)
	}

	return node.ToPublic(), nil
}

// Index returns one page of the requester's own nodes under the given
// parent. Nodes outside the requester's ownership are simply never
// enumerated.
func (s *fileService) Index(ctx context.Context, ownerID bson.ObjectID, parentID string, page int64) ([]domain.PublicFileNode, error) {
	parent, err := parseParentID(parentID)
	if err != nil {
		return nil, apperror.Validation("parentId", "Parent not found")
	}
	if page < 0 {
		page = 0
	}

	nodes, err := s.files.ListChildren(ctx, ownerID, parent, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]domain.PublicFileNode, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.ToPublic())
	}
	return out, nil
}

// SetPublic toggles visibility via an atomic find-and-update scoped to
// {id, owner}. A nonexistent id and a foreign node collapse into the same
// not-found answer.
func (s *fileService) SetPublic(ctx context.Context, ownerID bson.ObjectID, fileID string, isPublic bool) (domain.PublicFileNode, error) {
	id, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return domain.PublicFileNode{}, apperror.NotFound()
	}

	node, err := s.files.SetVisibility(ctx, id, ownerID, isPublic)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicFileNode{}, apperror.NotFound()
		}
		return domain.PublicFileNode{}, apperror.Internal(err)
	}

	return node.ToPublic(), nil
}

// validSize reports whether the requested width is one of the supported
// derived variants.
func validSize(size int) bool {
	for _, w := range domain.ThumbnailWidths {
		if size == w {
			return true
		}
	}
	return false
}

// Content resolves and streams a node's bytes, or one of its derived
// variants when size is given. Private-and-foreign and nonexistent nodes
// produce identical not-found answers, as does a variant the worker has
// not generated yet.
func (s *fileService) Content(ctx context.Context, requester *bson.ObjectID, fileID string, size *int) (io.ReadCloser, string, error) {
	id, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, "", apperror.NotFound()
	}

	node, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperror.NotFound()
		}
		return nil, "", apperror.Internal(err)
	}

	if !CanRead(requester, node) {
		return nil, "", apperror.NotFound()
	}

	if node.IsFolder() {
		return nil, "", apperror.InvalidOperation("A folder doesn't have content")
	}

	path := node.LocalPath
	if size != nil {
		if !validSize(*size) {
			return nil, "", apperror.Validation("size", "Invalid size")
		}
		path = disk.VariantPath(path, *size)
	}

	reader, err := s.content.Open(path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperror.NotFound()
		}
		return nil, "", apperror.Internal(err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(node.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return reader, contentType, nil
}
