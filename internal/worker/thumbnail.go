package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"

	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/image/draw"
)

// VariantStorage is the slice of content storage the worker needs: read
// the original, write size-suffixed variants next to it.
type VariantStorage interface {
	Open(path string) (io.ReadCloser, error)
	SaveVariant(originalPath string, width int, data []byte) error
}

// ThumbnailProcessor consumes thumbnail jobs. It is safe to run in many
// workers at once: concurrent duplicate jobs for the same file overwrite
// the same three destination paths.
type ThumbnailProcessor struct {
	files   store.FileStore
	content VariantStorage
	logger  *slog.Logger
}

// NewThumbnailProcessor creates a new ThumbnailProcessor.
func NewThumbnailProcessor(files store.FileStore, content VariantStorage, logger *slog.Logger) *ThumbnailProcessor {
	return &ThumbnailProcessor{
		files:   files,
		content: content,
		logger:  logger,
	}
}

// ProcessTask handles one thumbnail job. Malformed payloads fail without
// retry; a missing file node fails into the queue's retry policy, which
// also catches jobs that outlived their record.
func (p *ThumbnailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.FileID == "" {
		return fmt.Errorf("missing fileId: %w", asynq.SkipRetry)
	}
	if payload.OwnerID == "" {
		return fmt.Errorf("missing userId: %w", asynq.SkipRetry)
	}

	fileID, err := bson.ObjectIDFromHex(payload.FileID)
	if err != nil {
		return fmt.Errorf("invalid fileId %q: %w", payload.FileID, asynq.SkipRetry)
	}
	ownerID, err := bson.ObjectIDFromHex(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid userId %q: %w", payload.OwnerID, asynq.SkipRetry)
	}

	node, err := p.files.FindByOwner(ctx, fileID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("file not found")
		}
		return fmt.Errorf("failed to load file node: %w", err)
	}

	return p.generate(node)
}

// generate decodes the original once and writes the three resized
// variants. A failure on one width is logged and does not roll back the
// others; re-running overwrites the same destination paths.
func (p *ThumbnailProcessor) generate(node *domain.FileNode) error {
	reader, err := p.content.Open(node.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open original %s: %w", node.LocalPath, err)
	}
	defer reader.Close()

	src, format, err := image.Decode(reader)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", node.LocalPath, err)
	}

	for _, width := range domain.ThumbnailWidths {
		data, err := encode(resizeToWidth(src, width), format)
		if err == nil {
			err = p.content.SaveVariant(node.LocalPath, width, data)
		}
		if err != nil {
			p.logger.Error("thumbnail variant failed",
				"fileId", node.ID.Hex(), "width", width, "error", err)
			continue
		}
	}

	p.logger.Info("thumbnail processing complete", "fileId", node.ID.Hex())
	return nil
}

// resizeToWidth scales an image to the target width, preserving aspect
// ratio. Images narrower than the target are still resampled so every
// variant path exists.
func resizeToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// encode serializes a variant in the original's format, falling back to
// PNG for anything unrecognized.
func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
