package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeThumbnail is the task type registered for thumbnail generation.
const TypeThumbnail = "thumbnail:generate"

// ThumbnailPayload is the whole job: which file, owned by whom. It is
// deliberately minimal so at-least-once delivery and worker restarts need
// no extra bookkeeping.
type ThumbnailPayload struct {
	FileID  string `json:"fileId"`
	OwnerID string `json:"userId"`
}

// Queue is the producer side of the thumbnail pipeline, wrapping an asynq
// client. It satisfies service.TaskQueue.
type Queue struct {
	client *asynq.Client
}

// NewQueue wires an existing asynq client.
func NewQueue(client *asynq.Client) *Queue {
	return &Queue{client: client}
}

// EnqueueThumbnail schedules thumbnail generation for a committed image
// node.
func (q *Queue) EnqueueThumbnail(ctx context.Context, fileID, ownerID string) error {
	payload, err := json.Marshal(ThumbnailPayload{FileID: fileID, OwnerID: ownerID})
	if err != nil {
		return fmt.Errorf("failed to marshal thumbnail payload: %w", err)
	}

	if _, err := q.client.EnqueueContext(ctx, asynq.NewTask(TypeThumbnail, payload)); err != nil {
		return fmt.Errorf("failed to enqueue thumbnail task: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (q *Queue) Close() error {
	return q.client.Close()
}
