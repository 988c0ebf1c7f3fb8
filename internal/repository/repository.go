package repository

import (
	"context"
	"errors"

	"facilops-data/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Change is a realtime-store change notification delivered to subscribers.
type Change struct {
	Collection string
	Path       string
}

// DevicesRepo stores the camera and access-point collections. A bulk
// import is a whole-collection overwrite (last write wins on concurrent
// sessions, accepted per the realtime store's semantics), never a merge.
type DevicesRepo interface {
	List(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error)
	Get(ctx context.Context, kind domain.DeviceKind, key string) (*domain.Device, error)
	Save(ctx context.Context, d *domain.Device) error
	Delete(ctx context.Context, kind domain.DeviceKind, key string) error
	// ReplaceAll overwrites the whole collection for the kind.
	ReplaceAll(ctx context.Context, kind domain.DeviceKind, devices []domain.Device) error
	// DeleteAll resets the collection for the kind.
	DeleteAll(ctx context.Context, kind domain.DeviceKind) error
}

// PresenceRepo stores worker presence records. Imports append batches
// alongside existing ones; records are only removed by whole-batch delete
// (an equality-filtered cascade on batch_id).
type PresenceRepo interface {
	AppendBatch(ctx context.Context, batch domain.ImportBatch, records []domain.WorkerPresenceRecord) error
	List(ctx context.Context) ([]domain.WorkerPresenceRecord, error)
	Batches(ctx context.Context) ([]domain.ImportBatch, error)
	DeleteBatch(ctx context.Context, batchID string) error
}

// DocumentsRepo stores compliance documents. Status is derived at read
// time from the expiration date, never persisted.
type DocumentsRepo interface {
	List(ctx context.Context) ([]domain.Document, error)
	Save(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id string) error
}

// TasksRepo stores delegated follow-ups, append-style.
type TasksRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) error
}

// Subscriber is implemented by repositories backed by the realtime store;
// change notifications fan out to all active subscribers.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string) (<-chan Change, error)
}
