package repository

import (
	"context"
	"fmt"
	"sort"

	"facilops-data/internal/domain"
)

// Collection paths in the realtime store.
const (
	pathDevices         = "devices"          // devices/{kind}/{key}
	pathPresenceRecords = "presence/records" // push children
	pathPresenceBatches = "presence/batches" // presence/batches/{id}
	pathDocuments       = "documents"        // documents/{id}
	pathTasks           = "tasks"            // tasks/{id}
)

// RealtimeDevicesRepo keeps each device kind as one node keyed by the
// internal device key. Bulk import PUTs the whole node, which is the
// store's whole-collection overwrite.
type RealtimeDevicesRepo struct {
	client *RealtimeClient
}

func NewRealtimeDevicesRepo(client *RealtimeClient) *RealtimeDevicesRepo {
	return &RealtimeDevicesRepo{client: client}
}

func devicesPath(kind domain.DeviceKind) string {
	return fmt.Sprintf("%s/%s", pathDevices, kind)
}

func (r *RealtimeDevicesRepo) List(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error) {
	node := map[string]domain.Device{}
	if err := r.client.Get(ctx, devicesPath(kind), &node); err != nil {
		return nil, err
	}
	out := make([]domain.Device, 0, len(node))
	for key, d := range node {
		d.Key = key
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RealtimeDevicesRepo) Get(ctx context.Context, kind domain.DeviceKind, key string) (*domain.Device, error) {
	var d domain.Device
	if err := r.client.Get(ctx, devicesPath(kind)+"/"+key, &d); err != nil {
		return nil, err
	}
	if d.Name == "" && d.Key == "" {
		return nil, ErrNotFound
	}
	d.Key = key
	return &d, nil
}

func (r *RealtimeDevicesRepo) Save(ctx context.Context, d *domain.Device) error {
	return r.client.Put(ctx, devicesPath(d.Kind)+"/"+d.Key, d)
}

func (r *RealtimeDevicesRepo) Delete(ctx context.Context, kind domain.DeviceKind, key string) error {
	return r.client.Delete(ctx, devicesPath(kind)+"/"+key)
}

func (r *RealtimeDevicesRepo) ReplaceAll(ctx context.Context, kind domain.DeviceKind, devices []domain.Device) error {
	node := make(map[string]domain.Device, len(devices))
	for _, d := range devices {
		node[d.Key] = d
	}
	return r.client.Put(ctx, devicesPath(kind), node)
}

func (r *RealtimeDevicesRepo) DeleteAll(ctx context.Context, kind domain.DeviceKind) error {
	return r.client.Delete(ctx, devicesPath(kind))
}

func (r *RealtimeDevicesRepo) Subscribe(ctx context.Context, collection string) (<-chan Change, error) {
	return r.client.Subscribe(ctx, collection)
}

// RealtimePresenceRepo appends records as pushed children and keeps batch
// metadata under its own node. Batch delete is an equality-filtered query
// on batch_id followed by per-child deletes.
type RealtimePresenceRepo struct {
	client *RealtimeClient
}

func NewRealtimePresenceRepo(client *RealtimeClient) *RealtimePresenceRepo {
	return &RealtimePresenceRepo{client: client}
}

func (r *RealtimePresenceRepo) AppendBatch(ctx context.Context, batch domain.ImportBatch, records []domain.WorkerPresenceRecord) error {
	for i := range records {
		if _, err := r.client.Push(ctx, pathPresenceRecords, &records[i]); err != nil {
			return err
		}
	}
	return r.client.Put(ctx, pathPresenceBatches+"/"+batch.ID, &batch)
}

func (r *RealtimePresenceRepo) List(ctx context.Context) ([]domain.WorkerPresenceRecord, error) {
	node := map[string]domain.WorkerPresenceRecord{}
	if err := r.client.Get(ctx, pathPresenceRecords, &node); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	// push keys are chronologically ordered, keep import order stable
	sort.Strings(keys)
	out := make([]domain.WorkerPresenceRecord, 0, len(node))
	for _, k := range keys {
		out = append(out, node[k])
	}
	return out, nil
}

func (r *RealtimePresenceRepo) Batches(ctx context.Context) ([]domain.ImportBatch, error) {
	node := map[string]domain.ImportBatch{}
	if err := r.client.Get(ctx, pathPresenceBatches, &node); err != nil {
		return nil, err
	}
	out := make([]domain.ImportBatch, 0, len(node))
	for _, b := range node {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImportedAt < out[j].ImportedAt })
	return out, nil
}

func (r *RealtimePresenceRepo) DeleteBatch(ctx context.Context, batchID string) error {
	matches := map[string]domain.WorkerPresenceRecord{}
	if err := r.client.Query(ctx, pathPresenceRecords, "batch_id", batchID, &matches); err != nil {
		return err
	}
	for key := range matches {
		if err := r.client.Delete(ctx, pathPresenceRecords+"/"+key); err != nil {
			return err
		}
	}
	return r.client.Delete(ctx, pathPresenceBatches+"/"+batchID)
}

func (r *RealtimePresenceRepo) Subscribe(ctx context.Context, collection string) (<-chan Change, error) {
	return r.client.Subscribe(ctx, collection)
}

// RealtimeDocumentsRepo keeps compliance documents keyed by id.
type RealtimeDocumentsRepo struct {
	client *RealtimeClient
}

func NewRealtimeDocumentsRepo(client *RealtimeClient) *RealtimeDocumentsRepo {
	return &RealtimeDocumentsRepo{client: client}
}

func (r *RealtimeDocumentsRepo) List(ctx context.Context) ([]domain.Document, error) {
	node := map[string]domain.Document{}
	if err := r.client.Get(ctx, pathDocuments, &node); err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(node))
	for id, d := range node {
		d.ID = id
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpirationDate < out[j].ExpirationDate })
	return out, nil
}

func (r *RealtimeDocumentsRepo) Save(ctx context.Context, d *domain.Document) error {
	return r.client.Put(ctx, pathDocuments+"/"+d.ID, d)
}

func (r *RealtimeDocumentsRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, pathDocuments+"/"+id)
}

// RealtimeTasksRepo keeps delegated tasks keyed by id.
type RealtimeTasksRepo struct {
	client *RealtimeClient
}

func NewRealtimeTasksRepo(client *RealtimeClient) *RealtimeTasksRepo {
	return &RealtimeTasksRepo{client: client}
}

func (r *RealtimeTasksRepo) List(ctx context.Context) ([]domain.Task, error) {
	node := map[string]domain.Task{}
	if err := r.client.Get(ctx, pathTasks, &node); err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(node))
	for id, t := range node {
		t.ID = id
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (r *RealtimeTasksRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.client.Put(ctx, pathTasks+"/"+t.ID, t)
}

func (r *RealtimeTasksRepo) SetStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	var t domain.Task
	if err := r.client.Get(ctx, pathTasks+"/"+id, &t); err != nil {
		return err
	}
	if t.ID == "" && t.Title == "" {
		return ErrNotFound
	}
	t.ID = id
	t.Status = status
	return r.client.Put(ctx, pathTasks+"/"+id, &t)
}
