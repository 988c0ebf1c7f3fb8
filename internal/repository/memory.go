package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"facilops-data/internal/domain"
)

// Memory repositories back the service when no realtime store is
// configured (local dev, tests). Same contract, no durability.

type MemoryDevicesRepo struct {
	mu     sync.RWMutex
	byKind map[domain.DeviceKind]map[string]domain.Device
}

func NewMemoryDevicesRepo() *MemoryDevicesRepo {
	return &MemoryDevicesRepo{byKind: map[domain.DeviceKind]map[string]domain.Device{}}
}

func (r *MemoryDevicesRepo) List(_ context.Context, kind domain.DeviceKind) ([]domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Device, 0, len(r.byKind[kind]))
	for _, d := range r.byKind[kind] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryDevicesRepo) Get(_ context.Context, kind domain.DeviceKind, key string) (*domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKind[kind][key]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryDevicesRepo) Save(_ context.Context, d *domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byKind[d.Kind] == nil {
		r.byKind[d.Kind] = map[string]domain.Device{}
	}
	r.byKind[d.Kind][d.Key] = *d
	return nil
}

func (r *MemoryDevicesRepo) Delete(_ context.Context, kind domain.DeviceKind, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKind[kind][key]; !ok {
		return ErrNotFound
	}
	delete(r.byKind[kind], key)
	return nil
}

func (r *MemoryDevicesRepo) ReplaceAll(_ context.Context, kind domain.DeviceKind, devices []domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	node := make(map[string]domain.Device, len(devices))
	for _, d := range devices {
		node[d.Key] = d
	}
	r.byKind[kind] = node
	return nil
}

func (r *MemoryDevicesRepo) DeleteAll(_ context.Context, kind domain.DeviceKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byKind, kind)
	return nil
}

type MemoryPresenceRepo struct {
	mu      sync.RWMutex
	records []domain.WorkerPresenceRecord
	batches map[string]domain.ImportBatch
}

func NewMemoryPresenceRepo() *MemoryPresenceRepo {
	return &MemoryPresenceRepo{batches: map[string]domain.ImportBatch{}}
}

func (r *MemoryPresenceRepo) AppendBatch(_ context.Context, batch domain.ImportBatch, records []domain.WorkerPresenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	r.batches[batch.ID] = batch
	return nil
}

func (r *MemoryPresenceRepo) List(_ context.Context) ([]domain.WorkerPresenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.WorkerPresenceRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryPresenceRepo) Batches(_ context.Context) ([]domain.ImportBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ImportBatch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImportedAt < out[j].ImportedAt })
	return out, nil
}

func (r *MemoryPresenceRepo) DeleteBatch(_ context.Context, batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.BatchID != batchID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	delete(r.batches, batchID)
	return nil
}

type MemoryDocumentsRepo struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

func NewMemoryDocumentsRepo() *MemoryDocumentsRepo {
	return &MemoryDocumentsRepo{docs: map[string]domain.Document{}}
}

func (r *MemoryDocumentsRepo) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpirationDate < out[j].ExpirationDate })
	return out, nil
}

func (r *MemoryDocumentsRepo) Save(_ context.Context, d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[d.ID] = *d
	return nil
}

func (r *MemoryDocumentsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type MemoryTasksRepo struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	order []string
}

func NewMemoryTasksRepo() *MemoryTasksRepo {
	return &MemoryTasksRepo{tasks: map[string]domain.Task{}}
}

func (r *MemoryTasksRepo) List(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *MemoryTasksRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = "task-" + strconv.Itoa(len(r.order)+1)
	}
	r.tasks[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *MemoryTasksRepo) SetStatus(_ context.Context, id string, status domain.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Status = status
	r.tasks[id] = t
	return nil
}
