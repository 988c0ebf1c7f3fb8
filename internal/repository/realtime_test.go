package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facilops-data/internal/domain"
)

// fakeStore mimics the realtime document store's REST surface over a flat
// path -> JSON map, enough to drive the repository contract.
type fakeStore struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
	seq  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]json.RawMessage{}}
}

func (s *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		path := strings.Trim(strings.TrimSuffix(r.URL.Path, ".json"), "/")
		switch r.Method {
		case http.MethodPut:
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			s.data[path] = raw
			w.Write(raw)
		case http.MethodPost:
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			s.seq++
			key := fmt.Sprintf("push-%03d", s.seq)
			s.data[path+"/"+key] = raw
			json.NewEncoder(w).Encode(map[string]string{"name": key})
		case http.MethodDelete:
			for k := range s.data {
				if k == path || strings.HasPrefix(k, path+"/") {
					delete(s.data, k)
				}
			}
			w.Write([]byte("null"))
		case http.MethodGet:
			node := map[string]json.RawMessage{}
			if raw, ok := s.data[path]; ok {
				w.Write(raw)
				return
			}
			orderBy := strings.Trim(r.URL.Query().Get("orderBy"), "\"")
			equalTo := strings.Trim(r.URL.Query().Get("equalTo"), "\"")
			for k, raw := range s.data {
				if !strings.HasPrefix(k, path+"/") {
					continue
				}
				child := strings.TrimPrefix(k, path+"/")
				if strings.Contains(child, "/") {
					continue
				}
				if orderBy != "" {
					var obj map[string]any
					if json.Unmarshal(raw, &obj) != nil {
						continue
					}
					if v, _ := obj[orderBy].(string); v != equalTo {
						continue
					}
				}
				node[child] = raw
			}
			if len(node) == 0 {
				w.Write([]byte("null"))
				return
			}
			json.NewEncoder(w).Encode(node)
		}
	})
}

func newTestRealtimeClient(t *testing.T) (*RealtimeClient, *fakeStore) {
	store := newFakeStore()
	srv := httptest.NewServer(store.handler())
	t.Cleanup(srv.Close)
	return NewRealtimeClient(srv.URL, "", zap.NewNop()), store
}

func TestRealtimeDevicesReplaceAll(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRealtimeClient(t)
	repo := NewRealtimeDevicesRepo(client)

	require.NoError(t, repo.ReplaceAll(ctx, domain.DeviceKindCamera, []domain.Device{
		{Key: "k1", Kind: domain.DeviceKindCamera, Name: "CAM-01", Status: domain.StatusOnline},
		{Key: "k2", Kind: domain.DeviceKindCamera, Name: "CAM-02", Status: domain.StatusOffline},
	}))
	require.NoError(t, repo.ReplaceAll(ctx, domain.DeviceKindCamera, []domain.Device{
		{Key: "k3", Kind: domain.DeviceKindCamera, Name: "CAM-03", Status: domain.StatusOnline},
	}))

	devices, err := repo.List(ctx, domain.DeviceKindCamera)
	require.NoError(t, err)
	require.Len(t, devices, 1, "second import fully replaces the collection")
	assert.Equal(t, "CAM-03", devices[0].Name)
	assert.Equal(t, "k3", devices[0].Key)
}

func TestRealtimePresenceBatchDeleteByEqualityQuery(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRealtimeClient(t)
	repo := NewRealtimePresenceRepo(client)

	require.NoError(t, repo.AppendBatch(ctx,
		domain.ImportBatch{ID: "b1", Source: "a.csv", Records: 2, ImportedAt: "2024-03-05T10:00:00Z"},
		[]domain.WorkerPresenceRecord{
			{ID: "r1", BatchID: "b1", Name: "João Silva", Company: "MULT", Unit: "GALPÃO G2", Date: "2024-03-05"},
			{ID: "r2", BatchID: "b1", Name: "Ana Prado", Company: "B11", Unit: "GALPÃO G1", Date: "2024-03-05"},
		}))
	require.NoError(t, repo.AppendBatch(ctx,
		domain.ImportBatch{ID: "b2", Source: "b.csv", Records: 1, ImportedAt: "2024-03-06T10:00:00Z"},
		[]domain.WorkerPresenceRecord{
			{ID: "r3", BatchID: "b2", Name: "Carlos Lima", Company: "MPI", Unit: "GALPÃO G2", Date: "2024-03-06"},
		}))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NoError(t, repo.DeleteBatch(ctx, "b1"))

	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r3", records[0].ID)

	batches, err := repo.Batches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "b2", batches[0].ID)
}

func TestRealtimeSubscribeStreamsChanges(t *testing.T) {
	events := make(chan string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()
		for path := range events {
			fmt.Fprintf(w, "event: put\ndata: {\"path\": %q}\n\n", path)
			flusher.Flush()
		}
	}))
	t.Cleanup(srv.Close)

	client := NewRealtimeClient(srv.URL, "", zap.NewNop())
	// the streaming client must not carry an overall timeout: subscriptions
	// stay open for as long as the caller wants them
	assert.Zero(t, client.stream.GetClient().Timeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := client.Subscribe(ctx, "devices/camera")
	require.NoError(t, err)

	events <- "/k1"
	change := <-ch
	assert.Equal(t, "devices/camera", change.Collection)
	assert.Equal(t, "/k1", change.Path)

	events <- "/k2"
	change = <-ch
	assert.Equal(t, "/k2", change.Path)

	cancel()
	close(events)
	for range ch {
	}
}

func TestRealtimeDocumentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRealtimeClient(t)
	repo := NewRealtimeDocumentsRepo(client)

	require.NoError(t, repo.Save(ctx, &domain.Document{
		ID: "d1", Name: "AVCB", Organ: "Bombeiros", ExpirationDate: "2025-01-01",
	}))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "AVCB", docs[0].Name)

	require.NoError(t, repo.Delete(ctx, "d1"))
	docs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
