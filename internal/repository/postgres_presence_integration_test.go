//go:build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"facilops-data/internal/domain"
)

func getTestDB(t *testing.T) *sql.DB {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping archive integration test")
		return nil
	}
	db, err := NewPostgresDB(host, 5432,
		getenvDefault("TEST_DB_USER", "postgres"),
		getenvDefault("TEST_DB_PASSWORD", "postgres"),
		getenvDefault("TEST_DB_NAME", "facilops_test"),
		"disable")
	require.NoError(t, err)
	return db
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func cleanupArchive(t *testing.T, db *sql.DB, batchID string) {
	_, _ = db.Exec(`DELETE FROM presence_batches WHERE batch_id = $1`, batchID)
}

func TestPostgresPresenceAppendAndDelete(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewPostgresPresenceRepo(db)

	batchID := "00000000-0000-0000-0000-0000000000b1"
	defer cleanupArchive(t, db, batchID)

	batch := domain.ImportBatch{
		ID: batchID, Source: "teste.csv", Records: 2, Dropped: 1,
		ImportedAt: "2024-03-05T10:00:00Z",
	}
	records := []domain.WorkerPresenceRecord{
		{ID: batchID + "-1", BatchID: batchID, Name: "João Silva", Company: "MULT",
			Unit: "GALPÃO G2", Date: "2024-03-05", Time: "08:15", AccessPoint: "G202LF", EventType: "Entrada"},
		{ID: batchID + "-2", BatchID: batchID, Name: "Ana Prado", Company: "B11",
			Unit: "GALPÃO G1", Date: "2024-03-05", Time: "08:20", AccessPoint: "G101LF", EventType: "Entrada"},
	}
	require.NoError(t, repo.AppendBatch(ctx, batch, records))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	found := 0
	for _, rec := range got {
		if rec.BatchID == batchID {
			found++
		}
	}
	require.Equal(t, 2, found)

	require.NoError(t, repo.DeleteBatch(ctx, batchID))

	got, err = repo.List(ctx)
	require.NoError(t, err)
	for _, rec := range got {
		require.NotEqual(t, batchID, rec.BatchID, "batch delete must cascade to records")
	}

	require.ErrorIs(t, repo.DeleteBatch(ctx, batchID), ErrNotFound)
}
