package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"facilops-data/internal/domain"
)

// PostgresPresenceRepo is the append-only archive of presence imports,
// enabled by DB_ENABLED. The realtime store stays the live source of
// truth; the archive keeps reporting-grade history that survives a store
// reset. Schema:
//
//	CREATE TABLE presence_batches (
//	    batch_id    TEXT PRIMARY KEY,
//	    source      TEXT NOT NULL,
//	    records     INT  NOT NULL,
//	    dropped     INT  NOT NULL,
//	    imported_at TEXT NOT NULL
//	);
//	CREATE TABLE presence_records (
//	    record_id    TEXT PRIMARY KEY,
//	    batch_id     TEXT NOT NULL REFERENCES presence_batches(batch_id) ON DELETE CASCADE,
//	    worker_name  TEXT NOT NULL,
//	    company      TEXT NOT NULL,
//	    unit         TEXT NOT NULL,
//	    event_date   TEXT NOT NULL,
//	    event_time   TEXT NOT NULL,
//	    access_point TEXT NOT NULL,
//	    event_type   TEXT NOT NULL
//	);
type PostgresPresenceRepo struct {
	db *sql.DB
}

func NewPostgresPresenceRepo(db *sql.DB) *PostgresPresenceRepo {
	return &PostgresPresenceRepo{db: db}
}

func (r *PostgresPresenceRepo) AppendBatch(ctx context.Context, batch domain.ImportBatch, records []domain.WorkerPresenceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO presence_batches (batch_id, source, records, dropped, imported_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		batch.ID, batch.Source, batch.Records, batch.Dropped, batch.ImportedAt,
	); err != nil {
		return fmt.Errorf("insert batch %s: %w", batch.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO presence_records
		 (record_id, batch_id, worker_name, company, unit, event_date, event_time, access_point, event_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.BatchID, rec.Name, rec.Company, rec.Unit,
			rec.Date, rec.Time, rec.AccessPoint, rec.EventType,
		); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PostgresPresenceRepo) List(ctx context.Context) ([]domain.WorkerPresenceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT record_id, batch_id, worker_name, company, unit, event_date, event_time, access_point, event_type
		 FROM presence_records
		 ORDER BY event_date, event_time, record_id`)
	if err != nil {
		return nil, fmt.Errorf("list presence records: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkerPresenceRecord
	for rows.Next() {
		var rec domain.WorkerPresenceRecord
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.Name, &rec.Company, &rec.Unit,
			&rec.Date, &rec.Time, &rec.AccessPoint, &rec.EventType); err != nil {
			return nil, fmt.Errorf("scan presence record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresPresenceRepo) Batches(ctx context.Context) ([]domain.ImportBatch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT batch_id, source, records, dropped, imported_at
		 FROM presence_batches ORDER BY imported_at`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []domain.ImportBatch
	for rows.Next() {
		var b domain.ImportBatch
		if err := rows.Scan(&b.ID, &b.Source, &b.Records, &b.Dropped, &b.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresPresenceRepo) DeleteBatch(ctx context.Context, batchID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM presence_batches WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch %s: %w", batchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// NewPostgresDB opens the archive connection.
func NewPostgresDB(host string, port int, user, password, dbname, sslmode string) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
