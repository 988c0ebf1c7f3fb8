package domain

// WorkerPresenceRecord is one detected entry event for a third-party worker.
// Records are immutable once created: batches accumulate across imports and
// are only ever removed as a whole batch.
type WorkerPresenceRecord struct {
	ID          string `json:"id"`
	BatchID     string `json:"batch_id"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Unit        string `json:"unit"`
	Date        string `json:"date"` // YYYY-MM-DD or "N/A"
	Time        string `json:"time"` // HH:MM
	AccessPoint string `json:"access_point"`
	EventType   string `json:"event_type"`
}

// ImportBatch records one presence import (spreadsheet or OCR) so the whole
// batch can be listed and deleted later.
type ImportBatch struct {
	ID         string `json:"id"`
	Source     string `json:"source"` // file name or "ocr"
	Records    int    `json:"records"`
	Dropped    int    `json:"dropped"`
	ImportedAt string `json:"imported_at"` // RFC3339
}
