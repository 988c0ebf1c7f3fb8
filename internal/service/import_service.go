package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"facilops-data/internal/domain"
	"facilops-data/internal/ingest"
	"facilops-data/internal/repository"
	"facilops-data/internal/store"
)

// StatusNotifier receives device status transitions; nil-safe optional
// collaborator (the MQTT notifier implements it).
type StatusNotifier interface {
	NotifyStatus(d *domain.Device)
}

// ImportResult summarizes one import for the caller.
type ImportResult struct {
	BatchID string `json:"batch_id,omitempty"`
	Valid   int    `json:"valid"`
	Dropped int    `json:"dropped"`
}

// ImportService runs one import fully before committing its result. There
// is no queuing and no cancellation; a new upload is simply a new
// independent run.
type ImportService struct {
	devices  repository.DevicesRepo
	presence repository.PresenceRepo
	archive  repository.PresenceRepo // optional Postgres mirror, may be nil
	kv       store.KV
	notifier StatusNotifier
	logger   *zap.Logger
}

func NewImportService(
	devices repository.DevicesRepo,
	presence repository.PresenceRepo,
	archive repository.PresenceRepo,
	kv store.KV,
	notifier StatusNotifier,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		devices:  devices,
		presence: presence,
		archive:  archive,
		kv:       kv,
		notifier: notifier,
		logger:   logger,
	}
}

// ImportDevices decodes a spreadsheet/CSV blob and replaces the whole
// device collection for the kind. Re-import is full replace, not merge.
func (s *ImportService) ImportDevices(ctx context.Context, fileName string, blob []byte, kind domain.DeviceKind) (*ImportResult, error) {
	rows, err := ingest.Decode(fileName, blob)
	if err != nil {
		return nil, err
	}
	devices, dropped := ingest.BuildDevices(rows, kind)

	if err := s.devices.ReplaceAll(ctx, kind, devices); err != nil {
		return nil, fmt.Errorf("replace %s collection: %w", kind, err)
	}
	s.logger.Info("device import committed",
		zap.String("file", fileName),
		zap.String("kind", string(kind)),
		zap.Int("devices", len(devices)),
		zap.Int("dropped", dropped))

	for i := range devices {
		if devices[i].Status == domain.StatusOffline && s.notifier != nil {
			s.notifier.NotifyStatus(&devices[i])
		}
	}

	s.recordLastImport(ctx, "devices:"+string(kind), fileName, len(devices), dropped)
	return &ImportResult{Valid: len(devices), Dropped: dropped}, nil
}

// ResetDevices wipes a device collection together with its now-stale
// last-import summary.
func (s *ImportService) ResetDevices(ctx context.Context, kind domain.DeviceKind) error {
	if err := s.devices.DeleteAll(ctx, kind); err != nil {
		return err
	}
	if s.kv != nil {
		if err := s.kv.Del(ctx, "import:last:devices:"+string(kind)); err != nil {
			s.logger.Warn("failed to clear import history", zap.Error(err))
		}
	}
	return nil
}

// ImportPresence decodes an access-control export and appends a new batch
// of presence records alongside the existing ones.
func (s *ImportService) ImportPresence(ctx context.Context, fileName string, blob []byte) (*ImportResult, error) {
	rows, err := ingest.Decode(fileName, blob)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	records, dropped := ingest.BuildPresence(rows, batchID)
	return s.commitPresenceBatch(ctx, batchID, fileName, records, dropped)
}

// ImportPresenceFromText runs the lenient OCR path: recognized text plus
// operator-selected unit and date become a presence batch.
func (s *ImportService) ImportPresenceFromText(ctx context.Context, text, unit, date string) (*ImportResult, error) {
	batchID := uuid.NewString()
	records, dropped := ingest.BuildPresenceFromText(text, unit, date, batchID)
	return s.commitPresenceBatch(ctx, batchID, "ocr", records, dropped)
}

func (s *ImportService) commitPresenceBatch(ctx context.Context, batchID, source string, records []domain.WorkerPresenceRecord, dropped int) (*ImportResult, error) {
	if len(records) == 0 {
		// not an error: the user-facing signal is the zero count
		return &ImportResult{Valid: 0, Dropped: dropped}, nil
	}

	batch := domain.ImportBatch{
		ID:         batchID,
		Source:     source,
		Records:    len(records),
		Dropped:    dropped,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.presence.AppendBatch(ctx, batch, records); err != nil {
		return nil, fmt.Errorf("append presence batch: %w", err)
	}
	if s.archive != nil {
		if err := s.archive.AppendBatch(ctx, batch, records); err != nil {
			// archive is best effort, the live store already committed
			s.logger.Warn("presence archive write failed",
				zap.String("batch_id", batchID), zap.Error(err))
		}
	}

	s.logger.Info("presence batch committed",
		zap.String("batch_id", batchID),
		zap.String("source", source),
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))

	s.recordLastImport(ctx, "presence", source, len(records), dropped)
	return &ImportResult{BatchID: batchID, Valid: len(records), Dropped: dropped}, nil
}

// DeleteBatch removes a whole presence import (live store and archive).
func (s *ImportService) DeleteBatch(ctx context.Context, batchID string) error {
	if err := s.presence.DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.DeleteBatch(ctx, batchID); err != nil && err != repository.ErrNotFound {
			s.logger.Warn("presence archive delete failed",
				zap.String("batch_id", batchID), zap.Error(err))
		}
	}
	return nil
}

// recordLastImport keeps the last import summary per collection in the KV,
// replacing the browser-storage history the old dashboard relied on.
func (s *ImportService) recordLastImport(ctx context.Context, kind, source string, valid, dropped int) {
	if s.kv == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"source":  source,
		"valid":   valid,
		"dropped": dropped,
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err := s.kv.Set(ctx, "import:last:"+kind, string(payload), 0); err != nil {
		s.logger.Warn("failed to record import history", zap.Error(err))
	}
}
