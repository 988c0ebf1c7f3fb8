package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facilops-data/internal/domain"
	"facilops-data/internal/repository"
)

type recordingNotifier struct {
	offline []string
}

func (n *recordingNotifier) NotifyStatus(d *domain.Device) {
	n.offline = append(n.offline, d.Name)
}

func TestImportDevicesNotifiesOfflineOnly(t *testing.T) {
	devices := repository.NewMemoryDevicesRepo()
	notifier := &recordingNotifier{}
	svc := NewImportService(devices, repository.NewMemoryPresenceRepo(), nil, nil, notifier, zap.NewNop())

	csv := "Nome,Localização,Status\n" +
		"CAM-01,G202LF,Offline\n" +
		"CAM-02,G202LF,ligado\n" +
		"CAM-03,G303LF,Sem sinal\n"
	res, err := svc.ImportDevices(context.Background(), "cameras.csv", []byte(csv), domain.DeviceKindCamera)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Valid)
	assert.ElementsMatch(t, []string{"CAM-01", "CAM-03"}, notifier.offline)
}

func TestImportPresenceFromTextLenient(t *testing.T) {
	presence := repository.NewMemoryPresenceRepo()
	svc := NewImportService(repository.NewMemoryDevicesRepo(), presence, nil, nil, nil, zap.NewNop())

	text := "João Silva MULT\nMaria Costa\n\n"
	res, err := svc.ImportPresenceFromText(context.Background(), text, "GALPÃO G2", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Valid)
	assert.Zero(t, res.Dropped)

	records, err := presence.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "GALPÃO G2", rec.Unit)
		assert.Equal(t, "2024-03-05", rec.Date)
		assert.Equal(t, res.BatchID, rec.BatchID)
	}
	// no company keyword in the line falls back to the sentinel code
	var companies []string
	for _, rec := range records {
		companies = append(companies, rec.Company)
	}
	assert.Contains(t, companies, "MULT")
	assert.Contains(t, companies, "NÃO IDENTIFICADO")
}

func TestDeleteBatchMirrorsToArchive(t *testing.T) {
	presence := repository.NewMemoryPresenceRepo()
	archive := repository.NewMemoryPresenceRepo()
	svc := NewImportService(repository.NewMemoryDevicesRepo(), presence, archive, nil, nil, zap.NewNop())

	res, err := svc.ImportPresenceFromText(context.Background(), "João Silva B11", "GALPÃO G3", "2024-03-05")
	require.NoError(t, err)
	require.Equal(t, 1, res.Valid)

	archived, err := archive.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, archived, 1, "archive receives the same batch")

	require.NoError(t, svc.DeleteBatch(context.Background(), res.BatchID))

	live, err := presence.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, live)
	archived, err = archive.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, archived, "archive delete cascades with the live store")
}

func TestImportPresenceEmptyDecodeIsNotAnError(t *testing.T) {
	svc := NewImportService(repository.NewMemoryDevicesRepo(), repository.NewMemoryPresenceRepo(), nil, nil, nil, zap.NewNop())

	res, err := svc.ImportPresence(context.Background(), "vazio.csv", []byte("Pessoa,Tipo de evento\n"))
	require.NoError(t, err)
	assert.Zero(t, res.Valid)
	assert.Empty(t, res.BatchID)
}
