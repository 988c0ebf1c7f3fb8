package ingest

import (
	"strings"

	"github.com/google/uuid"

	"facilops-data/internal/domain"
)

// BuildDevices assembles Device records from decoded rows. Malformed rows
// (no name) are dropped, never fatal; the dropped count is the only signal.
// Status inference is permissive: only explicit offline keywords flag a
// device down, anything else defaults ONLINE.
func BuildDevices(rows []Row, kind domain.DeviceKind) (devices []domain.Device, dropped int) {
	for _, row := range rows {
		name := Field(row, AliasesDeviceName...)
		if name == "" {
			dropped++
			continue
		}
		location := Field(row, AliasesLocation...)

		unit := ClassifyUnit(location, name, Field(row, AliasesModule...))
		warehouse := unit
		if warehouse == "" {
			warehouse = "N/A"
		}

		status := domain.StatusOnline
		if IsOfflineText(Field(row, AliasesStatus...)) {
			status = domain.StatusOffline
		}

		responsible := Field(row, AliasesResponsible...)
		if unit != "" {
			responsible = ResponsibleFor(unit, responsible)
		} else if responsible == "" {
			responsible = "N/A"
		}

		devices = append(devices, domain.Device{
			Key:         uuid.NewString(),
			SourceID:    Field(row, AliasesDeviceID...),
			Kind:        kind,
			Name:        name,
			Location:    location,
			Module:      Field(row, AliasesModule...),
			Warehouse:   warehouse,
			Responsible: responsible,
			Status:      status,
		})
	}
	return devices, dropped
}

// isEntryEvent keeps arrivals and discards departures. Matched on keyword
// so "Entrada", "ENTRADA LIBERADA" etc. all pass.
func isEntryEvent(eventType string) bool {
	text := strings.ToUpper(eventType)
	if strings.Contains(text, "SAIDA") || strings.Contains(text, "SAÍDA") || strings.Contains(text, "EXIT") {
		return false
	}
	return strings.Contains(text, "ENTRADA") || strings.Contains(text, "ENTRY") || strings.Contains(text, "ACESSO")
}

// BuildPresence assembles WorkerPresenceRecords from an access-control
// export. This is the strict path: exit events and rows whose company or
// unit cannot be classified are dropped so stored records always carry a
// catalog company and unit.
func BuildPresence(rows []Row, batchID string) (records []domain.WorkerPresenceRecord, dropped int) {
	for _, row := range rows {
		eventType := Field(row, AliasesEventType...)
		if !isEntryEvent(eventType) {
			dropped++
			continue
		}

		name := Field(row, AliasesName...)
		accessPoint := Field(row, AliasesAccessPoint...)
		group := Field(row, AliasesGroup...)
		if name == "" {
			dropped++
			continue
		}

		company := ClassifyCompany(group, name)
		unit := ClassifyUnit(accessPoint, group)
		if company == "" || unit == "" {
			dropped++
			continue
		}

		records = append(records, domain.WorkerPresenceRecord{
			ID:          uuid.NewString(),
			BatchID:     batchID,
			Name:        name,
			Company:     company,
			Unit:        unit,
			Date:        NormalizeDate(Field(row, AliasesDate...)),
			Time:        ExtractTime(Field(row, AliasesTime...)),
			AccessPoint: accessPoint,
			EventType:   eventType,
		})
	}
	return records, dropped
}

// BuildPresenceFromText is the lenient OCR path: each non-empty line of
// recognized text becomes a presence record for the given unit and date.
// OCR noise would discard most of a batch under strict classification, so
// unmatched companies keep the row with the NÃO IDENTIFICADO sentinel and
// the operator reviews them by eye.
func BuildPresenceFromText(text, unit, date, batchID string) (records []domain.WorkerPresenceRecord, dropped int) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, domain.WorkerPresenceRecord{
			ID:        uuid.NewString(),
			BatchID:   batchID,
			Name:      line,
			Company:   ClassifyCompanyOrDefault(line),
			Unit:      unit,
			Date:      date,
			Time:      "",
			EventType: "Entrada",
		})
	}
	return records, dropped
}
