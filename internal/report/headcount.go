package report

import (
	"sort"
	"strings"

	"facilops-data/internal/domain"
)

// ProcessedWorker is the representative retained for one unique presence.
// The first-seen record wins; EventCount says how many raw scan events
// collapsed into it so the drill-down can still show the real event count.
type ProcessedWorker struct {
	Record     domain.WorkerPresenceRecord `json:"record"`
	EventCount int                         `json:"event_count"`
}

// UnitHeadcount is the per-unit aggregation result.
type UnitHeadcount struct {
	Unit      string            `json:"unit"`
	Total     int               `json:"total"`
	ByCompany map[string]int    `json:"by_company"`
	Workers   []ProcessedWorker `json:"workers"`
}

// Headcount deduplicates presence records into unique daily presences per
// unit. Two rows sharing date|unit|NAME|company are the same physical
// entry and count once. Pure function of its input: re-running on the same
// records yields the same result. Results are ordered by descending total.
//
// date filters to one day when non-empty; unit filters to one unit when
// non-empty. An empty date aggregates across all days, and the key still
// carries each record's own date, so the same person on two days counts
// twice.
func Headcount(records []domain.WorkerPresenceRecord, date, unit string) []UnitHeadcount {
	type slot struct {
		unit string
		idx  int
	}
	seen := map[string]slot{}
	byUnit := map[string]*UnitHeadcount{}
	var order []string

	for i := range records {
		rec := &records[i]
		if date != "" && rec.Date != date {
			continue
		}
		if unit != "" && rec.Unit != unit {
			continue
		}

		key := rec.Date + "|" + rec.Unit + "|" + strings.ToUpper(strings.TrimSpace(rec.Name)) + "|" + rec.Company
		if s, ok := seen[key]; ok {
			byUnit[s.unit].Workers[s.idx].EventCount++
			continue
		}

		u, ok := byUnit[rec.Unit]
		if !ok {
			u = &UnitHeadcount{Unit: rec.Unit, ByCompany: map[string]int{}}
			byUnit[rec.Unit] = u
			order = append(order, rec.Unit)
		}
		u.Total++
		u.ByCompany[rec.Company]++
		u.Workers = append(u.Workers, ProcessedWorker{Record: *rec, EventCount: 1})
		seen[key] = slot{unit: rec.Unit, idx: len(u.Workers) - 1}
	}

	out := make([]UnitHeadcount, 0, len(order))
	for _, id := range order {
		out = append(out, *byUnit[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
