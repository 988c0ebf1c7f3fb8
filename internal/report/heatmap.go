package report

import (
	"strconv"
	"time"

	"facilops-data/internal/domain"
)

// HeatmapGrid buckets entry events by weekday (0=Sunday) and hour of day.
// Additive, no dedup: every scan event counts, unlike Headcount.
type HeatmapGrid [7][24]int

// Heatmap builds the weekday × hour activity grid. The date is parsed
// anchored at noon so a UTC/local boundary never flips the weekday; the
// hour comes from the HH prefix of the time field. Records with an
// unusable date or time are skipped.
func Heatmap(records []domain.WorkerPresenceRecord) HeatmapGrid {
	var grid HeatmapGrid
	for _, rec := range records {
		if rec.Date == "" || rec.Date == "N/A" {
			continue
		}
		t, err := time.Parse("2006-01-02 15:04", rec.Date+" 12:00")
		if err != nil {
			continue
		}
		if len(rec.Time) < 2 {
			continue
		}
		hour, err := strconv.Atoi(rec.Time[:2])
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		grid[int(t.Weekday())][hour]++
	}
	return grid
}
