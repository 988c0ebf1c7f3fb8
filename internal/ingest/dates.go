package ingest

import (
	"strconv"
	"strings"
	"time"
)

// DateNA is the sentinel for unparseable date cells.
const DateNA = "N/A"

// sheetEpochOffsetDays converts a spreadsheet serial date (1899-12-30
// convention) to days since the Unix epoch.
const sheetEpochOffsetDays = 25569

// NormalizeDate converts heterogeneous date cells to YYYY-MM-DD.
//
//	numeric serial  -> days since the sheet epoch, rendered as a UTC date
//	"DD/MM/YYYY"    -> components reordered, never recomputed
//	"YYYY-MM-DD..." -> date portion passed through
//	anything else   -> "N/A"
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DateNA
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(serial)
	}

	if strings.Contains(s, "/") {
		// DD/MM/YYYY, possibly followed by a time
		if i := strings.IndexByte(s, ' '); i >= 0 {
			s = s[:i]
		}
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return DateNA
		}
		day, month, year := parts[0], parts[1], parts[2]
		if len(day) == 1 {
			day = "0" + day
		}
		if len(month) == 1 {
			month = "0" + month
		}
		if len(year) != 4 {
			return DateNA
		}
		return year + "-" + month + "-" + day
	}

	if strings.Contains(s, "-") {
		// already ISO; strip any time portion
		if i := strings.IndexAny(s, " T"); i >= 0 {
			s = s[:i]
		}
		return s
	}

	return DateNA
}

// serialToDate renders a spreadsheet serial number as a calendar date.
// The one-minute bump counters truncation drift in serials exported as
// floor()ed day fractions.
func serialToDate(serial float64) string {
	ms := int64((serial-sheetEpochOffsetDays)*86400*1000) + 60*1000
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// ExtractTime pulls the clock portion out of a time cell. Some exports
// combine date and time in one cell; the text after the space is the clock.
// Single-digit hours are zero-padded so downstream hour bucketing always
// sees HH:MM. Returns HH:MM when recognizable, else the trimmed input.
func ExtractTime(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	if len(s) >= 4 && s[1] == ':' {
		s = "0" + s
	}
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}
