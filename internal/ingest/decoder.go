package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX turns a spreadsheet blob into header-keyed rows. Only the
// first sheet is read; row 1 must be the header. Rows shorter than the
// header are padded, longer ones truncated.
func DecodeXLSX(blob []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rowsFromCells(raw), nil
}

// DecodeCSV turns a CSV blob into header-keyed rows. Delimiter is sniffed
// between comma and semicolon on the header line; BOM, stray quotes and
// \r artifacts are trimmed per cell.
func DecodeCSV(blob []byte) ([]Row, error) {
	text := strings.TrimPrefix(string(blob), "\uFEFF")

	sep := ','
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header := text[:i]
		if strings.Count(header, ";") > strings.Count(header, ",") {
			sep = ';'
		}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rowsFromCells(records), nil
}

// Decode picks the decoder by file name extension, defaulting to CSV.
func Decode(name string, blob []byte) ([]Row, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return DecodeXLSX(blob)
	}
	return DecodeCSV(blob)
}

func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}
	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = cleanCell(h)
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := Row{}
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			var v string
			if i < len(line) {
				v = cleanCell(line[i])
			}
			if v != "" {
				empty = false
			}
			row[header] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// cleanCell strips BOM/quote/\r artifacts left behind by vendor exporters.
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.Trim(s, "\"\r")
	return strings.TrimSpace(s)
}
