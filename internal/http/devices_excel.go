package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"facilops-data/internal/domain"
)

// DeviceImportHeader is the import template header; columns match the
// alias tables the field extractor resolves on re-import.
var DeviceImportHeader = []string{
	"ID",
	"Nome",
	"Localização",
	"Módulo",
	"Status",
	"Responsável",
}

// DeviceExportHeader adds the derived/managed columns.
var DeviceExportHeader = []string{
	"ID",
	"Nome",
	"Localização",
	"Módulo",
	"Galpão",
	"Status",
	"Responsável",
	"Chamado",
}

// GenerateDeviceImportTemplate builds an empty import template sheet.
func GenerateDeviceImportTemplate() ([]byte, error) {
	return generateDeviceSheet(DeviceImportHeader, nil)
}

// GenerateDeviceExport builds the full device inventory sheet.
func GenerateDeviceExport(devices []domain.Device) ([]byte, error) {
	return generateDeviceSheet(DeviceExportHeader, devices)
}

func generateDeviceSheet(headers []string, devices []domain.Device) ([]byte, error) {
	f := excelize.NewFile()
	// Close is deferred manually: WriteTo needs the file open

	sheetName := "Dispositivos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		12, // ID
		30, // Nome
		30, // Localização
		12, // Módulo
		18, // Galpão (export only)
		12, // Status
		22, // Responsável (import template reaches here)
		16, // Chamado
	}
	for i := 0; i < len(headers); i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) && columnWidths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for rowIdx := range devices {
		d := &devices[rowIdx]
		row := rowIdx + 2
		for colIdx, header := range headers {
			var value any
			switch header {
			case "ID":
				value = d.SourceID
			case "Nome":
				value = d.Name
			case "Localização":
				value = d.Location
			case "Módulo":
				value = d.Module
			case "Galpão":
				value = d.Warehouse
			case "Status":
				value = string(d.Status)
			case "Responsável":
				value = d.Responsible
			case "Chamado":
				value = d.Ticket
			}
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// Export handles GET /devices/export?kind=.
func (h *DevicesHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind, ok := deviceKind(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("kind must be camera or access"))
		return
	}
	devices, err := h.repo.List(r.Context(), kind)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	blob, err := GenerateDeviceExport(devices)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	serveXLSX(w, fmt.Sprintf("dispositivos-%s.xlsx", kind), blob)
}

// Template handles GET /devices/template.
func (h *DevicesHandler) Template(w http.ResponseWriter, r *http.Request) {
	blob, err := GenerateDeviceImportTemplate()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	serveXLSX(w, "modelo-importacao.xlsx", blob)
}

func serveXLSX(w http.ResponseWriter, name string, blob []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(blob)
}
