package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"facilops-data/internal/domain"
	"facilops-data/internal/service"
	"facilops-data/internal/store"
)

const maxUploadBytes = 32 << 20

// OCRRecognizer is the external text-recognition collaborator.
type OCRRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ImportHandler serves the ingestion endpoints.
type ImportHandler struct {
	imports *service.ImportService
	ocr     OCRRecognizer
	kv      store.KV
	logger  *zap.Logger
}

func NewImportHandler(imports *service.ImportService, ocr OCRRecognizer, kv store.KV, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{imports: imports, ocr: ocr, kv: kv, logger: logger}
}

// ImportDevices handles POST /import/devices?kind=camera|access.
// Full replace of the device collection for that kind.
func (h *ImportHandler) ImportDevices(w http.ResponseWriter, r *http.Request) {
	kind := domain.DeviceKind(r.URL.Query().Get("kind"))
	if kind != domain.DeviceKindCamera && kind != domain.DeviceKindAccess {
		writeJSON(w, http.StatusBadRequest, Fail("kind must be camera or access"))
		return
	}

	name, blob, err := readUploadedFile(r, maxUploadBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid upload: "+err.Error()))
		return
	}

	result, err := h.imports.ImportDevices(r.Context(), name, blob, kind)
	if err != nil {
		h.logger.Error("device import failed", zap.String("file", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if result.Valid == 0 {
		writeJSON(w, http.StatusOK, Warn(result, "0 valid rows found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// ImportPresence handles POST /import/presence. Appends a batch.
func (h *ImportHandler) ImportPresence(w http.ResponseWriter, r *http.Request) {
	name, blob, err := readUploadedFile(r, maxUploadBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid upload: "+err.Error()))
		return
	}

	result, err := h.imports.ImportPresence(r.Context(), name, blob)
	if err != nil {
		h.logger.Error("presence import failed", zap.String("file", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if result.Valid == 0 {
		writeJSON(w, http.StatusOK, Warn(result, "0 valid rows found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// ImportOCR handles POST /import/ocr: image -> recognized text -> lenient
// presence batch for the operator-selected unit and date.
func (h *ImportHandler) ImportOCR(w http.ResponseWriter, r *http.Request) {
	if h.ocr == nil {
		writeJSON(w, http.StatusServiceUnavailable, Fail("ocr service not configured"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid upload: "+err.Error()))
		return
	}
	unit := strings.TrimSpace(r.FormValue("unit"))
	date := strings.TrimSpace(r.FormValue("date"))
	if unit == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, Fail("unit and date are required"))
		return
	}

	_, blob, err := readUploadedFile(r, maxUploadBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid upload: "+err.Error()))
		return
	}

	text, err := h.ocr.Recognize(r.Context(), blob)
	if err != nil {
		// surfaced as a single user-visible message, no automatic retry
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}

	result, err := h.imports.ImportPresenceFromText(r.Context(), text, unit, date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if result.Valid == 0 {
		writeJSON(w, http.StatusOK, Warn(result, "0 valid rows found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// History handles GET /import/history: last import summary per collection,
// straight out of the KV.
func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.kv == nil {
		writeJSON(w, http.StatusOK, Ok(map[string]any{}))
		return
	}
	keys, err := h.kv.ScanKeys(r.Context(), "import:last:*")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	out := map[string]any{}
	for _, key := range keys {
		raw, err := h.kv.Get(r.Context(), key)
		if err != nil {
			continue
		}
		var entry map[string]any
		if json.Unmarshal([]byte(raw), &entry) == nil {
			out[strings.TrimPrefix(key, "import:last:")] = entry
		}
	}
	writeJSON(w, http.StatusOK, Ok(out))
}
