package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"facilops-data/internal/report"
	"facilops-data/internal/repository"
	"facilops-data/internal/service"
)

// ReportsHandler serves headcount/heatmap analytics and batch management.
type ReportsHandler struct {
	presence repository.PresenceRepo
	imports  *service.ImportService
	logger   *zap.Logger
}

func NewReportsHandler(presence repository.PresenceRepo, imports *service.ImportService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{presence: presence, imports: imports, logger: logger}
}

// Headcount handles GET /reports/headcount?date=YYYY-MM-DD&unit=...
// Empty filters aggregate across everything.
func (h *ReportsHandler) Headcount(w http.ResponseWriter, r *http.Request) {
	records, err := h.presence.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	result := report.Headcount(records, r.URL.Query().Get("date"), r.URL.Query().Get("unit"))
	writeJSON(w, http.StatusOK, Ok(result))
}

// Heatmap handles GET /reports/heatmap.
func (h *ReportsHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	records, err := h.presence.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(report.Heatmap(records)))
}

// Batches handles GET /presence/batches.
func (h *ReportsHandler) Batches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.presence.Batches(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(batches))
}

// DeleteBatch handles DELETE /presence/batches/{id}: removes a whole
// import, the only way presence records are ever deleted.
func (h *ReportsHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/ops/api/v1/presence/batches")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail("batch id required"))
		return
	}
	if err := h.imports.DeleteBatch(r.Context(), id); err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": id}))
}
