package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router uses the standard library ServeMux (no third-party router
// dependency on purpose).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodGuard(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterImportRoutes wires the ingestion endpoints.
func (r *Router) RegisterImportRoutes(h *ImportHandler) {
	r.Handle("/ops/api/v1/import/devices", methodGuard(http.MethodPost, h.ImportDevices))
	r.Handle("/ops/api/v1/import/presence", methodGuard(http.MethodPost, h.ImportPresence))
	r.Handle("/ops/api/v1/import/ocr", methodGuard(http.MethodPost, h.ImportOCR))
	r.Handle("/ops/api/v1/import/history", methodGuard(http.MethodGet, h.History))
}

// RegisterDeviceRoutes wires device management, export and template.
func (r *Router) RegisterDeviceRoutes(h *DevicesHandler) {
	r.Handle("/ops/api/v1/devices/export", methodGuard(http.MethodGet, h.Export))
	r.Handle("/ops/api/v1/devices/template", methodGuard(http.MethodGet, h.Template))
	r.Handle("/ops/api/v1/devices", h.Collection)
	r.Handle("/ops/api/v1/devices/", h.Item)
}

// RegisterReportRoutes wires headcount/heatmap plus batch management.
func (r *Router) RegisterReportRoutes(h *ReportsHandler) {
	r.Handle("/ops/api/v1/reports/headcount", methodGuard(http.MethodGet, h.Headcount))
	r.Handle("/ops/api/v1/reports/heatmap", methodGuard(http.MethodGet, h.Heatmap))
	r.Handle("/ops/api/v1/presence/batches", methodGuard(http.MethodGet, h.Batches))
	r.Handle("/ops/api/v1/presence/batches/", methodGuard(http.MethodDelete, h.DeleteBatch))
}

// RegisterDocumentRoutes wires compliance documents.
func (r *Router) RegisterDocumentRoutes(h *DocumentsHandler) {
	r.Handle("/ops/api/v1/documents", h.Collection)
	r.Handle("/ops/api/v1/documents/", h.Item)
}

// RegisterTaskRoutes wires task delegation.
func (r *Router) RegisterTaskRoutes(h *TasksHandler) {
	r.Handle("/ops/api/v1/tasks", h.Collection)
	r.Handle("/ops/api/v1/tasks/", h.Item)
}
