package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"facilops-data/internal/domain"
	"facilops-data/internal/ingest"
	"facilops-data/internal/repository"
	"facilops-data/internal/service"
)

// DevicesHandler serves device management: list, manual add/edit, status
// toggle, ticket assignment, delete, full reset, xlsx export/template.
type DevicesHandler struct {
	repo     repository.DevicesRepo
	notifier service.StatusNotifier // optional
	imports  *service.ImportService
	logger   *zap.Logger
}

func NewDevicesHandler(repo repository.DevicesRepo, notifier service.StatusNotifier, imports *service.ImportService, logger *zap.Logger) *DevicesHandler {
	return &DevicesHandler{repo: repo, notifier: notifier, imports: imports, logger: logger}
}

func deviceKind(r *http.Request) (domain.DeviceKind, bool) {
	kind := domain.DeviceKind(r.URL.Query().Get("kind"))
	return kind, kind == domain.DeviceKindCamera || kind == domain.DeviceKindAccess
}

// Collection handles /devices: GET list, POST manual add, DELETE reset.
func (h *DevicesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	kind, ok := deviceKind(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("kind must be camera or access"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		devices, err := h.repo.List(r.Context(), kind)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		out := make([]map[string]any, 0, len(devices))
		for i := range devices {
			out = append(out, devices[i].ToJSON())
		}
		writeJSON(w, http.StatusOK, Ok(out))

	case http.MethodPost:
		var req struct {
			Name        string `json:"name"`
			Location    string `json:"location"`
			Module      string `json:"module"`
			Warehouse   string `json:"warehouse"`
			Responsible string `json:"responsible"`
		}
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		// required fields block submission before anything persists
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Warehouse) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("name and warehouse are required"))
			return
		}
		d := domain.Device{
			Key:         uuid.NewString(),
			Kind:        kind,
			Name:        req.Name,
			Location:    req.Location,
			Module:      req.Module,
			Warehouse:   req.Warehouse,
			Responsible: ingest.ResponsibleFor(req.Warehouse, req.Responsible),
			Status:      domain.StatusOnline,
		}
		if err := h.repo.Save(r.Context(), &d); err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(d.ToJSON()))

	case http.MethodDelete:
		if err := h.imports.ResetDevices(r.Context(), kind); err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"reset": string(kind)}))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /devices/{key} and /devices/{key}/{action}.
func (h *DevicesHandler) Item(w http.ResponseWriter, r *http.Request) {
	kind, ok := deviceKind(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("kind must be camera or access"))
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ops/api/v1/devices/"), "/")
	key := rest
	action := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		key, action = rest[:i], rest[i+1:]
	}
	if key == "" {
		writeJSON(w, http.StatusBadRequest, Fail("device key required"))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPut:
		h.update(w, r, kind, key)
	case action == "" && r.Method == http.MethodDelete:
		if err := h.repo.Delete(r.Context(), kind, key); err != nil {
			writeJSON(w, statusFor(err), Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": key}))
	case action == "status" && r.Method == http.MethodPost:
		h.toggleStatus(w, r, kind, key)
	case action == "ticket" && r.Method == http.MethodPost:
		h.assignTicket(w, r, kind, key)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DevicesHandler) update(w http.ResponseWriter, r *http.Request, kind domain.DeviceKind, key string) {
	d, err := h.repo.Get(r.Context(), kind, key)
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Location    *string `json:"location"`
		Module      *string `json:"module"`
		Warehouse   *string `json:"warehouse"`
		Responsible *string `json:"responsible"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("name cannot be empty"))
			return
		}
		d.Name = *req.Name
	}
	if req.Location != nil {
		d.Location = *req.Location
	}
	if req.Module != nil {
		d.Module = *req.Module
	}
	if req.Warehouse != nil {
		if strings.TrimSpace(*req.Warehouse) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("warehouse cannot be empty"))
			return
		}
		d.Warehouse = *req.Warehouse
	}
	if req.Responsible != nil {
		d.Responsible = *req.Responsible
	}
	if err := h.repo.Save(r.Context(), d); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(d.ToJSON()))
}

// toggleStatus accepts either an explicit status or a raw status text from
// the vendor console; raw text goes through the exact-token offline match.
func (h *DevicesHandler) toggleStatus(w http.ResponseWriter, r *http.Request, kind domain.DeviceKind, key string) {
	d, err := h.repo.Get(r.Context(), kind, key)
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}
	var req struct {
		Status  string `json:"status"`
		RawText string `json:"raw_text"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	switch {
	case strings.EqualFold(req.Status, string(domain.StatusOffline)):
		d.Status = domain.StatusOffline
	case strings.EqualFold(req.Status, string(domain.StatusOnline)):
		d.Status = domain.StatusOnline
	case req.RawText != "":
		if ingest.IsOfflineToken(req.RawText) {
			d.Status = domain.StatusOffline
		} else {
			d.Status = domain.StatusOnline
		}
	default:
		// bare toggle
		if d.Status == domain.StatusOnline {
			d.Status = domain.StatusOffline
		} else {
			d.Status = domain.StatusOnline
		}
	}

	if err := h.repo.Save(r.Context(), d); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if h.notifier != nil {
		h.notifier.NotifyStatus(d)
	}
	writeJSON(w, http.StatusOK, Ok(d.ToJSON()))
}

func (h *DevicesHandler) assignTicket(w http.ResponseWriter, r *http.Request, kind domain.DeviceKind, key string) {
	d, err := h.repo.Get(r.Context(), kind, key)
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}
	var req struct {
		Ticket string `json:"ticket"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	d.Ticket = req.Ticket
	if err := h.repo.Save(r.Context(), d); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(d.ToJSON()))
}

func statusFor(err error) int {
	if err == repository.ErrNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
