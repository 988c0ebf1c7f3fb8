package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"facilops-data/internal/domain"
	"facilops-data/internal/repository"
)

// TasksHandler serves task delegation: open a follow-up (usually against a
// flagged device), list, mark done.
type TasksHandler struct {
	repo    repository.TasksRepo
	devices repository.DevicesRepo
	logger  *zap.Logger
}

func NewTasksHandler(repo repository.TasksRepo, devices repository.DevicesRepo, logger *zap.Logger) *TasksHandler {
	return &TasksHandler{repo: repo, devices: devices, logger: logger}
}

// Collection handles /tasks: GET list, POST create.
func (h *TasksHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := h.repo.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(tasks))

	case http.MethodPost:
		var req struct {
			Title      string `json:"title"`
			Assignee   string `json:"assignee"`
			DeviceKey  string `json:"device_key"`
			DeviceKind string `json:"device_kind"`
		}
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Assignee) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("title and assignee are required"))
			return
		}
		t := domain.Task{
			ID:        uuid.NewString(),
			Title:     req.Title,
			Assignee:  req.Assignee,
			DeviceKey: req.DeviceKey,
			Status:    domain.TaskOpen,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.repo.Create(r.Context(), &t); err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		// cross-link: the flagged device carries the task id as its ticket
		if req.DeviceKey != "" && req.DeviceKind != "" {
			kind := domain.DeviceKind(req.DeviceKind)
			if d, err := h.devices.Get(r.Context(), kind, req.DeviceKey); err == nil {
				d.Ticket = t.ID
				if err := h.devices.Save(r.Context(), d); err != nil {
					h.logger.Warn("failed to link task to device",
						zap.String("task_id", t.ID), zap.Error(err))
				}
			}
		}
		writeJSON(w, http.StatusOK, Ok(t))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /tasks/{id}/done.
func (h *TasksHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ops/api/v1/tasks/"), "/")
	id := rest
	action := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id, action = rest[:i], rest[i+1:]
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail("task id required"))
		return
	}

	if action == "done" && r.Method == http.MethodPost {
		if err := h.repo.SetStatus(r.Context(), id, domain.TaskDone); err != nil {
			writeJSON(w, statusFor(err), Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"done": id}))
		return
	}
	w.WriteHeader(http.StatusMethodNotAllowed)
}
