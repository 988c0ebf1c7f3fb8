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

// DocumentsHandler serves compliance documents. Status (VALID / WARNING /
// EXPIRED) is derived from the expiration date at read time.
type DocumentsHandler struct {
	repo   repository.DocumentsRepo
	now    func() time.Time
	logger *zap.Logger
}

func NewDocumentsHandler(repo repository.DocumentsRepo, logger *zap.Logger) *DocumentsHandler {
	return &DocumentsHandler{repo: repo, now: time.Now, logger: logger}
}

// Collection handles /documents: GET list, POST create.
func (h *DocumentsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		docs, err := h.repo.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		now := h.now()
		out := make([]map[string]any, 0, len(docs))
		for i := range docs {
			out = append(out, docs[i].ToJSON(now))
		}
		writeJSON(w, http.StatusOK, Ok(out))

	case http.MethodPost:
		var req struct {
			Name           string `json:"name"`
			Organ          string `json:"organ"`
			ExpirationDate string `json:"expiration_date"`
		}
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Organ) == "" || strings.TrimSpace(req.ExpirationDate) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("name, organ and expiration_date are required"))
			return
		}
		d := domain.Document{
			ID:             uuid.NewString(),
			Name:           req.Name,
			Organ:          req.Organ,
			ExpirationDate: req.ExpirationDate,
		}
		if err := h.repo.Save(r.Context(), &d); err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(d.ToJSON(h.now())))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /documents/{id}: PUT update, DELETE remove.
func (h *DocumentsHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/ops/api/v1/documents")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail("document id required"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			Name           string `json:"name"`
			Organ          string `json:"organ"`
			ExpirationDate string `json:"expiration_date"`
		}
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Organ) == "" || strings.TrimSpace(req.ExpirationDate) == "" {
			writeJSON(w, http.StatusBadRequest, Fail("name, organ and expiration_date are required"))
			return
		}
		d := domain.Document{ID: id, Name: req.Name, Organ: req.Organ, ExpirationDate: req.ExpirationDate}
		if err := h.repo.Save(r.Context(), &d); err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(d.ToJSON(h.now())))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			writeJSON(w, statusFor(err), Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": id}))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
