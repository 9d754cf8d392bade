// internal/viewer/handler.go
package viewer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prodview/internal/catalog"
	"prodview/internal/clients"
	"prodview/internal/export"
	"prodview/internal/remote"
)

// Handler exposes the viewer over HTTP. Reads return the current
// Snapshot; every mutation is an event on the service loop.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the viewer API on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/products", h.handleSnapshot)
	r.Post("/products", h.handleCreate)
	r.Put("/products/{id}", h.handleSaveEdit)
	r.Post("/search", h.handleSearch)
	r.Post("/sort", h.handleSort)
	r.Post("/page", h.handlePage)
	r.Post("/per-page", h.handlePerPage)
	r.Get("/export", h.handleExport)
	return r
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Q string `json:"q"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.service.Search(req.Q)
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handleSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	field, err := catalog.ParseSortField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.service.SortBy(field)
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int    `json:"page"`
		Move string `json:"move"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	switch req.Move {
	case "next":
		h.service.Next()
	case "prev":
		h.service.Prev()
	case "":
		h.service.GoTo(req.Page)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown move %q", req.Move))
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handlePerPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Per int `json:"per"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Per <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("per must be positive, got %d", req.Per))
		return
	}
	h.service.SetPerPage(req.Per)
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handleSaveEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid product id"))
		return
	}
	var req struct {
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.service.SaveEdit(r.Context(), remote.EditDraft{
		TargetID:    id,
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
	})
	h.writeOutcome(w, out, err, http.StatusOK)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		CategoryID  int64   `json:"categoryId"`
		Image       string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.service.CreateProduct(r.Context(), remote.CreateDraft{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageURL:    req.Image,
	})
	h.writeOutcome(w, out, err, http.StatusCreated)
}

// writeOutcome maps one remote action result onto HTTP: validation
// failures 422, single-flight rejections 409, remote failures 502 with
// the upstream status echoed, success the given status with the
// canonical record.
func (h *Handler) writeOutcome(w http.ResponseWriter, out remote.Outcome, err error, okStatus int) {
	var verr *remote.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.Is(err, remote.ErrBusy):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	case out.Err != nil:
		body := map[string]any{"error": out.Err.Error()}
		var apiErr *clients.APIError
		if errors.As(out.Err, &apiErr) {
			body["upstream_status"] = apiErr.Status
		}
		writeJSON(w, http.StatusBadGateway, body)
	default:
		writeJSON(w, okStatus, out.Product)
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.ExportPage(&buf)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
