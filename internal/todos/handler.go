package todos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"tv-gateway/internal/httputil"
	"tv-gateway/internal/respond"
)

// Repository is the seam the handler talks through, so the HTTP surface can
// be exercised without a database.
type Repository interface {
	List(ctx context.Context) ([]Todo, error)
	ListComplete(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id int64) (Todo, error)
	Create(ctx context.Context, name string, isComplete bool) (Todo, error)
	Update(ctx context.Context, id int64, name string, isComplete bool) error
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type todoRequest struct {
	Name       string `json:"name"`
	IsComplete bool   `json:"is_complete"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	if items == nil {
		items = []Todo{}
	}
	respond.Ok(items).Write(w)
}

func (h *Handler) ListComplete(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListComplete(r.Context())
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	if items == nil {
		items = []Todo{}
	}
	respond.Ok(items).Write(w)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, idRaw string) {
	id, ok := parseID(idRaw)
	if !ok {
		respond.NotFound().Write(w)
		return
	}
	t, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		respond.NotFound().Write(w)
		return
	}
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	respond.Ok(t).Write(w)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "name is required"})
		return
	}
	t, err := h.repo.Create(r.Context(), req.Name, req.IsComplete)
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	respond.Created(fmt.Sprintf("/todoitems/%d", t.ID), t).Write(w)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, idRaw string) {
	id, ok := parseID(idRaw)
	if !ok {
		respond.NotFound().Write(w)
		return
	}
	var req todoRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	err := h.repo.Update(r.Context(), id, req.Name, req.IsComplete)
	if errors.Is(err, pgx.ErrNoRows) {
		respond.NotFound().Write(w)
		return
	}
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	respond.NoContent().Write(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, idRaw string) {
	id, ok := parseID(idRaw)
	if !ok {
		respond.NotFound().Write(w)
		return
	}
	err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		respond.NotFound().Write(w)
		return
	}
	if err != nil {
		respond.Problem(err.Error()).Write(w)
		return
	}
	respond.NoContent().Write(w)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
