package division

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/frahmantamala/employee-directory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(q ListQuery) ([]*Division, *transport.Pagination, error)
	Create(dto DivisionDTO) (*Division, error)
	Update(id int64, dto DivisionDTO) (*Division, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Name: r.URL.Query().Get("name"),
		Page: 1,
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			q.Page = p
		}
	}

	divisions, pagination, err := h.Service.List(q)
	if err != nil {
		h.Logger.Error("ListDivisions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WritePaginated(w, http.StatusOK, "Divisions fetched successfully",
		DivisionsResponse{Divisions: divisions}, pagination)
}

func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var dto DivisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	division, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateDivision: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Division created successfully",
		DivisionResponse{Division: division})
}

func (h *Handler) UpdateDivision(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid division ID")
		return
	}

	var dto DivisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	division, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateDivision: service error", "error", err, "division_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Division updated successfully",
		DivisionResponse{Division: division})
}

func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid division ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteDivision: service error", "error", err, "division_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Division deleted successfully", nil)
}
