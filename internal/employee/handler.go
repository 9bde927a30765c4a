package employee

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/frahmantamala/employee-directory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(q ListQuery) ([]*Employee, *transport.Pagination, error)
	Create(ctx context.Context, dto EmployeeDTO, image *ImageUpload) (*Employee, error)
	Update(ctx context.Context, id int64, dto EmployeeDTO, image *ImageUpload) (*Employee, error)
	Delete(ctx context.Context, id int64) error
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Name: r.URL.Query().Get("name"),
		Page: 1,
	}
	if divStr := r.URL.Query().Get("division_id"); divStr != "" {
		if d, err := strconv.ParseInt(divStr, 10, 64); err == nil && d > 0 {
			q.DivisionID = d
		}
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			q.Page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			q.PerPage = pp
		}
	}

	employees, pagination, err := h.Service.List(q)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WritePaginated(w, http.StatusOK, "Employees fetched successfully",
		EmployeesResponse{Employees: employees}, pagination)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	dto, image, cleanup, err := h.parseMultipart(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer cleanup()

	emp, svcErr := h.Service.Create(r.Context(), dto, image)
	if svcErr != nil {
		h.Logger.Error("CreateEmployee: service error", "error", svcErr)
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Employee created successfully",
		EmployeeResponse{Employee: emp})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	dto, image, cleanup, err := h.parseMultipart(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer cleanup()

	emp, svcErr := h.Service.Update(r.Context(), id, dto, image)
	if svcErr != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", svcErr, "employee_id", id)
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee updated successfully",
		EmployeeResponse{Employee: emp})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee deleted successfully", nil)
}

// parseMultipart extracts the form fields and the optional image file. The
// returned cleanup closes the file handle; callers must defer it.
func (h *Handler) parseMultipart(r *http.Request) (EmployeeDTO, *ImageUpload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(MaxImageSize + 1<<20); err != nil {
		return EmployeeDTO{}, nil, noop, err
	}

	dto := EmployeeDTO{
		Name:     r.FormValue("name"),
		Phone:    r.FormValue("phone"),
		Position: r.FormValue("position"),
	}
	if divStr := r.FormValue("division"); divStr != "" {
		if d, err := strconv.ParseInt(divStr, 10, 64); err == nil {
			dto.DivisionID = d
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return dto, nil, noop, nil
		}
		return EmployeeDTO{}, nil, noop, err
	}

	image := &ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}
	return dto, image, func() { file.Close() }, nil
}
