package employee

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	errors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

// allowedImageExts are the accepted avatar file extensions.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// EmployeeDTO carries the multipart form fields for create and update. The
// form field is named "division" while the column is division_id, matching
// the dashboard's form contract.
type EmployeeDTO struct {
	Name       string
	Phone      string
	Position   string
	DivisionID int64
}

// Validate checks all fields; phone uniqueness and division existence are
// checked by the service against the store.
func (d EmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(MaxNameLength)
	v.Field("phone", d.Phone).Required().Phone()
	v.Field("position", d.Position).Required().MaxLength(MaxPositionLength)
	v.Field("division", d.DivisionID).Required()
	return v.Validate()
}

// ImageUpload is a pending avatar file from a multipart request.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Ext returns the lowercased file extension including the dot.
func (u *ImageUpload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

// Validate rejects oversized files and unsupported extensions before any
// bytes are written.
func (u *ImageUpload) Validate() *errors.AppError {
	if u.Size > MaxImageSize {
		return errors.NewValidationFieldError("image",
			fmt.Sprintf("image must not exceed %d bytes", MaxImageSize),
			errors.ErrCodeInvalidImage)
	}
	if !allowedImageExts[u.Ext()] {
		return errors.NewValidationFieldError("image",
			"image must be a jpeg, jpg, png, gif or svg file",
			errors.ErrCodeInvalidImage)
	}
	return nil
}

// ListQuery captures the supported list filters.
type ListQuery struct {
	Name       string
	DivisionID int64
	Page       int
	PerPage    int
}

// EmployeesResponse is the data payload for list responses.
type EmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

// EmployeeResponse wraps a single employee.
type EmployeeResponse struct {
	Employee *Employee `json:"employee"`
}
