package division

import (
	errors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

// DivisionDTO carries the name for create and update requests.
type DivisionDTO struct {
	Name string `json:"name"`
}

// Validate checks the name; uniqueness is the service's job.
func (d DivisionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(MaxNameLength)
	return v.Validate()
}

// ListQuery captures the supported list filters.
type ListQuery struct {
	Name string
	Page int
}

// DivisionsResponse is the data payload for list responses.
type DivisionsResponse struct {
	Divisions []*Division `json:"divisions"`
}

// DivisionResponse wraps a single division.
type DivisionResponse struct {
	Division *Division `json:"division"`
}
