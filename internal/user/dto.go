package user

import (
	errors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

// UpdateProfileDTO carries profile changes. A password change requires both
// current_password and new_password.
type UpdateProfileDTO struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

func (d UpdateProfileDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(MaxNameLength)
	v.Field("username", d.Username).Required().MaxLength(MaxUsernameLength)
	v.Field("email", d.Email).Required().Email().MaxLength(MaxEmailLength)
	if d.NewPassword != "" {
		v.Field("new_password", d.NewPassword).MinLength(MinPasswordLength)
	}
	return v.Validate()
}
