package employee

import (
	"time"

	"github.com/frahmantamala/employee-directory/internal/division"
)

// Employee is a person record with contact info, a position, a division
// reference and an optional stored avatar image.
type Employee struct {
	ID         int64              `json:"id" gorm:"primaryKey"`
	Name       string             `json:"name" gorm:"column:name;not null"`
	Phone      string             `json:"phone" gorm:"column:phone;uniqueIndex;not null"`
	Position   string             `json:"position" gorm:"column:position;not null"`
	DivisionID int64              `json:"division_id" gorm:"column:division_id;not null"`
	Division   *division.Division `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
	Image      *string            `json:"image" gorm:"column:image"`
	CreatedAt  time.Time          `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time          `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

const (
	// DefaultPerPage is used when the caller does not supply per_page.
	DefaultPerPage = 8
	// MaxPerPage caps caller-supplied page sizes.
	MaxPerPage = 100

	MaxNameLength     = 255
	MaxPositionLength = 255

	// MaxImageSize is the upload cap for avatar files (2MB).
	MaxImageSize = 2 << 20

	// ImageDir is the directory stored avatar paths are namespaced under.
	ImageDir = "employees"
)
