package division

import (
	"time"
)

// Division is a named organizational unit employees belong to.
type Division struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Division) TableName() string {
	return "divisions"
}

// PerPage is the fixed page size for division listings.
const PerPage = 10

// MaxNameLength caps the division name.
const MaxNameLength = 255
