package user

import (
	"time"
)

// User is an administrative account. The password hash is never serialized.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Username     string    `json:"username" gorm:"column:username;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"column:phone"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// Profile is the public projection returned by the API.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToProfile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

const (
	MaxNameLength     = 255
	MaxUsernameLength = 255
	MaxEmailLength    = 255
	MinPasswordLength = 8
)
