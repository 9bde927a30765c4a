package postgres

import (
	"time"

	"github.com/frahmantamala/employee-directory/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(username string) (string, *auth.SessionUser, error) {
	var row struct {
		ID           int64
		Name         string
		Username     string
		Phone        string
		Email        string
		PasswordHash string
	}

	err := r.db.Table("users").
		Select("id, name, username, phone, email, password_hash").
		Where("username = ?", username).
		Take(&row).Error
	if err != nil {
		return "", nil, err
	}

	return row.PasswordHash, &auth.SessionUser{
		ID:       row.ID,
		Name:     row.Name,
		Username: row.Username,
		Phone:    row.Phone,
		Email:    row.Email,
	}, nil
}

func (r *Repository) CreateToken(token *auth.AccessToken) error {
	now := time.Now()
	token.CreatedAt = now
	token.LastUsedAt = now
	return r.db.Create(token).Error
}

func (r *Repository) FindUserByToken(token string) (*auth.SessionUser, error) {
	var row struct {
		ID       int64
		Name     string
		Username string
		Phone    string
		Email    string
	}

	err := r.db.Table("users").
		Select("users.id, users.name, users.username, users.phone, users.email").
		Joins("JOIN access_tokens ON access_tokens.user_id = users.id").
		Where("access_tokens.token = ?", token).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	return &auth.SessionUser{
		ID:       row.ID,
		Name:     row.Name,
		Username: row.Username,
		Phone:    row.Phone,
		Email:    row.Email,
	}, nil
}

func (r *Repository) TouchToken(token string) error {
	return r.db.Model(&auth.AccessToken{}).
		Where("token = ?", token).
		Update("last_used_at", time.Now()).Error
}

func (r *Repository) DeleteToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&auth.AccessToken{}).Error
}
