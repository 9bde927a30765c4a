package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AccessToken is an opaque bearer credential owned by exactly one user. It is
// created at login and deleted at logout; there is no expiry, revocation is
// the only way a token stops working.
type AccessToken struct {
	ID         int64     `json:"-" gorm:"primaryKey"`
	UserID     int64     `json:"-" gorm:"column:user_id;not null"`
	Token      string    `json:"-" gorm:"column:token;uniqueIndex;not null"`
	CreatedAt  time.Time `json:"-" gorm:"column:created_at"`
	LastUsedAt time.Time `json:"-" gorm:"column:last_used_at"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

// SessionUser is the public projection of the authenticated user carried in
// the request context. The password hash never leaves the repository layer.
type SessionUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateRandomToken generates a cryptographically secure random token of
// byteLen random bytes, hex encoded.
func GenerateRandomToken(byteLen int) (string, error) {
	bytes := make([]byte, byteLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
