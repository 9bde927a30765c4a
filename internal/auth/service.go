package auth

import (
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/employee-directory/internal"
	"gorm.io/gorm"
)

// RepositoryAPI is the persistence surface the auth service needs: credential
// lookup plus the access token lifecycle.
type RepositoryAPI interface {
	GetCredentials(username string) (passwordHash string, user *SessionUser, err error)
	CreateToken(token *AccessToken) error
	FindUserByToken(token string) (*SessionUser, error)
	TouchToken(token string) error
	DeleteToken(token string) error
}

type Service struct {
	repo        RepositoryAPI
	logger      *slog.Logger
	tokenLength int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, tokenLength int) *Service {
	if tokenLength <= 0 {
		tokenLength = 32
	}
	return &Service{
		repo:        repo,
		logger:      logger,
		tokenLength: tokenLength,
	}
}

// Authenticate validates credentials and issues a fresh opaque token bound to
// the user. A wrong username and a wrong password are indistinguishable to
// the caller.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	storedHash, user, err := s.repo.GetCredentials(dto.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed: unknown username", "username", dto.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("failed to load credentials", "error", err)
		return nil, apperrors.NewInternalError("failed to load credentials", err)
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := GenerateRandomToken(s.tokenLength)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate token", err)
	}

	if err := s.repo.CreateToken(&AccessToken{UserID: user.ID, Token: token}); err != nil {
		s.logger.Error("failed to persist access token", "error", err, "user_id", user.ID)
		return nil, apperrors.NewInternalError("failed to persist token", err)
	}

	s.logger.Info("login successful", "user_id", user.ID)

	return &LoginResponse{Token: token, User: *user}, nil
}

// ValidateToken resolves a bearer token to its owning user, updating the
// token's last-used timestamp.
func (s *Service) ValidateToken(token string) (*SessionUser, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.repo.FindUserByToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.repo.TouchToken(token); err != nil {
		s.logger.Warn("failed to update token last_used_at", "error", err)
	}

	return user, nil
}

// Logout revokes the token. Revoking an already-deleted token is not an
// error; the end state is the same.
func (s *Service) Logout(token string) error {
	if err := s.repo.DeleteToken(token); err != nil {
		s.logger.Error("failed to delete access token", "error", err)
		return apperrors.NewInternalError("failed to delete token", err)
	}
	return nil
}
