package user

import (
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/auth"
	"gorm.io/gorm"
)

// RepositoryAPI is the persistence surface for users. Lookups return
// (nil, nil) when the record is absent.
type RepositoryAPI interface {
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(user *User) error
}

type Service struct {
	repo       RepositoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// GetProfile returns the public projection for the user.
func (s *Service) GetProfile(userID int64) (*Profile, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch user", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile := u.ToProfile()
	return &profile, nil
}

// UpdateProfile applies profile changes. Username and email must stay unique
// excluding the user themselves. A password change requires the current
// password to verify; the new one is hashed before it is persisted.
func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch user", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	byUsername, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check username", err)
	}
	if byUsername != nil && byUsername.ID != userID {
		return nil, apperrors.NewValidationError("Username already taken", apperrors.ErrCodeDuplicateUser)
	}

	byEmail, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check email", err)
	}
	if byEmail != nil && byEmail.ID != userID {
		return nil, apperrors.NewValidationError("Email already taken", apperrors.ErrCodeDuplicateUser)
	}

	if dto.NewPassword != "" {
		if dto.CurrentPassword == "" {
			return nil, apperrors.NewBadRequestError(
				"Current password is required when changing password",
				apperrors.ErrCodePasswordMismatch)
		}
		if err := auth.VerifyPassword(u.PasswordHash, dto.CurrentPassword); err != nil {
			s.logger.Warn("profile update rejected: current password mismatch", "user_id", userID)
			return nil, apperrors.NewBadRequestError(
				"Current password is incorrect",
				apperrors.ErrCodePasswordMismatch)
		}

		hash, err := auth.HashPassword(dto.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = hash
	}

	u.Name = dto.Name
	u.Username = dto.Username
	u.Email = dto.Email

	if err := s.repo.Update(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Username or email already taken", apperrors.ErrCodeDuplicateUser)
		}
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, apperrors.NewInternalError("failed to update profile", err)
	}

	s.logger.Info("profile updated", "user_id", userID)

	profile := u.ToProfile()
	return &profile, nil
}
