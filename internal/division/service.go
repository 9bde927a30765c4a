package division

import (
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"gorm.io/gorm"
)

// RepositoryAPI is the persistence surface for divisions. Lookups return
// (nil, nil) when the record is absent.
type RepositoryAPI interface {
	Search(name string, limit, offset int) ([]*Division, int64, error)
	GetByID(id int64) (*Division, error)
	GetByName(name string) (*Division, error)
	Create(division *Division) error
	Update(division *Division) error
	Delete(id int64) error
	CountEmployees(divisionID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns divisions whose name contains the filter (case-insensitive),
// windowed by a fixed page size of 10.
func (s *Service) List(q ListQuery) ([]*Division, *transport.Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * PerPage
	divisions, total, err := s.repo.Search(q.Name, PerPage, offset)
	if err != nil {
		s.logger.Error("failed to search divisions", "error", err)
		return nil, nil, apperrors.NewInternalError("failed to fetch divisions", err)
	}

	if divisions == nil {
		divisions = []*Division{}
	}

	return divisions, transport.NewPagination(page, PerPage, total), nil
}

// Create validates and persists a new division. Name uniqueness is checked
// up front and the store's unique constraint backstops the create race.
func (s *Service) Create(dto DivisionDTO) (*Division, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check division name", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidationError("Division name already exists", apperrors.ErrCodeDuplicateName)
	}

	division := &Division{Name: dto.Name}
	if err := s.repo.Create(division); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Division name already exists", apperrors.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to create division", "error", err, "name", dto.Name)
		return nil, apperrors.NewInternalError("failed to create division", err)
	}

	s.logger.Info("division created", "division_id", division.ID, "name", division.Name)
	return division, nil
}

// Update renames a division, enforcing uniqueness against every other record.
func (s *Service) Update(id int64, dto DivisionDTO) (*Division, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	division, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch division", err)
	}
	if division == nil {
		return nil, apperrors.ErrDivisionNotFound
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check division name", err)
	}
	if existing != nil && existing.ID != id {
		return nil, apperrors.NewValidationError("Division name already exists", apperrors.ErrCodeDuplicateName)
	}

	division.Name = dto.Name
	if err := s.repo.Update(division); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Division name already exists", apperrors.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to update division", "error", err, "division_id", id)
		return nil, apperrors.NewInternalError("failed to update division", err)
	}

	s.logger.Info("division updated", "division_id", id, "name", dto.Name)
	return division, nil
}

// Delete removes an empty division. A division with employees is rejected
// with a conflict and nothing changes.
func (s *Service) Delete(id int64) error {
	division, err := s.repo.GetByID(id)
	if err != nil {
		return apperrors.NewInternalError("failed to fetch division", err)
	}
	if division == nil {
		return apperrors.ErrDivisionNotFound
	}

	count, err := s.repo.CountEmployees(id)
	if err != nil {
		return apperrors.NewInternalError("failed to count employees", err)
	}
	if count > 0 {
		s.logger.Warn("delete rejected: division has employees", "division_id", id, "employees", count)
		return apperrors.ErrDivisionInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete division", "error", err, "division_id", id)
		return apperrors.NewInternalError("failed to delete division", err)
	}

	s.logger.Info("division deleted", "division_id", id)
	return nil
}
