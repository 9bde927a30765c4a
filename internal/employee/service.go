package employee

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/storage"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"gorm.io/gorm"
)

// RepositoryAPI is the persistence surface for employees. Lookups return
// (nil, nil) when the record is absent. Reads resolve the division.
type RepositoryAPI interface {
	Search(q ListQuery) ([]*Employee, int64, error)
	GetByID(id int64) (*Employee, error)
	GetByPhone(phone string) (*Employee, error)
	Create(employee *Employee) error
	Update(employee *Employee) error
	Delete(id int64) error
	DivisionExists(divisionID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	files  storage.FileStore
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, files storage.FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
	}
}

// List returns a page of employees filtered by name substring and division.
func (s *Service) List(q ListQuery) ([]*Employee, *transport.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}

	employees, total, err := s.repo.Search(q)
	if err != nil {
		s.logger.Error("failed to search employees", "error", err)
		return nil, nil, apperrors.NewInternalError("failed to fetch employees", err)
	}

	if employees == nil {
		employees = []*Employee{}
	}

	return employees, transport.NewPagination(q.Page, q.PerPage, total), nil
}

// Create validates, stores the avatar if supplied, and persists the record.
// All validation happens before any side effect; if the database write fails
// after the file was stored, the file is removed again.
func (s *Service) Create(ctx context.Context, dto EmployeeDTO, image *ImageUpload) (*Employee, error) {
	if err := s.validateWrite(dto, image, 0); err != nil {
		return nil, err
	}

	imagePath, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	emp := &Employee{
		Name:       dto.Name,
		Phone:      dto.Phone,
		Position:   dto.Position,
		DivisionID: dto.DivisionID,
		Image:      imagePath,
	}

	if err := s.repo.Create(emp); err != nil {
		s.cleanupImage(ctx, imagePath)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Phone number already exists", apperrors.ErrCodeDuplicatePhone)
		}
		s.logger.Error("failed to create employee", "error", err)
		return nil, apperrors.NewInternalError("failed to create employee", err)
	}

	created, err := s.repo.GetByID(emp.ID)
	if err != nil || created == nil {
		// The row exists; return it without the resolved division rather
		// than failing the whole request.
		s.logger.Warn("failed to reload employee after create", "error", err, "employee_id", emp.ID)
		return emp, nil
	}

	s.logger.Info("employee created", "employee_id", created.ID, "division_id", created.DivisionID)
	return created, nil
}

// Update applies the same validation as Create with phone uniqueness
// excluding the record itself. A replacement image deletes the previous
// stored file before the new one is written.
func (s *Service) Update(ctx context.Context, id int64, dto EmployeeDTO, image *ImageUpload) (*Employee, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch employee", err)
	}
	if existing == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}

	if err := s.validateWrite(dto, image, id); err != nil {
		return nil, err
	}

	imagePath := existing.Image
	if image != nil {
		if existing.Image != nil {
			if err := s.files.Delete(ctx, *existing.Image); err != nil {
				s.logger.Warn("failed to delete previous image", "error", err, "path", *existing.Image)
			}
		}
		imagePath, err = s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	existing.Name = dto.Name
	existing.Phone = dto.Phone
	existing.Position = dto.Position
	existing.DivisionID = dto.DivisionID
	existing.Image = imagePath

	if err := s.repo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Phone number already exists", apperrors.ErrCodeDuplicatePhone)
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, apperrors.NewInternalError("failed to update employee", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Warn("failed to reload employee after update", "error", err, "employee_id", id)
		return existing, nil
	}

	s.logger.Info("employee updated", "employee_id", id)
	return updated, nil
}

// Delete removes the record and its stored avatar file. The file cleanup is
// best effort: a leftover file is preferable to a phantom record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return apperrors.NewInternalError("failed to fetch employee", err)
	}
	if existing == nil {
		return apperrors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return apperrors.NewInternalError("failed to delete employee", err)
	}

	if existing.Image != nil {
		if err := s.files.Delete(ctx, *existing.Image); err != nil {
			s.logger.Warn("failed to delete employee image", "error", err, "path", *existing.Image)
		}
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// validateWrite runs field validation plus the store-backed checks shared by
// create and update. selfID excludes the record being updated from the phone
// uniqueness check; zero means a create.
func (s *Service) validateWrite(dto EmployeeDTO, image *ImageUpload, selfID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if image != nil {
		if err := image.Validate(); err != nil {
			return err
		}
	}

	byPhone, err := s.repo.GetByPhone(dto.Phone)
	if err != nil {
		return apperrors.NewInternalError("failed to check phone", err)
	}
	if byPhone != nil && byPhone.ID != selfID {
		return apperrors.NewValidationError("Phone number already exists", apperrors.ErrCodeDuplicatePhone)
	}

	exists, err := s.repo.DivisionExists(dto.DivisionID)
	if err != nil {
		return apperrors.NewInternalError("failed to check division", err)
	}
	if !exists {
		return apperrors.NewValidationError("Division does not exist", apperrors.ErrCodeInvalidDivision)
	}

	return nil
}

func (s *Service) storeImage(ctx context.Context, image *ImageUpload) (*string, error) {
	if image == nil {
		return nil, nil
	}

	path, err := s.files.Save(ctx, ImageDir, image.Ext(), image.Content)
	if err != nil {
		s.logger.Error("failed to store image", "error", err, "filename", image.Filename)
		return nil, apperrors.NewInternalError("failed to store image", err)
	}
	return &path, nil
}

func (s *Service) cleanupImage(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.files.Delete(ctx, *path); err != nil {
		s.logger.Warn("failed to clean up stored image", "error", err, "path", *path)
	}
}
