package postgres

import (
	"strings"
	"time"

	"github.com/frahmantamala/employee-directory/internal/division"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// Search filters by case-insensitive name substring and exact division,
// preloading the division for each row.
func (r *EmployeeRepository) Search(q employee.ListQuery) ([]*employee.Employee, int64, error) {
	query := r.db.Model(&employee.Employee{})
	if q.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Name)+"%")
	}
	if q.DivisionID > 0 {
		query = query.Where("division_id = ?", q.DivisionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := query.Preload("Division").
		Order("id ASC").
		Limit(q.PerPage).
		Offset((q.Page - 1) * q.PerPage).
		Find(&employees).Error
	return employees, total, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Preload("Division").Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByPhone(phone string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("phone = ?", phone).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	// Omit the association so a stale Division value can never be written.
	return r.db.Omit("Division").Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Omit("Division").Save(emp).Error
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&employee.Employee{}).Error
}

func (r *EmployeeRepository) DivisionExists(divisionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&division.Division{}).Where("id = ?", divisionID).Count(&count).Error
	return count > 0, err
}
