package postgres

import (
	"strings"
	"time"

	"github.com/frahmantamala/employee-directory/internal/division"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"gorm.io/gorm"
)

// DivisionRepository implements division.RepositoryAPI using GORM
type DivisionRepository struct {
	db *gorm.DB
}

func NewDivisionRepository(db *gorm.DB) division.RepositoryAPI {
	return &DivisionRepository{db: db}
}

// Search filters by case-insensitive name substring and returns a page of
// results plus the total match count. Ordering is by id, insertion order.
func (r *DivisionRepository) Search(name string, limit, offset int) ([]*division.Division, int64, error) {
	query := r.db.Model(&division.Division{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var divisions []*division.Division
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&divisions).Error
	return divisions, total, err
}

func (r *DivisionRepository) GetByID(id int64) (*division.Division, error) {
	var d division.Division
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DivisionRepository) GetByName(name string) (*division.Division, error) {
	var d division.Division
	err := r.db.Where("name = ?", name).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DivisionRepository) Create(d *division.Division) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	return r.db.Create(d).Error
}

func (r *DivisionRepository) Update(d *division.Division) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *DivisionRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&division.Division{}).Error
}

func (r *DivisionRepository) CountEmployees(divisionID int64) (int64, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Where("division_id = ?", divisionID).Count(&count).Error
	return count, err
}
