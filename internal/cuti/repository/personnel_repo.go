package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"gorm.io/gorm"
)

// PersonnelRepository persists personnel records.
type PersonnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

func (r *PersonnelRepository) Create(ctx context.Context, p *entity.Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PersonnelRepository) FindByID(ctx context.Context, id string) (*entity.Personnel, error) {
	var p entity.Personnel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PersonnelRepository) Update(ctx context.Context, p *entity.Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PersonnelRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Personnel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns personnel ordered by name. Query searches across the
// descriptive fields the roster table displays.
func (r *PersonnelRepository) List(ctx context.Context, query string) ([]entity.Personnel, error) {
	q := r.db.WithContext(ctx).Model(&entity.Personnel{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"name ILIKE ? OR rank ILIKE ? OR military_id ILIKE ? OR platoon ILIKE ? OR contact_number ILIKE ?",
			like, like, like, like, like,
		)
	}

	var list []entity.Personnel
	err := q.Order("name ASC").Find(&list).Error
	return list, err
}
