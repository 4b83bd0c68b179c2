package repository

import (
	"context"
	"errors"

	"github.com/landhub/backoffice/internal/model"
	"gorm.io/gorm"
)

// ErrStaffNotFound is returned when no staff row matches.
var ErrStaffNotFound = errors.New("staff not found")

// StaffRepository stores back-office accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetByUsername(ctx context.Context, username string) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, page *Pagination) ([]*model.Staff, int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Staff{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *staffRepository) List(ctx context.Context, page *Pagination) ([]*model.Staff, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Staff{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staff []*model.Staff
	if page != nil {
		query = query.Offset((page.Page - 1) * page.PageSize).Limit(page.PageSize)
	}
	if err := query.Order("created_at").Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}
