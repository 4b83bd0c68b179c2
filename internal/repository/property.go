package repository

import (
	"context"
	"errors"

	"github.com/landhub/backoffice/internal/model"
	"gorm.io/gorm"
)

// ErrPropertyNotFound is returned when no property row matches.
var ErrPropertyNotFound = errors.New("property not found")

// Pagination describes a page request. Page numbering starts at 1.
type Pagination struct {
	Page     int
	PageSize int
}

// PropertyFilter narrows property listings.
type PropertyFilter struct {
	Type   string // exact catalog value
	Area   string // exact catalog value
	Status string
}

// PropertyRepository stores listing records.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	Update(ctx context.Context, property *model.Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *PropertyFilter, page *Pagination) ([]*model.Property, int64, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a property repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	result := r.db.WithContext(ctx).Model(property).Updates(map[string]interface{}{
		"title":       property.Title,
		"type":        property.Type,
		"area":        property.Area,
		"address":     property.Address,
		"price":       property.Price,
		"description": property.Description,
		"status":      property.Status,
		"updated_by":  property.UpdatedBy,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) List(ctx context.Context, filter *PropertyFilter, page *Pagination) ([]*model.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Property{})
	if filter != nil {
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Area != "" {
			query = query.Where("area = ?", filter.Area)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page != nil {
		query = query.Offset((page.Page - 1) * page.PageSize).Limit(page.PageSize)
	}

	var properties []*model.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}
