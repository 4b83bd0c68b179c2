package repository

import (
	"context"
	"errors"

	"github.com/landhub/backoffice/internal/model"
	"gorm.io/gorm"
)

// Repository-level errors.
var (
	ErrCatalogNotFound = errors.New("catalog item not found")
	ErrReorderConflict = errors.New("catalog items changed during reorder")
)

// CatalogRepository stores the ordered lookup values. Read paths are scoped
// to active items; soft-deleted rows stay in the table.
type CatalogRepository interface {
	FindActiveByType(ctx context.Context, catalogType string) ([]model.CatalogItem, error)
	// ActiveValueExists checks (type, value) uniqueness among active items,
	// optionally excluding one item id (for updates).
	ActiveValueExists(ctx context.Context, catalogType, value, excludeID string) (bool, error)
	// Create inserts the item with the next display_order for its type.
	Create(ctx context.Context, item *model.CatalogItem) error
	FindActiveByID(ctx context.Context, id string) (*model.CatalogItem, error)
	Update(ctx context.Context, item *model.CatalogItem) error
	// SoftDelete deactivates an active item; sibling orders are untouched.
	// At most one inactive row per (type, value) fits under the unique
	// index, so an older tombstone of the same value is dropped in the
	// same transaction.
	SoftDelete(ctx context.Context, id, actorID string) error
	// Reorder rewrites display_order to 1..n following orderedIDs, in one
	// transaction. The caller validates the id set first; the transaction
	// re-verifies every id still resolves to an active row of the type and
	// aborts on any drift.
	Reorder(ctx context.Context, catalogType string, orderedIDs []string, actorID string) ([]model.CatalogItem, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindActiveByType(ctx context.Context, catalogType string) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ?", catalogType, true).
		Order("display_order").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) ActiveValueExists(ctx context.Context, catalogType, value, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.CatalogItem{}).
		Where("type = ? AND value = ? AND is_active = ?", catalogType, value, true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *catalogRepository) Create(ctx context.Context, item *model.CatalogItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Append after the highest order among active siblings. Gaps left by
		// soft deletes are fine; only monotonicity matters.
		var maxOrder int
		err := tx.Model(&model.CatalogItem{}).
			Where("type = ? AND is_active = ?", item.Type, true).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		item.IsActive = true
		item.DisplayOrder = maxOrder + 1
		return tx.Create(item).Error
	})
}

func (r *catalogRepository) FindActiveByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	var item model.CatalogItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) Update(ctx context.Context, item *model.CatalogItem) error {
	result := r.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"value":      item.Value,
		"updated_by": item.UpdatedBy,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCatalogNotFound
	}
	return nil
}

func (r *catalogRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CatalogItem
		err := tx.Where("id = ? AND is_active = ?", id, true).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCatalogNotFound
			}
			return err
		}

		// Drop an earlier tombstone of the same value so deactivating this
		// row cannot collide on (type, value, is_active).
		err = tx.Where("type = ? AND value = ? AND is_active = ?", item.Type, item.Value, false).
			Delete(&model.CatalogItem{}).Error
		if err != nil {
			return err
		}

		result := tx.Model(&model.CatalogItem{}).
			Where("id = ? AND is_active = ?", id, true).
			Updates(map[string]interface{}{
				"is_active":  false,
				"updated_by": actorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCatalogNotFound
		}
		return nil
	})
}

func (r *catalogRepository) Reorder(ctx context.Context, catalogType string, orderedIDs []string, actorID string) ([]model.CatalogItem, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&model.CatalogItem{}).
				Where("id = ? AND type = ? AND is_active = ?", id, catalogType, true).
				Updates(map[string]interface{}{
					"display_order": i + 1,
					"updated_by":    actorID,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// An item was deleted or re-typed between validation and
				// write; roll the whole reorder back.
				return ErrReorderConflict
			}
		}

		var count int64
		err := tx.Model(&model.CatalogItem{}).
			Where("type = ? AND is_active = ?", catalogType, true).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count != int64(len(orderedIDs)) {
			return ErrReorderConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindActiveByType(ctx, catalogType)
}
