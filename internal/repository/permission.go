// Package repository is the data access layer.
package repository

import (
	"context"

	"github.com/landhub/backoffice/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository stores the flat permission rows backing the matrix.
type PermissionRepository interface {
	FindAll(ctx context.Context) ([]model.Permission, error)
	FindByPosition(ctx context.Context, position string) ([]model.Permission, error)
	// BulkUpsert writes every row in one transaction keyed on the
	// (position, resource, action) unique index. All-or-nothing: concurrent
	// readers never observe a half-applied matrix.
	BulkUpsert(ctx context.Context, rows []model.Permission) error
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a permission repository.
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) FindAll(ctx context.Context) ([]model.Permission, error) {
	var rows []model.Permission
	err := r.db.WithContext(ctx).
		Order("position, resource, action").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) FindByPosition(ctx context.Context, position string) ([]model.Permission, error) {
	var rows []model.Permission
	err := r.db.WithContext(ctx).
		Where("position = ?", position).
		Order("resource, action").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepository) BulkUpsert(ctx context.Context, rows []model.Permission) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "position"},
				{Name: "resource"},
				{Name: "action"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"is_granted", "updated_by", "updated_at"}),
		}).Create(&rows).Error
	})
}
