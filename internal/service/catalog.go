package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
)

// Catalog errors.
var (
	ErrInvalidCatalogType = errors.New("invalid catalog type")
	ErrValueRequired      = errors.New("catalog value is required")
	ErrValueTooLong       = errors.New("catalog value is too long")
	ErrDuplicateValue     = errors.New("duplicate catalog value")
	ErrCatalogNotFound    = errors.New("catalog item not found")
	ErrReorderSetMismatch = errors.New("reorder ids do not match the active items")
)

// CatalogService is the catalog engine: ordered, typed, soft-deletable lookup
// values with active-scoped uniqueness. An item's lifecycle is active ->
// inactive; there is no reactivation, only a fresh create of the same value.
type CatalogService interface {
	// GetByType returns the active items of one type in display order.
	GetByType(ctx context.Context, catalogType string) ([]model.CatalogItem, error)
	// Create trims and validates the value and appends the item after the
	// existing active items of the type.
	Create(ctx context.Context, catalogType, rawValue, actorID string) (*model.CatalogItem, error)
	// Update overwrites an active item's value. Type and display order are
	// immutable here; soft-deleted items count as not found.
	Update(ctx context.Context, id, rawValue, actorID string) (*model.CatalogItem, error)
	// Delete soft-deletes an active item. Sibling orders keep their gaps and
	// records referencing the value elsewhere are untouched.
	Delete(ctx context.Context, id, actorID string) error
	// Reorder rewrites display order for one type. orderedIDs must be
	// exactly the active id set of that type.
	Reorder(ctx context.Context, catalogType string, orderedIDs []string, actorID string) ([]model.CatalogItem, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates the catalog engine.
func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) GetByType(ctx context.Context, catalogType string) ([]model.CatalogItem, error) {
	if !model.ValidCatalogType(catalogType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCatalogType, catalogType)
	}
	return s.repo.FindActiveByType(ctx, catalogType)
}

func (s *catalogService) Create(ctx context.Context, catalogType, rawValue, actorID string) (*model.CatalogItem, error) {
	if !model.ValidCatalogType(catalogType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCatalogType, catalogType)
	}

	value, err := normalizeValue(rawValue)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ActiveValueExists(ctx, catalogType, value, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q already active for type %q", ErrDuplicateValue, value, catalogType)
	}

	item := &model.CatalogItem{
		Type:      catalogType,
		Value:     value,
		CreatedBy: actorID,
		UpdatedBy: actorID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *catalogService) Update(ctx context.Context, id, rawValue, actorID string) (*model.CatalogItem, error) {
	item, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}

	value, err := normalizeValue(rawValue)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ActiveValueExists(ctx, item.Type, value, item.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q already active for type %q", ErrDuplicateValue, value, item.Type)
	}

	item.Value = value
	item.UpdatedBy = actorID
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *catalogService) Delete(ctx context.Context, id, actorID string) error {
	if err := s.repo.SoftDelete(ctx, id, actorID); err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return ErrCatalogNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) Reorder(ctx context.Context, catalogType string, orderedIDs []string, actorID string) ([]model.CatalogItem, error) {
	if !model.ValidCatalogType(catalogType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCatalogType, catalogType)
	}

	active, err := s.repo.FindActiveByType(ctx, catalogType)
	if err != nil {
		return nil, err
	}

	// orderedIDs must be a permutation of the active id set: no missing
	// items, no strays, no duplicates.
	if len(orderedIDs) != len(active) {
		return nil, fmt.Errorf("%w: got %d ids, have %d active items", ErrReorderSetMismatch, len(orderedIDs), len(active))
	}
	activeSet := make(map[string]struct{}, len(active))
	for _, item := range active {
		activeSet[item.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := activeSet[id]; !ok {
			return nil, fmt.Errorf("%w: unknown id %q", ErrReorderSetMismatch, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrReorderSetMismatch, id)
		}
		seen[id] = struct{}{}
	}

	items, err := s.repo.Reorder(ctx, catalogType, orderedIDs, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrReorderConflict) {
			return nil, ErrReorderSetMismatch
		}
		return nil, err
	}
	return items, nil
}

// normalizeValue trims and bounds a submitted catalog value.
func normalizeValue(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrValueRequired
	}
	if len([]rune(value)) > model.CatalogValueMaxLen {
		return "", fmt.Errorf("%w: max %d characters", ErrValueTooLong, model.CatalogValueMaxLen)
	}
	return value, nil
}
