package service

import (
	"context"
	"strings"
	"testing"

	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository mocks the catalog item store.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindActiveByType(ctx context.Context, catalogType string) ([]model.CatalogItem, error) {
	args := m.Called(ctx, catalogType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) ActiveValueExists(ctx context.Context, catalogType, value, excludeID string) (bool, error) {
	args := m.Called(ctx, catalogType, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) Create(ctx context.Context, item *model.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindActiveByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) Update(ctx context.Context, item *model.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockCatalogRepository) Reorder(ctx context.Context, catalogType string, orderedIDs []string, actorID string) ([]model.CatalogItem, error) {
	args := m.Called(ctx, catalogType, orderedIDs, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogItem), args.Error(1)
}

func TestCatalogService_GetByType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	items := []model.CatalogItem{
		{Type: model.CatalogPropertyType, Value: "Apartment", DisplayOrder: 1, IsActive: true},
		{Type: model.CatalogPropertyType, Value: "House", DisplayOrder: 2, IsActive: true},
	}
	repo.On("FindActiveByType", ctx, model.CatalogPropertyType).Return(items, nil).Once()

	got, err := svc.GetByType(ctx, model.CatalogPropertyType)
	assert.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetByType_InvalidType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	_, err := svc.GetByType(ctx, "amenity")
	assert.ErrorIs(t, err, ErrInvalidCatalogType)
	repo.AssertNotCalled(t, "FindActiveByType", mock.Anything, mock.Anything)
}

func TestCatalogService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	repo.On("ActiveValueExists", ctx, model.CatalogArea, "Quận 2", "").Return(false, nil).Once()
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		item := args.Get(1).(*model.CatalogItem)
		item.IsActive = true
		item.DisplayOrder = 7
	}).Return(nil).Once()

	item, err := svc.Create(ctx, model.CatalogArea, "  Quận 2  ", "actor-1")
	assert.NoError(t, err)
	assert.Equal(t, "Quận 2", item.Value)
	assert.Equal(t, 7, item.DisplayOrder)
	assert.Equal(t, "actor-1", item.CreatedBy)
	repo.AssertExpectations(t)
}

func TestCatalogService_Create_TrimmedDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	// "  Quận 1 " trims to an existing active value and must be rejected.
	repo.On("ActiveValueExists", ctx, model.CatalogArea, "Quận 1", "").Return(true, nil).Once()

	_, err := svc.Create(ctx, model.CatalogArea, "  Quận 1 ", "actor-1")
	assert.ErrorIs(t, err, ErrDuplicateValue)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_Create_ValueRequired(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	_, err := svc.Create(ctx, model.CatalogLeadSource, "   ", "actor-1")
	assert.ErrorIs(t, err, ErrValueRequired)
	repo.AssertNotCalled(t, "ActiveValueExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_Create_ValueTooLong(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	long := strings.Repeat("x", model.CatalogValueMaxLen+1)
	_, err := svc.Create(ctx, model.CatalogContractType, long, "actor-1")
	assert.ErrorIs(t, err, ErrValueTooLong)

	// Exactly the limit is fine.
	exact := strings.Repeat("x", model.CatalogValueMaxLen)
	repo.On("ActiveValueExists", ctx, model.CatalogContractType, exact, "").Return(false, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err = svc.Create(ctx, model.CatalogContractType, exact, "actor-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_Create_InvalidType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	_, err := svc.Create(ctx, "amenity", "Pool", "actor-1")
	assert.ErrorIs(t, err, ErrInvalidCatalogType)
}

func TestCatalogService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	existing := &model.CatalogItem{
		BaseModel:    model.BaseModel{ID: "item-1"},
		Type:         model.CatalogPropertyType,
		Value:        "Apartment",
		DisplayOrder: 1,
		IsActive:     true,
	}

	repo.On("FindActiveByID", ctx, "item-1").Return(existing, nil).Once()
	repo.On("ActiveValueExists", ctx, model.CatalogPropertyType, "Studio", "item-1").Return(false, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Once()

	item, err := svc.Update(ctx, "item-1", " Studio ", "actor-2")
	assert.NoError(t, err)
	assert.Equal(t, "Studio", item.Value)
	assert.Equal(t, "actor-2", item.UpdatedBy)
	assert.Equal(t, 1, item.DisplayOrder)
	repo.AssertExpectations(t)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	repo.On("FindActiveByID", ctx, "gone").Return(nil, repository.ErrCatalogNotFound).Once()

	_, err := svc.Update(ctx, "gone", "Studio", "actor-1")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
	repo.AssertExpectations(t)
}

func TestCatalogService_Update_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	existing := &model.CatalogItem{
		BaseModel: model.BaseModel{ID: "item-1"},
		Type:      model.CatalogPropertyType,
		Value:     "Apartment",
		IsActive:  true,
	}

	repo.On("FindActiveByID", ctx, "item-1").Return(existing, nil).Once()
	repo.On("ActiveValueExists", ctx, model.CatalogPropertyType, "House", "item-1").Return(true, nil).Once()

	_, err := svc.Update(ctx, "item-1", "House", "actor-1")
	assert.ErrorIs(t, err, ErrDuplicateValue)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	repo.On("SoftDelete", ctx, "item-1", "actor-1").Return(nil).Once()

	err := svc.Delete(ctx, "item-1", "actor-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	// Already soft-deleted items read as not found; a second delete fails.
	repo.On("SoftDelete", ctx, "item-1", "actor-1").Return(repository.ErrCatalogNotFound).Once()

	err := svc.Delete(ctx, "item-1", "actor-1")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
	repo.AssertExpectations(t)
}

func TestCatalogService_Reorder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	active := []model.CatalogItem{
		{BaseModel: model.BaseModel{ID: "a"}, Type: model.CatalogPropertyType, Value: "Apartment", DisplayOrder: 1, IsActive: true},
		{BaseModel: model.BaseModel{ID: "b"}, Type: model.CatalogPropertyType, Value: "House", DisplayOrder: 2, IsActive: true},
	}
	reordered := []model.CatalogItem{
		{BaseModel: model.BaseModel{ID: "b"}, Type: model.CatalogPropertyType, Value: "House", DisplayOrder: 1, IsActive: true},
		{BaseModel: model.BaseModel{ID: "a"}, Type: model.CatalogPropertyType, Value: "Apartment", DisplayOrder: 2, IsActive: true},
	}

	repo.On("FindActiveByType", ctx, model.CatalogPropertyType).Return(active, nil).Once()
	repo.On("Reorder", ctx, model.CatalogPropertyType, []string{"b", "a"}, "actor-1").Return(reordered, nil).Once()

	items, err := svc.Reorder(ctx, model.CatalogPropertyType, []string{"b", "a"}, "actor-1")
	assert.NoError(t, err)
	assert.Equal(t, "House", items[0].Value)
	assert.Equal(t, 1, items[0].DisplayOrder)
	assert.Equal(t, "Apartment", items[1].Value)
	assert.Equal(t, 2, items[1].DisplayOrder)
	repo.AssertExpectations(t)
}

func TestCatalogService_Reorder_SetMismatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	active := []model.CatalogItem{
		{BaseModel: model.BaseModel{ID: "a"}, IsActive: true},
		{BaseModel: model.BaseModel{ID: "b"}, IsActive: true},
	}

	repo.On("FindActiveByType", ctx, model.CatalogArea).Return(active, nil).Times(3)

	// Missing one id.
	_, err := svc.Reorder(ctx, model.CatalogArea, []string{"a"}, "actor-1")
	assert.ErrorIs(t, err, ErrReorderSetMismatch)

	// Unknown id.
	_, err = svc.Reorder(ctx, model.CatalogArea, []string{"a", "c"}, "actor-1")
	assert.ErrorIs(t, err, ErrReorderSetMismatch)

	// Duplicate id.
	_, err = svc.Reorder(ctx, model.CatalogArea, []string{"a", "a"}, "actor-1")
	assert.ErrorIs(t, err, ErrReorderSetMismatch)

	repo.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_Reorder_ConcurrentDrift(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	active := []model.CatalogItem{
		{BaseModel: model.BaseModel{ID: "a"}, IsActive: true},
	}

	// The set was valid at read time but an item vanished before the
	// transactional write; the repository conflict surfaces as a mismatch.
	repo.On("FindActiveByType", ctx, model.CatalogArea).Return(active, nil).Once()
	repo.On("Reorder", ctx, model.CatalogArea, []string{"a"}, "actor-1").Return(nil, repository.ErrReorderConflict).Once()

	_, err := svc.Reorder(ctx, model.CatalogArea, []string{"a"}, "actor-1")
	assert.ErrorIs(t, err, ErrReorderSetMismatch)
	repo.AssertExpectations(t)
}

func TestCatalogService_Reorder_InvalidType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo)

	_, err := svc.Reorder(ctx, "amenity", []string{"a"}, "actor-1")
	assert.ErrorIs(t, err, ErrInvalidCatalogType)
	repo.AssertNotCalled(t, "FindActiveByType", mock.Anything, mock.Anything)
}
