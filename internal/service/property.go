package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
)

// Property errors.
var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPropertyTitleEmpty  = errors.New("property title is required")
	ErrUnknownCatalogValue = errors.New("value is not an active catalog entry")
)

// PropertyService manages listings. It is the catalog's downstream consumer:
// type and area must be active catalog values at write time, while values on
// existing rows survive catalog soft deletes untouched.
type PropertyService interface {
	Create(ctx context.Context, property *model.Property, actorID string) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	Update(ctx context.Context, property *model.Property, actorID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *repository.PropertyFilter, page *repository.Pagination) ([]*model.Property, int64, error)
}

type propertyService struct {
	repo        repository.PropertyRepository
	catalogRepo repository.CatalogRepository
}

// NewPropertyService creates the property service.
func NewPropertyService(repo repository.PropertyRepository, catalogRepo repository.CatalogRepository) PropertyService {
	return &propertyService{repo: repo, catalogRepo: catalogRepo}
}

func (s *propertyService) Create(ctx context.Context, property *model.Property, actorID string) error {
	if err := s.validate(ctx, property); err != nil {
		return err
	}
	if property.Status == "" {
		property.Status = model.PropertyAvailable
	}
	property.CreatedBy = actorID
	property.UpdatedBy = actorID
	return s.repo.Create(ctx, property)
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, property *model.Property, actorID string) error {
	if err := s.validate(ctx, property); err != nil {
		return err
	}
	property.UpdatedBy = actorID
	if err := s.repo.Update(ctx, property); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}
	return nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}
	return nil
}

func (s *propertyService) List(ctx context.Context, filter *repository.PropertyFilter, page *repository.Pagination) ([]*model.Property, int64, error) {
	return s.repo.List(ctx, filter, page)
}

// validate trims the title and checks type/area against the active catalog.
func (s *propertyService) validate(ctx context.Context, property *model.Property) error {
	property.Title = strings.TrimSpace(property.Title)
	if property.Title == "" {
		return ErrPropertyTitleEmpty
	}

	if err := s.checkCatalogValue(ctx, model.CatalogPropertyType, property.Type); err != nil {
		return err
	}
	return s.checkCatalogValue(ctx, model.CatalogArea, property.Area)
}

func (s *propertyService) checkCatalogValue(ctx context.Context, catalogType, value string) error {
	exists, err := s.catalogRepo.ActiveValueExists(ctx, catalogType, value, "")
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q for type %q", ErrUnknownCatalogValue, value, catalogType)
	}
	return nil
}
