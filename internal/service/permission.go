// Package service is the business logic layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
)

// Permission matrix errors.
var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidResource   = errors.New("invalid resource")
	ErrInvalidPermission = errors.New("invalid permission")
)

// PermissionService is the permission matrix engine: it serves the nested
// position -> resource -> action -> granted view and accepts partial matrix
// updates. Stateless; every call goes to the repository.
type PermissionService interface {
	// GetAll returns the full matrix built from every stored row.
	GetAll(ctx context.Context) (model.Matrix, error)
	// GetByPosition returns the resource -> action grants for one position.
	// A position with no rows yields an empty map, not an error.
	GetByPosition(ctx context.Context, position string) (model.ResourceGrants, error)
	// Update validates the submitted matrix against the closed vocabularies,
	// coerces leaves to booleans, upserts the flat rows atomically and
	// returns the complete current matrix, including positions the call did
	// not touch. A rejected update writes nothing.
	Update(ctx context.Context, raw model.RawMatrix, actorID string) (model.Matrix, error)
	// HasPermission reports whether a position is granted an action on a
	// resource. Admin is always allowed.
	HasPermission(ctx context.Context, position, resource, action string) (bool, error)
}

type permissionService struct {
	repo repository.PermissionRepository
}

// NewPermissionService creates the permission matrix engine.
func NewPermissionService(repo repository.PermissionRepository) PermissionService {
	return &permissionService{repo: repo}
}

func (s *permissionService) GetAll(ctx context.Context) (model.Matrix, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToMatrix(rows), nil
}

func (s *permissionService) GetByPosition(ctx context.Context, position string) (model.ResourceGrants, error) {
	if !model.ValidPosition(position) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, position)
	}

	rows, err := s.repo.FindByPosition(ctx, position)
	if err != nil {
		return nil, err
	}

	grants := make(model.ResourceGrants)
	for _, row := range rows {
		actions, ok := grants[row.Resource]
		if !ok {
			actions = make(model.ActionGrants)
			grants[row.Resource] = actions
		}
		actions[row.Action] = row.IsGranted
	}
	return grants, nil
}

func (s *permissionService) Update(ctx context.Context, raw model.RawMatrix, actorID string) (model.Matrix, error) {
	matrix, err := validateMatrix(raw)
	if err != nil {
		return nil, err
	}

	rows := model.FlattenMatrix(matrix, actorID)
	if len(rows) > 0 {
		if err := s.repo.BulkUpsert(ctx, rows); err != nil {
			return nil, err
		}
	}

	// Re-read so the caller always sees authoritative state, not just the
	// subset it submitted.
	return s.GetAll(ctx)
}

func (s *permissionService) HasPermission(ctx context.Context, position, resource, action string) (bool, error) {
	if !model.ValidPosition(position) {
		return false, fmt.Errorf("%w: %q", ErrInvalidPosition, position)
	}
	if !model.ValidResource(resource) {
		return false, fmt.Errorf("%w: %q", ErrInvalidResource, resource)
	}
	if !model.ValidAction(action) {
		return false, fmt.Errorf("%w: %q", ErrInvalidPermission, action)
	}

	if position == model.PositionAdmin {
		return true, nil
	}

	grants, err := s.GetByPosition(ctx, position)
	if err != nil {
		return false, err
	}
	return grants[resource][action], nil
}

// validateMatrix checks every key of the submitted matrix against its closed
// vocabulary before anything is written, and coerces leaves with truthy
// semantics. All offending keys of the first failing level are reported
// together.
func validateMatrix(raw model.RawMatrix) (model.Matrix, error) {
	var badPositions, badResources, badActions []string

	matrix := make(model.Matrix, len(raw))
	for position, rawResources := range raw {
		if !model.ValidPosition(position) {
			badPositions = append(badPositions, position)
			continue
		}

		grants := make(model.ResourceGrants, len(rawResources))
		for resource, rawActions := range rawResources {
			if !model.ValidResource(resource) {
				badResources = append(badResources, resource)
				continue
			}

			actions := make(model.ActionGrants, len(rawActions))
			for action, leaf := range rawActions {
				if !model.ValidAction(action) {
					badActions = append(badActions, action)
					continue
				}
				actions[action] = model.Truthy(leaf)
			}
			grants[resource] = actions
		}
		matrix[position] = grants
	}

	switch {
	case len(badPositions) > 0:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, quoteJoin(badPositions))
	case len(badResources) > 0:
		return nil, fmt.Errorf("%w: %s", ErrInvalidResource, quoteJoin(badResources))
	case len(badActions) > 0:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPermission, quoteJoin(badActions))
	}
	return matrix, nil
}

func quoteJoin(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, ", ")
}
