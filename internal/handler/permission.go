// Package handler holds the HTTP handlers.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/middleware"
	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// PermissionHandler exposes the permission matrix.
type PermissionHandler struct {
	permissionService service.PermissionService
}

// NewPermissionHandler creates the permission handler.
func NewPermissionHandler(permissionSvc service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionSvc}
}

// GetAll returns the full position -> resource -> action matrix.
// GET /api/v1/config/permissions
func (h *PermissionHandler) GetAll(c *gin.Context) {
	matrix, err := h.permissionService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}
	response.Success(c, matrix)
}

// GetByPosition returns the sub-matrix of one position.
// GET /api/v1/config/permissions/:position
func (h *PermissionHandler) GetByPosition(c *gin.Context) {
	position := c.Param("position")

	grants, err := h.permissionService.GetByPosition(c.Request.Context(), position)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPosition) {
			response.ErrorWithMsg(c, response.CodeInvalidPosition, err.Error())
			return
		}
		response.Error(c, response.CodeServerError)
		return
	}
	response.Success(c, grants)
}

// Update applies a (possibly partial) matrix and returns the full current
// matrix so the client never works from stale state.
// PUT /api/v1/config/permissions
func (h *PermissionHandler) Update(c *gin.Context) {
	var raw model.RawMatrix
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	matrix, err := h.permissionService.Update(c.Request.Context(), raw, middleware.StaffID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPosition):
			response.ErrorWithMsg(c, response.CodeInvalidPosition, err.Error())
		case errors.Is(err, service.ErrInvalidResource):
			response.ErrorWithMsg(c, response.CodeInvalidResource, err.Error())
		case errors.Is(err, service.ErrInvalidPermission):
			response.ErrorWithMsg(c, response.CodeInvalidPermission, err.Error())
		default:
			response.Error(c, response.CodeServerError)
		}
		return
	}
	response.Success(c, matrix)
}
