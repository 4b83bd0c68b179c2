package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/middleware"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// CatalogHandler exposes the lookup-value catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogSvc}
}

// CreateCatalogRequest creates a catalog item.
type CreateCatalogRequest struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateCatalogRequest renames a catalog item.
type UpdateCatalogRequest struct {
	Value string `json:"value" binding:"required"`
}

// ReorderCatalogRequest rewrites the display order of one type.
type ReorderCatalogRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// GetByType lists the active items of one type in display order.
// GET /api/v1/config/catalogs/:type
func (h *CatalogHandler) GetByType(c *gin.Context) {
	catalogType := c.Param("type")

	items, err := h.catalogService.GetByType(c.Request.Context(), catalogType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, items)
}

// Create adds a value at the end of its type's order.
// POST /api/v1/config/catalogs
func (h *CatalogHandler) Create(c *gin.Context) {
	var req CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := h.catalogService.Create(c.Request.Context(), req.Type, req.Value, middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, item)
}

// Update renames an active item.
// PUT /api/v1/config/catalogs/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := h.catalogService.Update(c.Request.Context(), id, req.Value, middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, item)
}

// Delete soft-deletes an active item.
// DELETE /api/v1/config/catalogs/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.catalogService.Delete(c.Request.Context(), id, middleware.StaffID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// Reorder rewrites display order for one type.
// PUT /api/v1/config/catalogs/reorder/:type
func (h *CatalogHandler) Reorder(c *gin.Context) {
	catalogType := c.Param("type")
	var req ReorderCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	items, err := h.catalogService.Reorder(c.Request.Context(), catalogType, req.IDs, middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, items)
}

// writeError maps catalog engine errors onto business codes.
func (h *CatalogHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCatalogType):
		response.ErrorWithMsg(c, response.CodeInvalidCatalogType, err.Error())
	case errors.Is(err, service.ErrValueRequired):
		response.ErrorWithMsg(c, response.CodeValueRequired, err.Error())
	case errors.Is(err, service.ErrValueTooLong):
		response.ErrorWithMsg(c, response.CodeValueTooLong, err.Error())
	case errors.Is(err, service.ErrDuplicateValue):
		response.ErrorWithMsg(c, response.CodeDuplicateValue, err.Error())
	case errors.Is(err, service.ErrCatalogNotFound):
		response.Error(c, response.CodeCatalogNotFound)
	case errors.Is(err, service.ErrReorderSetMismatch):
		response.ErrorWithMsg(c, response.CodeReorderMismatch, err.Error())
	default:
		response.Error(c, response.CodeServerError)
	}
}
