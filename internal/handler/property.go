package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/middleware"
	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// PropertyHandler exposes listing CRUD.
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates the property handler.
func NewPropertyHandler(propertySvc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertySvc}
}

// PropertyRequest creates or updates a listing.
type PropertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Area        string  `json:"area" binding:"required"`
	Address     string  `json:"address"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// Create adds a listing.
// POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	property := &model.Property{
		Title:       req.Title,
		Type:        req.Type,
		Area:        req.Area,
		Address:     req.Address,
		Price:       req.Price,
		Description: req.Description,
		Status:      req.Status,
	}

	if err := h.propertyService.Create(c.Request.Context(), property, middleware.StaffID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, property)
}

// Get returns one listing.
// GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.propertyService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, property)
}

// Update rewrites a listing.
// PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	property.Title = req.Title
	property.Type = req.Type
	property.Area = req.Area
	property.Address = req.Address
	property.Price = req.Price
	property.Description = req.Description
	if req.Status != "" {
		property.Status = req.Status
	}

	if err := h.propertyService.Update(c.Request.Context(), property, middleware.StaffID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, property)
}

// Delete removes a listing.
// DELETE /api/v1/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// List returns listings filtered by type/area/status.
// GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter := &repository.PropertyFilter{
		Type:   c.Query("type"),
		Area:   c.Query("area"),
		Status: c.Query("status"),
	}
	page := &repository.Pagination{Page: 1, PageSize: 20}
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page.Page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 && ps <= 100 {
		page.PageSize = ps
	}

	properties, total, err := h.propertyService.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}

	response.Success(c, gin.H{
		"list":      properties,
		"total":     total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

func (h *PropertyHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		response.Error(c, response.CodePropertyNotFound)
	case errors.Is(err, service.ErrPropertyTitleEmpty),
		errors.Is(err, service.ErrUnknownCatalogValue):
		response.ErrorWithMsg(c, response.CodeInvalidRequest, err.Error())
	default:
		response.Error(c, response.CodeServerError)
	}
}
