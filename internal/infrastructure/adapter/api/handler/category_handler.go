package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categories usecase.CategoryUseCase
	logger     coreport.Logger
}

// NewCategoryHandler creates a new category handler instance
func NewCategoryHandler(categories usecase.CategoryUseCase, logger coreport.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponses(categories))
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categories.Create(c.Request.Context(), middleware.UserID(c), req.ToUseCase())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(*category))
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// InitializeDefaults handles POST /api/v1/categories/defaults
func (h *CategoryHandler) InitializeDefaults(c *gin.Context) {
	created, err := h.categories.InitializeDefaults(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.InitializeDefaultsResponse{Created: created})
}
