package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/service"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
	"github.com/serg-shkviro/eshop/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// ListCategories returns a page of categories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	p, ok := parsePagination(c)
	if !ok {
		return
	}

	categories, total, err := ctrl.categoryService.ListCategories(p)
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(categories, p.Meta(total)))
}

// GetCategory returns a single category
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category (admin only)
// POST /api/v1/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameExists) {
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Category name already exists")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
	})
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates a category (admin only)
// PUT /api/v1/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryNameExists):
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Category name already exists")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update category")
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category, detaching its products (admin only)
// DELETE /api/v1/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to delete category")
		return
	}

	log.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
