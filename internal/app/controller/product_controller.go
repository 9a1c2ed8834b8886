package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/internal/app/service"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
	"github.com/serg-shkviro/eshop/internal/middleware"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	CategoryID  *uint           `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	IsActive    *bool           `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  *uint            `json:"category_id"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

// ListProducts returns a filtered page of products. Inactive products
// are only included for admins requesting include_inactive=true.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	p, ok := parsePagination(c)
	if !ok {
		return
	}

	filter, ok := ctrl.parseFilter(c)
	if !ok {
		return
	}

	products, total, err := ctrl.productService.ListProducts(filter, p)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(products, p.Meta(total)))
}

func (ctrl *ProductController) parseFilter(c *gin.Context) (repository.ProductFilter, bool) {
	var filter repository.ProductFilter

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidID, "Invalid category_id filter")
			return filter, false
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	filter.Search = c.Query("search")

	if raw := c.Query("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "Invalid min_price filter")
			return filter, false
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "Invalid max_price filter")
			return filter, false
		}
		filter.MaxPrice = &v
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "min_price cannot exceed max_price")
		return filter, false
	}

	filter.InStock = c.Query("in_stock") == "true"
	filter.IncludeInactive = c.Query("include_inactive") == "true" && middleware.IsAdmin(c)

	return filter, true
}

// GetProduct returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product (admin only)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}
	if req.Price.IsNegative() {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "Price cannot be negative")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductInput{
		Name:        &req.Name,
		Description: &req.Description,
		Price:       &req.Price,
		Stock:       &req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    &req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product (admin only)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "Price cannot be negative")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product unless orders reference it (admin only)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductInOrders):
			apperrors.Conflict(c, apperrors.ProductInOrders, "Product is referenced by existing orders, deactivate it instead")
		default:
			log.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "Failed to delete product")
		}
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
