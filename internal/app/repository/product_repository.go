package repository

import (
	"fmt"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. Nil/zero fields are skipped.
type ProductFilter struct {
	CategoryID      *uint
	Search          string // case-insensitive substring on name
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	InStock         bool
	IncludeInactive bool // honored only for admin callers (checked upstream)
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindPage(filter ProductFilter, p Pagination) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(id uint) error
	CountOrderReferences(id uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) filtered(filter ProductFilter) *gorm.DB {
	query := r.db.Model(&model.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		// LOWER() keeps the match case-insensitive on both Postgres and
		// the sqlite test database.
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("LOWER(name) LIKE LOWER(?)", like)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock {
		query = query.Where("stock > 0")
	}
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	return query
}

// FindPage lists products newest id first.
func (r *productRepository) FindPage(filter ProductFilter, p Pagination) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id":      filter.CategoryID,
		"search":           filter.Search,
		"in_stock":         filter.InStock,
		"include_inactive": filter.IncludeInactive,
		"page":             p.Page,
	})

	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		logger.Error("Failed to count products", err)
		return nil, 0, err
	}

	var products []model.Product
	err := r.filtered(filter).
		Preload("Category").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products page", err, map[string]interface{}{
			"page": p.Page,
		})
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// Delete removes a product together with its cart lines and reviews,
// inside one transaction, so no cart ever holds a line for a product
// that no longer exists.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product with dependent rows", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// CountOrderReferences counts order items referencing the product.
// Non-zero blocks deletion: historical orders must keep their lines.
func (r *productRepository) CountOrderReferences(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}
