package service

import (
	"errors"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
)

type CategoryService interface {
	ListCategories(p repository.Pagination) ([]model.Category, int64, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(name, description string) (*model.Category, error)
	UpdateCategory(id uint, name, description *string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(p repository.Pagination) ([]model.Category, int64, error) {
	categories, total, err := s.categoryRepo.FindPage(p)
	if err != nil {
		logger.Error("Failed to list categories", err, map[string]interface{}{
			"page": p.Page,
		})
		return nil, 0, err
	}
	return categories, total, nil
}

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, description string) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": name,
	})

	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check category name", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Category creation failed: name already exists", map[string]interface{}{
			"name": name,
		})
		return nil, ErrCategoryNameExists
	}

	category := &model.Category{
		Name:        name,
		Description: description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name, description *string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category for update", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	if name != nil && *name != category.Name {
		existing, err := s.categoryRepo.FindByName(*name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryNameExists
		}
		category.Name = *name
	}
	if description != nil {
		category.Description = *description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// DeleteCategory removes a category. Products referencing it are kept
// and detached rather than deleted.
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
