package repository

import (
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByUserAndProduct(userID, productID uint) (*model.Review, error)
	FindPageByProductID(productID uint, p Pagination) ([]model.Review, int64, error)
	FindPageByUserID(userID uint, p Pagination) ([]model.Review, int64, error)
	Update(review *model.Review) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":    review.UserID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":    review.UserID,
			"product_id": review.ProductID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserAndProduct(userID, productID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindPageByProductID lists a product's reviews newest first, with
// the author preloaded for display.
func (r *reviewRepository) FindPageByProductID(productID uint, p Pagination) ([]model.Review, int64, error) {
	var total int64
	if err := r.db.Model(&model.Review{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		logger.Error("Failed to count reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, 0, err
	}

	var reviews []model.Review
	err := r.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews page", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) FindPageByUserID(userID uint, p Pagination) ([]model.Review, int64, error) {
	var total int64
	if err := r.db.Model(&model.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Error("Failed to count user reviews", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var reviews []model.Review
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find user reviews page", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
