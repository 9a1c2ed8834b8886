package service

import (
	"errors"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("product already reviewed by this user")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	GetProductReviews(productID uint, p repository.Pagination) ([]model.Review, int64, error)
	GetUserReviews(userID uint, p repository.Pagination) ([]model.Review, int64, error)
	CreateReview(userID, productID uint, rating int, comment string) (*model.Review, error)
	UpdateReview(userID, reviewID uint, rating *int, comment *string) (*model.Review, error)
	DeleteReview(userID, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewService) GetProductReviews(productID uint, p repository.Pagination) ([]model.Review, int64, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.FindPageByProductID(productID, p)
	if err != nil {
		logger.Error("Failed to fetch product reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *reviewService) GetUserReviews(userID uint, p repository.Pagination) ([]model.Review, int64, error) {
	reviews, total, err := s.reviewRepo.FindPageByUserID(userID, p)
	if err != nil {
		logger.Error("Failed to fetch user reviews", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *reviewService) CreateReview(userID, productID uint, rating int, comment string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"rating":     rating,
	})

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing review", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Review creation failed: already reviewed", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, ErrReviewAlreadyExists
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created successfully", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    userID,
		"product_id": productID,
	})
	return s.reviewRepo.FindByID(review.ID)
}

func (s *reviewService) UpdateReview(userID, reviewID uint, rating *int, comment *string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		logger.Error("Failed to fetch review for update", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrReviewNotFound
	}

	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	logger.Info("Review updated successfully", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   userID,
	})
	return s.reviewRepo.FindByID(review.ID)
}

// DeleteReview removes the caller's own review. Reviews belonging to
// anyone else, admin caller or not, are reported as missing.
func (s *reviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrReviewNotFound
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})
	return nil
}

func (s *reviewService) ensureProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
