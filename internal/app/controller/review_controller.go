package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/service"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
	"github.com/serg-shkviro/eshop/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ListProductReviews returns a page of reviews for a product
// GET /api/v1/reviews/product/:id
func (ctrl *ReviewController) ListProductReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, ok := parsePagination(c)
	if !ok {
		return
	}

	reviews, total, err := ctrl.reviewService.GetProductReviews(productID, p)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to list product reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(reviews, p.Meta(total)))
}

// ListMyReviews returns a page of the authenticated user's reviews
// GET /api/v1/reviews/my
func (ctrl *ReviewController) ListMyReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	p, ok := parsePagination(c)
	if !ok {
		return
	}

	reviews, total, err := ctrl.reviewService.GetUserReviews(userID, p)
	if err != nil {
		log.Error("Failed to list user reviews", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(reviews, p.Meta(total)))
}

// CreateReview posts a review for a product, one per user
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "product_id and a rating between 1 and 5 are required")
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrReviewAlreadyExists):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "You have already reviewed this product")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.UnprocessableEntity(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create review")
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    userID,
		"product_id": req.ProductID,
	})
	c.JSON(http.StatusCreated, review)
}

// UpdateReview edits the caller's own review
// PUT /api/v1/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.UnprocessableEntity(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			log.Error("Failed to update review", err, map[string]interface{}{
				"review_id": id,
			})
			apperrors.InternalError(c, "Failed to update review")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes the caller's own review
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(userID, id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		log.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": id,
		})
		apperrors.InternalError(c, "Failed to delete review")
		return
	}

	log.Info("Review deleted", map[string]interface{}{
		"review_id": id,
		"user_id":   userID,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}
