package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/internal/app/service"
	"github.com/serg-shkviro/eshop/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewControllerTest(t *testing.T) (*ReviewController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	reviewController := NewReviewController(reviewService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		IsActive:     true,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Test Product",
		Price:    decimal.RequireFromString("9.99"),
		Stock:    5,
		IsActive: true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return reviewController, router, testDB, user, product
}

func TestReviewController_CreateReview(t *testing.T) {
	controller, router, _, user, product := setupReviewControllerTest(t)

	router.POST("/reviews", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateReview(c)
	})

	body, _ := json.Marshal(CreateReviewRequest{ProductID: product.ID, Rating: 4, Comment: "Solid"})
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var review model.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.Equal(t, product.ID, review.ProductID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewController_CreateReview_Duplicate(t *testing.T) {
	controller, router, testDB, user, product := setupReviewControllerTest(t)

	testDB.Create(&model.Review{UserID: user.ID, ProductID: product.ID, Rating: 5})

	router.POST("/reviews", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateReview(c)
	})

	body, _ := json.Marshal(CreateReviewRequest{ProductID: product.ID, Rating: 3})
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REVIEW_ALREADY_EXISTS")
}

func TestReviewController_CreateReview_RatingOutOfRange(t *testing.T) {
	controller, router, _, user, product := setupReviewControllerTest(t)

	router.POST("/reviews", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateReview(c)
	})

	body, _ := json.Marshal(CreateReviewRequest{ProductID: product.ID, Rating: 6})
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReviewController_ListProductReviews_UnknownProduct(t *testing.T) {
	controller, router, _, _, _ := setupReviewControllerTest(t)

	router.GET("/reviews/product/:id", controller.ListProductReviews)

	req := httptest.NewRequest(http.MethodGet, "/reviews/product/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CATALOG_PRODUCT_NOT_FOUND")
}

func TestReviewController_DeleteReview_NotAuthor(t *testing.T) {
	controller, router, testDB, user, product := setupReviewControllerTest(t)

	author := &model.User{Email: "author@example.com", PasswordHash: "hash", Name: "Author", IsActive: true}
	testDB.Create(author)
	review := &model.Review{UserID: author.ID, ProductID: product.ID, Rating: 5}
	testDB.Create(review)

	router.DELETE("/reviews/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DeleteReview(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/reviews/"+itoa(review.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "REVIEW_NOT_FOUND")
}
