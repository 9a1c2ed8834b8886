package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
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

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo, cartRepo)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		IsActive:     true,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Test Product",
		Price:    decimal.RequireFromString("12.00"),
		Stock:    10,
		IsActive: true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user, product
}

func TestOrderController_PlaceOrder(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{ShippingAddress: "123 Main Street"})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Len(t, order.OrderItems, 1)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("24.00")))
}

func TestOrderController_PlaceOrder_MissingAddress(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderController_PlaceOrder_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{ShippingAddress: "123 Main Street"})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_EMPTY_CART")
}

func TestOrderController_ListOrders_PaginationEnvelope(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo, cartRepo)

	for i := 0; i < 3; i++ {
		cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
		_, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
		require.NoError(t, err)
	}

	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ListOrders(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items      []model.Order       `json:"items"`
		Pagination repository.PageMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrevious)
}

func TestOrderController_ListOrders_InvalidPageSize(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ListOrders(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders?page_size=500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_RANGE")
}

func TestOrderController_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo, cartRepo)

	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	require.NoError(t, err)

	router.PUT("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateOrderStatus(c)
	})

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "delivered"})
	req := httptest.NewRequest(http.MethodPut, "/orders/"+itoa(order.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_INVALID_TRANSITION")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
