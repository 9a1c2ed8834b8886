package service

import (
	"testing"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderService := NewOrderService(testDB, orderRepo, cartRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		IsActive:     true,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Test Product",
		Price:    decimal.RequireFromString("10.00"),
		Stock:    10,
		IsActive: true,
	}
	testDB.Create(product)

	return orderService, testDB, user, product
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})

	order, err := orderService.PlaceOrder(user.ID, "123 Main Street", "card", "ring the bell")
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("20.00")),
		"expected total 20.00, got %s", order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "123 Main Street", order.ShippingAddress)
	assert.Len(t, order.OrderItems, 1)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.True(t, order.OrderItems[0].Price.Equal(product.Price))

	// Stock decreased
	var updatedProduct model.Product
	testDB.First(&updatedProduct, product.ID)
	assert.Equal(t, 8, updatedProduct.Stock)

	// Cart cleared
	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	orderService, _, user, _ := setupOrderServiceTest(t)

	_, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  20,
	})

	_, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, "Test Product", stockErr.ProductName)

	// Stock and cart untouched
	var updatedProduct model.Product
	testDB.First(&updatedProduct, product.ID)
	assert.Equal(t, 10, updatedProduct.Stock)

	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrderService_PlaceOrder_AllOrNothing(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	scarce := &model.Product{
		Name:     "Scarce Product",
		Price:    decimal.RequireFromString("5.00"),
		Stock:    1,
		IsActive: true,
	}
	testDB.Create(scarce)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: scarce.ID, Quantity: 3})

	_, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The first product's stock must not have been decremented
	var first model.Product
	testDB.First(&first, product.ID)
	assert.Equal(t, 10, first.Stock)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestOrderService_GetOrder_OwnershipHidden(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	require.NoError(t, err)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", IsActive: true}
	testDB.Create(other)

	_, err = orderService.GetOrder(other.ID, order.ID, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Admins can read any order
	got, err := orderService.GetOrder(other.ID, order.ID, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderService_UpdateOrderStatus_Transitions(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	require.NoError(t, err)

	// pending -> shipped skips confirmed
	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusShipped, false)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	updated, err := orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusConfirmed, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	updated, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusShipped, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	// shipped orders cannot be cancelled
	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusCancelled, false)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	updated, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusDelivered, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)

	// delivered is terminal
	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusCancelled, false)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderService_UpdateOrderStatus_OwnershipHidden(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.PlaceOrder(user.ID, "123 Main Street", "", "")
	require.NoError(t, err)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", IsActive: true}
	testDB.Create(other)

	_, err = orderService.UpdateOrderStatus(other.ID, order.ID, model.OrderStatusConfirmed, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	updated, err := orderService.UpdateOrderStatus(other.ID, order.ID, model.OrderStatusConfirmed, true)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	orderService, _, user, _ := setupOrderServiceTest(t)

	_, err := orderService.UpdateOrderStatus(user.ID, 1, model.OrderStatus("teleported"), false)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
