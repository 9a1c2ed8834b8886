package service

import (
	"errors"
	"fmt"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type OrderService interface {
	PlaceOrder(userID uint, shippingAddress, paymentMethod, notes string) (*model.Order, error)
	GetUserOrders(userID uint, p repository.Pagination) ([]model.Order, int64, error)
	GetOrder(userID uint, orderID uint, isAdmin bool) (*model.Order, error)
	UpdateOrderStatus(userID uint, orderID uint, status model.OrderStatus, isAdmin bool) (*model.Order, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// PlaceOrder converts the user's cart into an order in a single
// transaction. Product rows are locked and re-checked against stock, so
// either every line is fulfilled or nothing changes.
func (s *orderService) PlaceOrder(userID uint, shippingAddress, paymentMethod, notes string) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart for order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Order creation failed: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		orderItems  []model.OrderItem
		totalAmount = decimal.Zero
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to load product during order creation", err, map[string]interface{}{
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if product.Stock < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Order creation failed: insufficient product stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
				"requested":  cartItem.Quantity,
				"available":  product.Stock,
			})
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   cartItem.Quantity,
				Available:   product.Stock,
			}
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Quantity:  cartItem.Quantity,
			Price:     product.Price,
		})
		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - ?", cartItem.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update product stock", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	order := &model.Order{
		UserID:          userID,
		TotalAmount:     totalAmount,
		Status:          model.OrderStatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
		OrderItems:      orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": totalAmount.String(),
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": totalAmount.String(),
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint, p repository.Pagination) ([]model.Order, int64, error) {
	orders, total, err := s.orderRepo.FindPageByUserID(userID, p)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) GetOrder(userID uint, orderID uint, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	// Other users' orders look like missing ones to non-admins.
	if !isAdmin && order.UserID != userID {
		logger.Warn("Order access denied", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(userID uint, orderID uint, status model.OrderStatus, isAdmin bool) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(status) {
		logger.Warn("Order status transition rejected", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       status,
	})
	return s.orderRepo.FindByID(orderID)
}
