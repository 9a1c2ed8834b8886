package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/service"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
	"github.com/serg-shkviro/eshop/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "shipping_address is required")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, req.ShippingAddress, req.PaymentMethod, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.UnprocessableEntity(c, apperrors.OrderEmptyCart, "Cart is empty")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.OrderInsufficientStock, err.Error())
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product no longer exists")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "place order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns a page of the user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
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

	orders, total, err := ctrl.orderService.GetUserOrders(userID, p)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(orders, p.Meta(total)))
}

// GetOrder returns a single order with its items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
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

	order, err := ctrl.orderService.GetOrder(userID, id, middleware.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus advances an order along the status lifecycle
// PUT /api/v1/orders/:id
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
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

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(userID, id, model.OrderStatus(req.Status), middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.UnprocessableEntity(c, apperrors.OrderInvalidStatus, "Unknown order status")
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Order cannot transition to the requested status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   order.Status,
	})
	c.JSON(http.StatusOK, order)
}
