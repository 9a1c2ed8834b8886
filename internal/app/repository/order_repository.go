package repository

import (
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindPageByUserID(userID uint, p Pagination) ([]model.Order, int64, error)
	UpdateStatus(id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Order rows are created inside the order service's placement
// transaction, not here.

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("OrderItems").
		Preload("OrderItems.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindPageByUserID lists a user's orders newest first.
func (r *orderRepository) FindPageByUserID(userID uint, p Pagination) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders page", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	if err := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}
