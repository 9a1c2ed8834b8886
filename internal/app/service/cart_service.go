package service

import (
	"errors"
	"fmt"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInactive   = errors.New("product is not available")
)

// InsufficientStockError names the product whose stock could not cover a
// requested quantity. It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Cart summarises a user's cart with a total computed from current
// product prices.
type Cart struct {
	Items      []model.CartItem
	TotalItems int
	Total      decimal.Decimal
}

type CartService interface {
	GetCart(userID uint) (*Cart, error)
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateCartItem(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(userID uint) (*Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	cart := &Cart{Items: items, Total: decimal.Zero}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.Total = cart.Total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return cart, nil
}

// AddToCart merges the quantity into an existing line for the same
// product, validating the combined quantity against available stock.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	desired := quantity
	if existing != nil {
		desired += existing.Quantity
	}
	if desired > product.Stock {
		logger.Warn("Add to cart failed: insufficient stock", map[string]interface{}{
			"product_id": productID,
			"requested":  desired,
			"available":  product.Stock,
		})
		return nil, &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   desired,
			Available:   product.Stock,
		}
	}

	if existing != nil {
		existing.Quantity = desired
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return s.cartRepo.FindByID(existing.ID)
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":      userID,
		"product_id":   productID,
		"cart_item_id": item.ID,
	})
	return s.cartRepo.FindByID(item.ID)
}

func (s *cartService) UpdateCartItem(userID, itemID uint, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return nil, err
	}
	// Items from other carts are indistinguishable from missing ones.
	if item.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	if quantity > item.Product.Stock {
		logger.Warn("Cart update failed: insufficient stock", map[string]interface{}{
			"product_id": item.ProductID,
			"requested":  quantity,
			"available":  item.Product.Stock,
		})
		return nil, &InsufficientStockError{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Requested:   quantity,
			Available:   item.Product.Stock,
		}
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return s.cartRepo.FindByID(item.ID)
}

func (s *cartService) RemoveFromCart(userID, itemID uint) error {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	if err := s.cartRepo.Delete(itemID); err != nil {
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
