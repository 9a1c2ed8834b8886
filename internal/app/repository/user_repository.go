package repository

import (
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindPage(p Pagination) ([]model.User, int64, error)
	Update(user *model.User) error
	Delete(id uint) error
	CountAdmins() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindPage lists users newest first.
func (r *userRepository) FindPage(p Pagination) ([]model.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.User{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count users", err)
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to find users page", err, map[string]interface{}{
			"page": p.Page,
		})
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

// Delete removes a user and everything it owns. Dependents go first,
// inside one transaction, so no half-deleted account can be observed.
func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user with owned data", map[string]interface{}{
		"user_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		orderIDs := tx.Model(&model.Order{}).Where("user_id = ?", id).Select("id")
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

func (r *userRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}
