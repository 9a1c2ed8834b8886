package service

import (
	"errors"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfDemotion     = errors.New("cannot change your own admin status")
	ErrSelfDeactivate   = errors.New("cannot deactivate your own account")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// AdminUserUpdate carries the fields an administrator may change on a
// user record. Nil pointers leave the corresponding field untouched.
type AdminUserUpdate struct {
	Name     *string
	Phone    *string
	Address  *string
	IsActive *bool
	IsAdmin  *bool
}

type UserService interface {
	ListUsers(p repository.Pagination) ([]model.User, int64, error)
	GetUser(id uint) (*model.User, error)
	UpdateUser(adminID, targetID uint, update AdminUserUpdate) (*model.User, error)
	DeleteUser(adminID, targetID uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(p repository.Pagination) ([]model.User, int64, error) {
	users, total, err := s.userRepo.FindPage(p)
	if err != nil {
		logger.Error("Failed to list users", err, map[string]interface{}{
			"page": p.Page,
		})
		return nil, 0, err
	}
	return users, total, nil
}

func (s *userService) GetUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(adminID, targetID uint, update AdminUserUpdate) (*model.User, error) {
	logger.Info("Admin updating user", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  targetID,
	})

	// An admin may not toggle their own privileges or lock themselves out.
	if adminID == targetID {
		if update.IsAdmin != nil {
			logger.Warn("Admin attempted to change own admin status", map[string]interface{}{
				"admin_id": adminID,
			})
			return nil, ErrSelfDemotion
		}
		if update.IsActive != nil && !*update.IsActive {
			return nil, ErrSelfDeactivate
		}
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for admin update", err, map[string]interface{}{
			"user_id": targetID,
		})
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated by admin", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  user.ID,
	})
	return user, nil
}

func (s *userService) DeleteUser(adminID, targetID uint) error {
	if adminID == targetID {
		logger.Warn("Admin attempted to delete own account", map[string]interface{}{
			"admin_id": adminID,
		})
		return ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		logger.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": targetID,
		})
		return err
	}

	logger.Info("User deleted by admin", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  targetID,
	})
	return nil
}
