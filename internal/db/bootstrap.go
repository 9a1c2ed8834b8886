package db

import (
	"errors"

	"github.com/serg-shkviro/eshop/config"
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/pkg/logger"
	"github.com/serg-shkviro/eshop/pkg/util"
	"gorm.io/gorm"
)

// EnsureFirstAdmin creates the bootstrap administrator from
// configuration when the database holds no admin account yet. If a
// user with the configured email already exists it is promoted
// instead. A no-op when an admin exists or no bootstrap identity is
// configured.
func EnsureFirstAdmin(cfg *config.AdminConfig) error {
	var adminCount int64
	if err := DB.Model(&model.User{}).Where("is_admin = ?", true).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount > 0 {
		logger.Debug("Admin account already exists, skipping bootstrap")
		return nil
	}

	if cfg.Email == "" || cfg.Password == "" {
		logger.Info("FIRST_ADMIN_EMAIL not set, skipping admin bootstrap")
		return nil
	}

	var existing model.User
	err := DB.Where("email = ?", cfg.Email).First(&existing).Error
	switch {
	case err == nil:
		existing.IsAdmin = true
		if err := DB.Save(&existing).Error; err != nil {
			return err
		}
		logger.Info("Existing user promoted to administrator", map[string]interface{}{
			"email": cfg.Email,
		})
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := util.HashPassword(cfg.Password)
		if err != nil {
			return err
		}
		admin := &model.User{
			Email:        cfg.Email,
			PasswordHash: hash,
			Name:         cfg.Name,
			IsActive:     true,
			IsAdmin:      true,
		}
		if err := DB.Create(admin).Error; err != nil {
			return err
		}
		logger.Info("Bootstrap administrator created", map[string]interface{}{
			"email": cfg.Email,
		})
		return nil
	default:
		return err
	}
}
