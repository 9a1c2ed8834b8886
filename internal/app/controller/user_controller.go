package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/service"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
	"github.com/serg-shkviro/eshop/internal/middleware"
)

// UserController exposes the admin-only user management endpoints.
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type AdminUpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ListUsers returns a page of users
// GET /api/v1/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	p, ok := parsePagination(c)
	if !ok {
		return
	}

	users, total, err := ctrl.userService.ListUsers(p)
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(users, p.Meta(total)))
}

// GetUser returns a single user
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates a user record as an administrator
// PUT /api/v1/users/:id
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid user data")
		return
	}

	user, err := ctrl.userService.UpdateUser(adminID, id, service.AdminUserUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrSelfDemotion):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzSelfDemotion, "Cannot change your own admin status")
		case errors.Is(err, service.ErrSelfDeactivate):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzSelfDemotion, "Cannot deactivate your own account")
		default:
			log.Error("Failed to update user", err, map[string]interface{}{
				"user_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update user")
		}
		return
	}

	log.Info("User updated by admin", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  user.ID,
	})
	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user and their cart, reviews and orders
// DELETE /api/v1/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.DeleteUser(adminID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrCannotDeleteSelf):
			apperrors.Forbidden(c, "Cannot delete your own account")
		default:
			log.Error("Failed to delete user", err, map[string]interface{}{
				"user_id": id,
			})
			apperrors.InternalError(c, "Failed to delete user")
		}
		return
	}

	log.Info("User deleted", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
