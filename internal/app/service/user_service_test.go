package service

import (
	"fmt"
	"testing"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB, *model.User, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	userService := NewUserService(userRepo)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		IsActive:     true,
		IsAdmin:      true,
	}
	testDB.Create(admin)

	user := &model.User{
		Email:        "user@example.com",
		PasswordHash: "hash",
		Name:         "Regular User",
		IsActive:     true,
	}
	testDB.Create(user)

	return userService, testDB, admin, user
}

func boolPtr(b bool) *bool { return &b }

func TestUserService_UpdateUser_PromoteToAdmin(t *testing.T) {
	userService, _, admin, user := setupUserServiceTest(t)

	updated, err := userService.UpdateUser(admin.ID, user.ID, AdminUserUpdate{
		IsAdmin: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestUserService_UpdateUser_SelfDemotionBlocked(t *testing.T) {
	userService, _, admin, _ := setupUserServiceTest(t)

	_, err := userService.UpdateUser(admin.ID, admin.ID, AdminUserUpdate{
		IsAdmin: boolPtr(false),
	})
	assert.ErrorIs(t, err, ErrSelfDemotion)

	// Setting a flag to its current value is still rejected
	_, err = userService.UpdateUser(admin.ID, admin.ID, AdminUserUpdate{
		IsAdmin: boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrSelfDemotion)
}

func TestUserService_UpdateUser_SelfDeactivateBlocked(t *testing.T) {
	userService, _, admin, _ := setupUserServiceTest(t)

	_, err := userService.UpdateUser(admin.ID, admin.ID, AdminUserUpdate{
		IsActive: boolPtr(false),
	})
	assert.ErrorIs(t, err, ErrSelfDeactivate)
}

func TestUserService_UpdateUser_DeactivateOther(t *testing.T) {
	userService, _, admin, user := setupUserServiceTest(t)

	updated, err := userService.UpdateUser(admin.ID, user.ID, AdminUserUpdate{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserService_DeleteUser_SelfBlocked(t *testing.T) {
	userService, _, admin, _ := setupUserServiceTest(t)

	err := userService.DeleteUser(admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
}

func TestUserService_DeleteUser_CascadesOwnedRows(t *testing.T) {
	userService, testDB, admin, user := setupUserServiceTest(t)

	product := &model.Product{
		Name:     "Owned Product",
		Price:    decimal.RequireFromString("10.00"),
		Stock:    5,
		IsActive: true,
	}
	testDB.Create(product)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	testDB.Create(&model.Review{UserID: user.ID, ProductID: product.ID, Rating: 5, Comment: "Nice"})
	testDB.Create(&model.Order{
		UserID:          user.ID,
		TotalAmount:     decimal.RequireFromString("10.00"),
		Status:          model.OrderStatusPending,
		ShippingAddress: "123 Main Street",
		OrderItems: []model.OrderItem{
			{ProductID: product.ID, Quantity: 1, Price: product.Price},
		},
	})

	err := userService.DeleteUser(admin.ID, user.ID)
	require.NoError(t, err)

	_, err = userService.GetUser(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var cartCount, reviewCount, orderItemCount int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	testDB.Model(&model.Review{}).Where("user_id = ?", user.ID).Count(&reviewCount)
	testDB.Model(&model.OrderItem{}).Count(&orderItemCount)
	assert.Zero(t, cartCount)
	assert.Zero(t, reviewCount)
	assert.Zero(t, orderItemCount)

	// The product itself is untouched
	var productCount int64
	testDB.Model(&model.Product{}).Count(&productCount)
	assert.Equal(t, int64(1), productCount)
}

func TestUserService_ListUsers_Paginated(t *testing.T) {
	userService, testDB, _, _ := setupUserServiceTest(t)

	for i := 0; i < 23; i++ {
		testDB.Create(&model.User{
			Email:        fmt.Sprintf("filler%d@example.com", i),
			PasswordHash: "hash",
			Name:         "Filler",
			IsActive:     true,
		})
	}

	p := repository.NewPagination(3, 10)
	users, total, err := userService.ListUsers(p)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, users, 5)

	meta := p.Meta(total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
}
