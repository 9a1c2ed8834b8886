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

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	return NewCategoryService(categoryRepo), testDB
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	_, err := categoryService.CreateCategory("Books", "Paper and ink")
	require.NoError(t, err)

	_, err = categoryService.CreateCategory("Books", "Same name again")
	assert.ErrorIs(t, err, ErrCategoryNameExists)
}

func TestCategoryService_UpdateCategory_RenameToTakenName(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	_, err := categoryService.CreateCategory("Books", "")
	require.NoError(t, err)
	music, err := categoryService.CreateCategory("Music", "")
	require.NoError(t, err)

	name := "Books"
	_, err = categoryService.UpdateCategory(music.ID, &name, nil)
	assert.ErrorIs(t, err, ErrCategoryNameExists)
}

func TestCategoryService_DeleteCategory_DetachesProducts(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Doomed", "")
	require.NoError(t, err)

	product := &model.Product{
		Name:       "Orphaned Product",
		Price:      decimal.RequireFromString("10.00"),
		Stock:      5,
		CategoryID: &category.ID,
		IsActive:   true,
	}
	testDB.Create(product)

	err = categoryService.DeleteCategory(category.ID)
	require.NoError(t, err)

	// The product survives with no category
	var survivor model.Product
	require.NoError(t, testDB.First(&survivor, product.ID).Error)
	assert.Nil(t, survivor.CategoryID)
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	_, err := categoryService.GetCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
