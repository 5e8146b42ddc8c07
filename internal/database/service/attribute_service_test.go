package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
)

func setupAttributeServices(t *testing.T) (AttributeService, AttributeService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Tag{},
		&models.Ingredient{},
	)
	require.NoError(t, err)

	tags := NewTagService(repository.NewTagRepository(db), testLogger())
	ingredients := NewIngredientService(repository.NewIngredientRepository(db), testLogger())
	return tags, ingredients, db
}

func TestTagService_ListAndRename(t *testing.T) {
	tags, _, db := setupAttributeServices(t)
	user := seedUser(t, db, "cook@example.com")

	require.NoError(t, db.Create(&models.Tag{UserID: user.ID, Name: "Breakfast"}).Error)
	require.NoError(t, db.Create(&models.Tag{UserID: user.ID, Name: "Supper"}).Error)

	listed, err := tags.List(user.ID, false)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Supper", listed[0].Name)
	assert.Equal(t, "Breakfast", listed[1].Name)

	renamed, err := tags.Rename(user.ID, listed[1].ID, "Brunch")
	require.NoError(t, err)
	assert.Equal(t, "Brunch", renamed.Name)

	_, err = tags.Rename(user.ID, 9999, "Ghost")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestIngredientService_Delete(t *testing.T) {
	_, ingredients, db := setupAttributeServices(t)
	user := seedUser(t, db, "cook@example.com")
	other := seedUser(t, db, "other@example.com")

	row := models.Ingredient{UserID: user.ID, Name: "Salt"}
	require.NoError(t, db.Create(&row).Error)

	// Cross-user delete reads as not found.
	assert.ErrorIs(t, ingredients.Delete(other.ID, row.ID), ErrAttributeNotFound)

	require.NoError(t, ingredients.Delete(user.ID, row.ID))
	assert.ErrorIs(t, ingredients.Delete(user.ID, row.ID), ErrAttributeNotFound)
}
