package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebase/backend-go/internal/database/models"
)

// ==================== TAG REPOSITORY TESTS ====================

func TestTagRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	first, err := repo.GetOrCreate(owner.ID, "Vegan")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	// Same (user, name) resolves to the existing row.
	again, err := repo.GetOrCreate(owner.ID, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// Same name for a different user is a different row.
	foreign, err := repo.GetOrCreate(other.ID, "Vegan")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, foreign.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTagRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	apple, err := repo.GetOrCreate(owner.ID, "Apple")
	require.NoError(t, err)
	_, err = repo.GetOrCreate(owner.ID, "Zucchini")
	require.NoError(t, err)
	_, err = repo.GetOrCreate(other.ID, "Foreign")
	require.NoError(t, err)

	tags, err := repo.ListByOwner(owner.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	// Reverse alphabetical
	assert.Equal(t, "Zucchini", tags[0].Name)
	assert.Equal(t, "Apple", tags[1].Name)

	t.Run("assigned only", func(t *testing.T) {
		recipe := &models.Recipe{UserID: owner.ID, Title: "Pie", TimeMinutes: 5}
		require.NoError(t, db.Create(recipe).Error)
		require.NoError(t, db.Model(recipe).Association("Tags").Append(apple))

		assigned, err := repo.ListByOwner(owner.ID, true)
		require.NoError(t, err)
		require.Len(t, assigned, 1)
		assert.Equal(t, "Apple", assigned[0].Name)
	})
}

func TestTagRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	tag, err := repo.GetOrCreate(owner.ID, "Doomed")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(other.ID, tag.ID), ErrTagNotFound)
	require.NoError(t, repo.Delete(owner.ID, tag.ID))
	assert.ErrorIs(t, repo.Delete(owner.ID, tag.ID), ErrTagNotFound)
}

func TestTagRepository_FindAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	tag, err := repo.GetOrCreate(owner.ID, "Before")
	require.NoError(t, err)

	_, err = repo.FindByOwnerAndID(other.ID, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	found, err := repo.FindByOwnerAndID(owner.ID, tag.ID)
	require.NoError(t, err)

	found.Name = "After"
	require.NoError(t, repo.Update(found))

	reloaded, err := repo.FindByOwnerAndID(owner.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", reloaded.Name)
}

// ==================== INGREDIENT REPOSITORY TESTS ====================

func TestIngredientRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	first, err := repo.GetOrCreate(owner.ID, "Salt")
	require.NoError(t, err)

	again, err := repo.GetOrCreate(owner.ID, "Salt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIngredientRepository_ListByOwner_AssignedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	salt, err := repo.GetOrCreate(owner.ID, "Salt")
	require.NoError(t, err)
	_, err = repo.GetOrCreate(owner.ID, "Pepper")
	require.NoError(t, err)

	recipe := &models.Recipe{UserID: owner.ID, Title: "Broth", TimeMinutes: 30}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Model(recipe).Association("Ingredients").Append(salt))

	all, err := repo.ListByOwner(owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assigned, err := repo.ListByOwner(owner.ID, true)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Salt", assigned[0].Name)
}

func TestIngredientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	ingredient, err := repo.GetOrCreate(owner.ID, "Doomed")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(owner.ID, ingredient.ID))
	assert.ErrorIs(t, repo.Delete(owner.ID, ingredient.ID), ErrIngredientNotFound)
}
