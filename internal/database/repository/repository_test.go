package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate all required tables
	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Recipe{},
		&models.Tag{},
		&models.Ingredient{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		Email:    email,
		Password: "hashedpassword",
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// ==================== USER REPOSITORY TESTS ====================

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{
		Email:    "test@example.com",
		Password: "hashedpassword",
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByEmail("test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", byID.Email)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.FindByEmail("missing@example.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&models.User{Email: "dup@example.com", Password: "x", Name: "A"}))
	err := repo.Create(&models.User{Email: "dup@example.com", Password: "y", Name: "B"})
	assert.Error(t, err)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "update@example.com")
	user.Name = "Renamed"
	require.NoError(t, repo.Update(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Name)
}

// ==================== AUTH TOKEN REPOSITORY TESTS ====================

func TestAuthTokenRepository_GetOrCreate_ReusesExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := createTestUser(t, db, "token@example.com")

	first, err := repo.GetOrCreate(user.ID, "first-key")
	require.NoError(t, err)
	assert.Equal(t, "first-key", first.Key)

	// The second login supplies a fresh key, but the stored one wins.
	second, err := repo.GetOrCreate(user.ID, "second-key")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "first-key", second.Key)

	var count int64
	require.NoError(t, db.Model(&models.AuthToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthTokenRepository_FindByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := createTestUser(t, db, "lookup@example.com")

	_, err := repo.GetOrCreate(user.ID, "lookup-key")
	require.NoError(t, err)

	token, err := repo.FindByKey("lookup-key")
	require.NoError(t, err)
	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, "lookup@example.com", token.User.Email)

	_, err = repo.FindByKey("no-such-key")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAuthTokenRepository_DeleteByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := createTestUser(t, db, "revoke@example.com")

	_, err := repo.GetOrCreate(user.ID, "revoked-key")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUser(user.ID))

	_, err = repo.FindByKey("revoked-key")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
