package seed

import (
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Item{},
		&models.Comment{},
		&models.Rating{},
	))
	return db
}

func TestFactory_CreateUser_HasProfile(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.DefaultProfileImage, profile.Image)
}

func TestFactory_CreateItem_ValidCookingTime(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)

	item, err := f.CreateItem(user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, item.UserID)

	// Round-trips through the wire format
	parsed, err := models.ParseDuration(item.CookingTime.String())
	require.NoError(t, err)
	assert.Equal(t, item.CookingTime, parsed)
}

func TestFactory_CreateRating_UpsertsAggregate(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	item, err := f.CreateItem(user)
	require.NoError(t, err)

	first, err := f.CreateRating(item, func(r *models.Rating) {
		r.Average = 3.0
		r.Count = 4
	})
	require.NoError(t, err)

	// A second write for the same recipe refreshes the aggregate row
	// instead of inserting a duplicate.
	second, err := f.CreateRating(item, func(r *models.Rating) {
		r.Average = 4.5
		r.Count = 9
	})
	require.NoError(t, err)

	assert.Equal(t, first.ItemID, second.ItemID)
	assert.InDelta(t, 4.5, second.Average, 0.001)
	assert.Equal(t, 9, second.Count)

	var ratingCount int64
	require.NoError(t, db.Model(&models.Rating{}).
		Where("item_id = ?", item.ID).Count(&ratingCount).Error)
	assert.Equal(t, int64(1), ratingCount)
}

func TestSeeder_Seed(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Seed(3, 12))

	var userCount, itemCount, ratingCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Item{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Rating{}).Count(&ratingCount).Error)

	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(12), itemCount)
	assert.LessOrEqual(t, ratingCount, itemCount)

	// Ratings always target existing recipes
	var orphaned int64
	require.NoError(t, db.Model(&models.Rating{}).
		Where("item_id NOT IN (?)", db.Model(&models.Item{}).Select("id")).
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Seed(2, 6))
	require.NoError(t, s.ClearAll())

	var userCount int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}
