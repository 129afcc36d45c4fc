package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Reservation{}))
	assert.True(t, db.Migrator().HasTable(&models.Table{}))
	assert.True(t, db.Migrator().HasTable(&models.ReservationEvent{}))
	assert.True(t, db.Migrator().HasIndex(&models.Table{}, occupantIndex))
}

func TestOccupantIndexRejectsDoubleSeating(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	rid := uint(7)
	require.NoError(t, db.Create(&models.Table{TableName: "A1", Capacity: 2, ReservationID: &rid}).Error)
	assert.Error(t, db.Create(&models.Table{TableName: "A2", Capacity: 2, ReservationID: &rid}).Error)

	// unoccupied tables do not collide
	require.NoError(t, db.Create(&models.Table{TableName: "B1", Capacity: 4}).Error)
	require.NoError(t, db.Create(&models.Table{TableName: "B2", Capacity: 4}).Error)
}

func TestSeedAdmin(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedAdmin(db, "admin@example.com", "secret123"))
	require.NoError(t, SeedAdmin(db, "admin@example.com", "other"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret123")))

	assert.NoError(t, SeedAdmin(db, "", ""))
}

func TestSeedAdminNormalizesEmail(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedAdmin(db, " Admin@Example.com ", "secret123"))
	require.NoError(t, SeedAdmin(db, "admin@example.com", "secret123"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
}
