package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Wednesday 2 January 2030, noon.
var testClock = utils.FixedClock{At: time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)}

const tomorrow = "2030-01-03"

type fixture struct {
	db           *gorm.DB
	reservations *ReservationService
	tables       *TableService
	cache        *recordingCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	engine := NewAssignmentEngine(db)
	cache := &recordingCache{}
	return &fixture{
		db:           db,
		reservations: NewReservationService(db, testClock, engine),
		tables:       NewTableService(db, engine, cache),
		cache:        cache,
	}
}

func reservationRequest(date, at string, people int) *validators.ReservationRequest {
	return &validators.ReservationRequest{Data: &validators.ReservationPayload{
		FirstName:       "Rick",
		LastName:        "Sanchez",
		MobileNumber:    "202-555-0164",
		ReservationDate: date,
		ReservationTime: at,
		People:          float64(people),
	}}
}

func (f *fixture) book(t *testing.T, date, at string, people int) *models.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), reservationRequest(date, at, people))
	require.NoError(t, err)
	return r
}

func tableRequest(name string, capacity int) *validators.TableRequest {
	return &validators.TableRequest{
		Data: &validators.TablePayload{TableName: name, Capacity: float64(capacity)},
	}
}

func (f *fixture) table(t *testing.T, name string, capacity int) *models.Table {
	t.Helper()
	table, err := f.tables.Create(context.Background(), tableRequest(name, capacity))
	require.NoError(t, err)
	return table
}

func seatRequest(id uint) *validators.SeatRequest {
	return &validators.SeatRequest{Data: &validators.SeatPayload{ReservationID: float64(id)}}
}

func statusRequest(status string) *validators.StatusRequest {
	return &validators.StatusRequest{Data: &validators.StatusPayload{Status: status}}
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.Status)
	require.Equal(t, message, appErr.Message)
}

type recordingCache struct {
	tables      []models.Table
	cached      bool
	hits        int
	invalidated int
}

func (c *recordingCache) Get(context.Context) ([]models.Table, bool) {
	if c.cached {
		c.hits++
	}
	return c.tables, c.cached
}

func (c *recordingCache) Set(_ context.Context, tables []models.Table) {
	c.tables = tables
	c.cached = true
}

func (c *recordingCache) Invalidate(context.Context) {
	c.tables = nil
	c.cached = false
	c.invalidated++
}
