package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Wednesday 2 January 2030, noon.
var testClock = utils.FixedClock{At: time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)}

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *utils.TokenIssuer
}

// setupTestApp wires the full router on an in-memory SQLite database.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	engine := services.NewAssignmentEngine(db)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	r := router.SetupRouter(router.Deps{
		DB:           db,
		Reservations: services.NewReservationService(db, testClock, engine),
		Tables:       services.NewTableService(db, engine, services.NopTableCache{}),
		Hub:          floor.NewHub(),
		Tokens:       tokens,
		CORSOrigin:   "*",
	})

	return &testApp{db: db, router: r, tokens: tokens}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) bearer(t *testing.T, userID uint, role string) []string {
	t.Helper()
	token, err := a.tokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, dst), w.Body.String())
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func reservationBody(date, at string, people interface{}) gin.H {
	return gin.H{"data": gin.H{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"reservation_date": date,
		"reservation_time": at,
		"people":           people,
	}}
}
