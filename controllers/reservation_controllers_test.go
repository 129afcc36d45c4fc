package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
)

func createReservation(t *testing.T, app *testApp, date, at string, people int) models.Reservation {
	t.Helper()
	w := app.do(t, http.MethodPost, "/reservations", reservationBody(date, at, people))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var r models.Reservation
	decodeData(t, w, &r)
	return r
}

func TestCreateReservation(t *testing.T) {
	app := setupTestApp(t)

	r := createReservation(t, app, "2030-01-03", "18:00", 2)

	assert.NotZero(t, r.ReservationID)
	assert.Equal(t, models.StatusBooked, r.Status)
	assert.Equal(t, "2030-01-03", r.ReservationDate)
	assert.Equal(t, "18:00", r.ReservationTime)
	assert.Equal(t, 2, r.People)
}

func TestCreateReservationValidation(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"empty body", nil, "body must have data property"},
		{"invalid json", "{not json", "body must have data property"},
		{"no data", gin.H{"first_name": "Rick"}, "body must have data property"},
		{"tuesday", reservationBody("2030-01-08", "18:00", 2), "Restaurant is closed on Tuesdays. Please choose a different day."},
		{"past", reservationBody("2029-12-31", "18:00", 2), "Reservation must be for a future date."},
		{"too late", reservationBody("2030-01-03", "21:45", 2), "Reservations must be between 10:30 AM and 9:30 PM"},
		{"people string", reservationBody("2030-01-03", "18:00", "2"), "A valid number of 'people' is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/reservations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w).Message)
		})
	}
}

func TestListReservations(t *testing.T) {
	app := setupTestApp(t)
	late := createReservation(t, app, "2030-01-03", "20:00", 2)
	early := createReservation(t, app, "2030-01-03", "11:15", 2)
	createReservation(t, app, "2030-01-04", "12:00", 2)

	w := app.do(t, http.MethodGet, "/reservations?date=2030-01-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day []models.Reservation
	decodeData(t, w, &day)
	require.Len(t, day, 2)
	assert.Equal(t, early.ReservationID, day[0].ReservationID)
	assert.Equal(t, late.ReservationID, day[1].ReservationID)

	w = app.do(t, http.MethodGet, "/reservations?mobile_number=555-0164", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []models.Reservation
	decodeData(t, w, &found)
	assert.Len(t, found, 3)

	w = app.do(t, http.MethodGet, "/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var upcoming []models.Reservation
	decodeData(t, w, &upcoming)
	assert.Len(t, upcoming, 3)

	w = app.do(t, http.MethodGet, "/reservations?date=2030-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReservation(t *testing.T) {
	app := setupTestApp(t)
	r := createReservation(t, app, "2030-01-03", "18:00", 2)

	w := app.do(t, http.MethodGet, fmt.Sprintf("/reservations/%d", r.ReservationID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	decodeData(t, w, &got)
	assert.Equal(t, r.ReservationID, got.ReservationID)

	w = app.do(t, http.MethodGet, "/reservations/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation ID 999 does not exist.", decodeError(t, w).Message)

	w = app.do(t, http.MethodGet, "/reservations/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservation(t *testing.T) {
	app := setupTestApp(t)
	r := createReservation(t, app, "2030-01-03", "18:00", 2)

	body := reservationBody("2030-01-04", "19:00", 5)
	body["data"].(gin.H)["status"] = "finished"

	w := app.do(t, http.MethodPut, fmt.Sprintf("/reservations/%d", r.ReservationID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Reservation
	decodeData(t, w, &updated)
	assert.Equal(t, "2030-01-04", updated.ReservationDate)
	assert.Equal(t, 5, updated.People)
	assert.Equal(t, models.StatusBooked, updated.Status)

	w = app.do(t, http.MethodPut, "/reservations/999", reservationBody("2030-01-04", "19:00", 5))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationStatus(t *testing.T) {
	app := setupTestApp(t)
	r := createReservation(t, app, "2030-01-03", "18:00", 2)
	path := fmt.Sprintf("/reservations/%d/status", r.ReservationID)

	w := app.do(t, http.MethodPut, path, gin.H{"data": gin.H{"status": "unknown"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Status unknown is invalid", decodeError(t, w).Message)

	w = app.do(t, http.MethodPut, path, gin.H{"data": gin.H{"status": "cancelled"}})
	require.Equal(t, http.StatusOK, w.Code)
	var cancelled models.Reservation
	decodeData(t, w, &cancelled)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	w = app.do(t, http.MethodPut, path, gin.H{"data": gin.H{"status": "booked"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This reservation is already cancelled", decodeError(t, w).Message)

	// cancelled reservations drop off the day list
	w = app.do(t, http.MethodGet, "/reservations?date=2030-01-03", nil)
	var day []models.Reservation
	decodeData(t, w, &day)
	assert.Empty(t, day)
}
