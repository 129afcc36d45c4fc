package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
)

func TestFloorFeedRequiresToken(t *testing.T) {
	app := setupTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/floor"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := app.tokens.GenerateToken(1, models.RoleHost)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	conn.Close()
}
