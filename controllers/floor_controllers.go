package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type FloorController struct {
	Hub      *floor.Hub
	upgrader websocket.Upgrader
}

// NewFloorController accepts websocket upgrades from allowedOrigin, or from
// any origin when it is "*".
func NewFloorController(hub *floor.Hub, allowedOrigin string) *FloorController {
	return &FloorController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// FloorFeed -> GET /ws/floor, streams reservation and table events
func (fc *FloorController) FloorFeed(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	fc.Hub.Register(ws, role)
	utils.InfoLogger.Printf("Floor screen connected (role=%s)", role)

	// clients only listen; reading detects the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	fc.Hub.Unregister(ws)
}
