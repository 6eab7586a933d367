package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/latable-app/reservation-backend/events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StaffEventsHandler ouvre le flux websocket des événements de réservation.
// La route est derrière WebSocketAuthMiddleware + RequireRole("serveur").
func StaffEventsHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws)
	defer events.UnregisterClient(ws)

	// Le flux est unidirectionnel ; la boucle de lecture ne sert qu'à
	// détecter la déconnexion.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
