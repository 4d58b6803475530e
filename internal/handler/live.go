package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"storecounter/internal/logger"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveHub keeps the set of live viewers.
type LiveHub interface {
	Register(client *websocket.Conn) bool
	Unregister(client *websocket.Conn)
	PongWait() time.Duration
}

// LiveWebsocketHandler upgrades the request and keeps the viewer subscribed
// to new records until it disconnects.
func LiveWebsocketHandler(hub LiveHub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		pongWait := hub.PongWait()
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		if !hub.Register(connection) {
			connection.Close()
			return
		}
		defer hub.Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				logger.Info("Live viewer left: %v", err)
				return
			}
		}
	}
}
