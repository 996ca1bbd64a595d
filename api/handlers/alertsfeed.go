package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards connect cross-origin from the clinic frontend
	},
}

// AlertHub fans every emitted monitoring alert out to connected dashboard
// sockets. It satisfies pipeline.AlertFeed; Publish never blocks the intake
// path on a slow client, a failed write just drops that connection.
type AlertHub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

// NewAlertHub creates an empty hub
func NewAlertHub() *AlertHub {
	return &AlertHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleAlertsWebSocket upgrades the connection and registers it for live
// alert delivery
func (h *AlertHub) HandleAlertsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorf("WebSocket upgrade error: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	zap.S().Debugf("dashboard connected to /ws/alerts, %d clients", h.clientCount())

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, conn)
		h.mutex.Unlock()
		return nil
	})

	// Keep connection alive; inbound frames are discarded
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// Publish broadcasts an alert to all connected dashboards
func (h *AlertHub) Publish(alert models.Alert) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "new_alert",
			"data":  alert,
		})
		if err != nil {
			zap.S().Warnf("error broadcasting alert, dropping client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *AlertHub) clientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}
