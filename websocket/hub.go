package websocket

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jkimani5/fundi_connect/models"
	"github.com/jkimani5/fundi_connect/utils"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Push = make(chan *models.Notification, 64)

// Notify hands a stored notification to the hub for best-effort delivery.
// Delivery is fire-and-forget: a full queue or an offline user drops the
// push, the notification row remains the source of truth.
func Notify(n *models.Notification) {
	if n == nil {
		return
	}
	select {
	case Push <- n:
	default:
		utils.GetLogger().Warn("notification push queue full, dropping push",
			zap.String("user_id", n.UserID.String()))
	}
}

func RunHub() {
	logger := utils.GetLogger()
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
			logger.Debug("websocket client registered", zap.String("user_id", client.UserID.String()))
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			logger.Debug("websocket client unregistered", zap.String("user_id", client.UserID.String()))
		case n := <-Push:
			clientsMu.RLock()
			conn, ok := clients[n.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(n); err != nil {
				logger.Warn("failed to push notification",
					zap.String("user_id", n.UserID.String()), zap.Error(err))
				conn.Close()
				clientsMu.Lock()
				if cur, exists := clients[n.UserID]; exists && cur == conn {
					delete(clients, n.UserID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
