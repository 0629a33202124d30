package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

const (
	// writeWait bounds a single write to a peer.
	writeWait = 10 * time.Second

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsClient bridges one websocket connection and its hub subscription.
type wsClient struct {
	conn   *websocket.Conn
	sub    *hub.Subscription
	hub    *hub.Hub
	logger *zap.Logger

	pingInterval time.Duration
}

// ServeWS upgrades the connection, subscribes it to the hub, and pushes an
// initial snapshot of device statuses before live events start flowing.
func (rs *RestfulServer) ServeWS(c *gin.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySubscriber),
	)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader already replied to the client.
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:         conn,
		sub:          rs.Hub.Subscribe(),
		hub:          rs.Hub,
		logger:       logger,
		pingInterval: rs.pingInterval(),
	}

	if err := client.sendSnapshot(rs); err != nil {
		logger.Warn("Failed to send initial snapshot", zap.Error(err))
		rs.Hub.Unsubscribe(client.sub)
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *wsClient) sendSnapshot(rs *RestfulServer) error {
	devices, err := rs.Core.Device.ListDevices()
	if err != nil {
		return err
	}

	snapshots := common.Mapper(devices, func(d models.Device) hub.DeviceSnapshot {
		return hub.DeviceSnapshot{
			DeviceID: d.DeviceID,
			Status:   d.Status,
			LastSeen: d.LastSeen,
		}
	})

	payload, err := json.Marshal(hub.NewSnapshot(snapshots))
	if err != nil {
		return err
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// readPump consumes liveness signals. Any pong or message from the peer
// extends the deadline; silence for about twice the ping interval kills
// the connection and releases its subscription.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.sub)
		c.conn.Close()
	}()

	pongWait := 2 * c.pingInterval
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		// Clients may send text pings instead of protocol pings.
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump forwards the subscription queue to the peer and emits protocol
// pings on the liveness interval.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.sub.Events():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the subscription.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("WebSocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
