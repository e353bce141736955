package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

const writeWait = 5 * time.Second

// Client is one live connection subscribed to a topic
type Client struct {
	UserID string
	Topic  string

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (cl *Client) write(msg models.WSMessage) error {
	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()

	if err := cl.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return cl.conn.WriteJSON(msg)
}

// Manager manages WebSocket connections grouped by topic
type Manager struct {
	sync.RWMutex
	clients  map[string]map[*Client]struct{}
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and keeps the client subscribed to
// topic until the peer disconnects. Authentication happens before this,
// in the route's middleware.
func (m *Manager) HandleConnection(c echo.Context, topic, userID string) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed",
			logger.String("topic", topic),
			logger.Err(err))
		return nil
	}
	defer ws.Close()

	client := &Client{UserID: userID, Topic: topic, conn: ws}
	m.AddClient(client)
	defer m.RemoveClient(client)

	logger.Info("WebSocket client connected",
		logger.String("topic", topic),
		logger.String("user_id", userID))

	// Clients only listen; reading keeps control frames flowing and
	// notices the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket connection closed unexpectedly",
					logger.String("topic", topic),
					logger.String("user_id", userID),
					logger.Err(err))
			}
			break
		}
	}

	logger.Info("WebSocket client disconnected",
		logger.String("topic", topic),
		logger.String("user_id", userID))
	return nil
}

// AddClient safely adds a client to its topic
func (m *Manager) AddClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	subs, ok := m.clients[client.Topic]
	if !ok {
		subs = make(map[*Client]struct{})
		m.clients[client.Topic] = subs
	}
	subs[client] = struct{}{}
}

// RemoveClient safely removes a client from its topic
func (m *Manager) RemoveClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	subs, ok := m.clients[client.Topic]
	if !ok {
		return
	}
	delete(subs, client)
	if len(subs) == 0 {
		delete(m.clients, client.Topic)
	}
}

// Subscribers returns how many clients listen on topic
func (m *Manager) Subscribers(topic string) int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients[topic])
}

// Broadcast sends event to every client on topic and returns how many
// received it. Clients that fail a write are dropped.
func (m *Manager) Broadcast(topic, event string, data interface{}) (int, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("error marshaling message data: %w", err)
	}
	msg := models.WSMessage{Event: event, Data: rawData}

	m.RLock()
	targets := make([]*Client, 0, len(m.clients[topic]))
	for client := range m.clients[topic] {
		targets = append(targets, client)
	}
	m.RUnlock()

	sent := 0
	for _, client := range targets {
		if err := client.write(msg); err != nil {
			logger.Warn("Error sending message to client",
				logger.String("topic", topic),
				logger.String("user_id", client.UserID),
				logger.Err(err))
			m.RemoveClient(client)
			_ = client.conn.Close()
			continue
		}
		sent++
	}
	return sent, nil
}

// Close disconnects every client
func (m *Manager) Close() {
	m.Lock()
	all := m.clients
	m.clients = make(map[string]map[*Client]struct{})
	m.Unlock()

	for _, subs := range all {
		for client := range subs {
			client.writeMu.Lock()
			_ = client.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			client.writeMu.Unlock()
			_ = client.conn.Close()
		}
	}
}
