package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.GET("/live/:topic", func(c echo.Context) error {
		return m.HandleConnection(c, c.Param("topic"), "guardian-1")
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, topic string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live/" + topic
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestManager_BroadcastReachesTopicSubscribers(t *testing.T) {
	m := NewManager()
	srv := newTestServer(t, m)

	child1 := dial(t, srv, "child-1")
	child2 := dial(t, srv, "child-2")

	require.Eventually(t, func() bool {
		return m.Subscribers("child-1") == 1 && m.Subscribers("child-2") == 1
	}, time.Second, 10*time.Millisecond)

	sample := models.LocationSample{Latitude: -6.2, Longitude: 106.8, TimestampMs: 1000}
	sent, err := m.Broadcast("child-1", "location.sample", sample)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.NoError(t, child1.SetReadDeadline(time.Now().Add(time.Second)))
	var msg models.WSMessage
	require.NoError(t, child1.ReadJSON(&msg))
	assert.Equal(t, "location.sample", msg.Event)

	var got models.LocationSample
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, sample, got)

	// child-2 is on another topic and must see nothing
	require.NoError(t, child2.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = child2.ReadMessage()
	assert.Error(t, err)
}

func TestManager_DisconnectRemovesClient(t *testing.T) {
	m := NewManager()
	srv := newTestServer(t, m)

	conn := dial(t, srv, "child-1")
	require.Eventually(t, func() bool { return m.Subscribers("child-1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	require.Eventually(t, func() bool { return m.Subscribers("child-1") == 0 }, time.Second, 10*time.Millisecond)

	sent, err := m.Broadcast("child-1", "location.sample", struct{}{})
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestManager_BroadcastRejectsUnmarshalableData(t *testing.T) {
	m := NewManager()

	_, err := m.Broadcast("child-1", "location.sample", make(chan int))
	assert.Error(t, err)
}

func TestManager_Close(t *testing.T) {
	m := NewManager()
	srv := newTestServer(t, m)

	conn := dial(t, srv, "child-1")
	require.Eventually(t, func() bool { return m.Subscribers("child-1") == 1 }, time.Second, 10*time.Millisecond)

	m.Close()
	assert.Zero(t, m.Subscribers("child-1"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
