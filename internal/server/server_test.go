package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dice-party/internal/config"
	"github.com/palemoky/dice-party/internal/protocol"
)

// newTestServer spins up a server against miniredis.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.Server.MaxConnections = 2

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.redis.Close() })
	return s
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_WebSocketHandshake(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	conn := dialWS(t, ts)

	// First frame is the connected notice with our connection ID
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	msg, err := protocol.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgConnected, msg.Type)

	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.ConnectionID)
	assert.NotNil(t, s.GetClientByID(payload.ConnectionID))
}

func TestServer_MaintenanceModeRejectsConnections(t *testing.T) {
	s := newTestServer(t)
	s.SetMaintenanceMode(true)

	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_ConnectionLimit(t *testing.T) {
	s := newTestServer(t) // MaxConnections = 2
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	dialWS(t, ts)
	dialWS(t, ts)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_HealthAndStats(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	s.handleStats(rec, httptest.NewRequest("GET", "/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"online":0`)
}

func TestServer_RoundTripCreateRoom(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	conn := dialWS(t, ts)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// Skip the connected frame
	_, _, err := conn.ReadMessage()
	require.NoError(t, err)

	req, err := protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		PlayerName: "Alice",
	}).Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, req))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.Decode(data)
	require.NoError(t, err)
	require.Equal(t, protocol.MsgRoomUpdated, msg.Type)

	payload, err := protocol.ParsePayload[protocol.RoomUpdatedPayload](msg)
	require.NoError(t, err)
	assert.Len(t, payload.Room.Code, 6)
	assert.NotEmpty(t, payload.SessionID)
	require.Len(t, payload.Room.Players, 1)
	assert.Equal(t, "Alice", payload.Room.Players[0].Name)
}
