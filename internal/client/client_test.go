package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dice-party/internal/protocol"
)

var upgrader = websocket.Upgrader{}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		// simple echo
		_ = c.WriteMessage(mt, message)
	}
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func TestClient_ConnectAndSend(t *testing.T) {
	// Start a mock WS server that echoes messages
	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()

	time.Sleep(100 * time.Millisecond)
	assert.True(t, client.IsConnected())

	msg := protocol.MustNewMessage(protocol.MsgRollDice, nil)
	require.NoError(t, client.SendMessage(msg))

	// The echo server bounces the encoded message straight back
	receivedMsg, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgRollDice, receivedMsg.Type)
}

func TestClient_CapturesConnectionID(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		msg := protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{ConnectionID: "conn-42"})
		data, _ := msg.Encode()
		_ = c.WriteMessage(websocket.TextMessage, data)
		// Keep the connection open until the client hangs up
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()

	received, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgConnected, received.Type)
	assert.Equal(t, "conn-42", client.ConnectionID)
}

func TestClient_CapturesSessionFromRoomUpdate(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		msg := protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
			Room:      protocol.RoomInfo{ID: "r1", Code: "ABCDEF"},
			SessionID: "sess-1",
		})
		data, _ := msg.Encode()
		_ = c.WriteMessage(websocket.TextMessage, data)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()

	_, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", client.SessionID)
}

func TestClient_SendAfterClose(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	client.Close()

	err := client.SendMessage(protocol.MustNewMessage(protocol.MsgRollDice, nil))
	assert.Error(t, err)
}

func TestClient_ReconnectWithoutSession(t *testing.T) {
	client := NewClient("ws://127.0.0.1:0")
	err := client.Reconnect()
	assert.ErrorIs(t, err, errNoSession)
}

func TestClient_SessionExpiredStopsReconnecting(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		data, _ := protocol.NewErrorMessage(protocol.ErrCodeSessionExpired).Encode()
		_ = c.WriteMessage(websocket.TextMessage, data)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
	defer s.Close()

	client := NewClient(wsURL(s))
	client.SessionID = "sess-stale"
	client.reconnecting.Store(true)
	require.NoError(t, client.Connect())
	defer client.Close()

	// The server refusing the stale session ends the reconnect attempt
	received, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgError, received.Type)
	assert.False(t, client.IsReconnecting())
	assert.Empty(t, client.SessionID)
}
