package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	s := New("", engine.DefaultRules(), 42, log.New(io.Discard))
	go s.run()
	t.Cleanup(func() { _ = s.Stop() })

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) protocol.State {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg protocol.State
	require.NoError(t, json.Unmarshal(data, &msg))
	require.Equal(t, protocol.TypeState, msg.Type)
	return msg
}

func TestConnectReceivesOpeningSnapshot(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	msg := readState(t, conn)
	require.NotNil(t, msg.State)
	assert.Equal(t, 1, msg.State.Week)
	assert.Equal(t, 1, msg.State.Day)
	assert.Len(t, msg.State.Customers, 7)
}

func TestCommandRoundTrip(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	opening := readState(t, conn)
	gameID := opening.State.Games[0].ID

	cmd := protocol.Command{Type: protocol.TypeCommand, Action: "set_line", GameID: gameID, Line: 6.5}
	require.NoError(t, conn.WriteJSON(cmd))

	next := readState(t, conn)
	assert.Equal(t, 6.5, next.State.Game(gameID).YourLine)
}

func TestMalformedFrameGetsError(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)
	readState(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("junk")))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg protocol.Error
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, protocol.TypeError, msg.Type)

	// The connection survives and keeps serving.
	cmd := protocol.Command{Type: protocol.TypeCommand, Action: "end_day"}
	require.NoError(t, conn.WriteJSON(cmd))
	next := readState(t, conn)
	assert.Equal(t, 2, next.State.Day)
}

func TestUnknownActionGetsError(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)
	readState(t, conn)

	cmd := protocol.Command{Type: protocol.TypeCommand, Action: "warp_time"}
	require.NoError(t, conn.WriteJSON(cmd))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg protocol.Error
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, protocol.TypeError, msg.Type)
	assert.Contains(t, msg.Message, "warp_time")
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	s := New("", engine.DefaultRules(), 1, log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
