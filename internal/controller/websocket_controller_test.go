package controller

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/artem-pershin/checkers/internal/ws"
	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })
	return ln.Addr().String()
}

func dial(t *testing.T, addr, gameID, playerID string) *fastws.Conn {
	t.Helper()
	url := fmt.Sprintf("ws://%s/ws/game/%s?playerId=%s", addr, gameID, playerID)
	conn, _, err := fastws.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips messages until one of type want arrives.
func readUntil(t *testing.T, conn *fastws.Conn, want ws.MessageType) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want {
			return msg
		}
	}
}

func TestWebSocketSession(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)
	addr := listen(t, app)

	conn := dial(t, addr, gameID, "alice")

	msg := readUntil(t, conn, ws.MessageTypeGameState)
	var state model.GameState
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	require.Equal(t, model.PlayerColorWhite, state.ToMove)

	require.NoError(t, conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeSelect,
		Payload: json.RawMessage(`{"x":2,"y":5}`),
	}))
	msg = readUntil(t, conn, ws.MessageTypeLegalMoves)
	var moves []model.Position
	require.NoError(t, json.Unmarshal(msg.Payload, &moves))
	require.ElementsMatch(t, []model.Position{{X: 1, Y: 4}, {X: 3, Y: 4}}, moves)

	require.NoError(t, conn.WriteJSON(ws.Message{Type: "resign"}))
	msg = readUntil(t, conn, ws.MessageTypeError)
	require.Contains(t, string(msg.Payload), "unknown message type")
}

func TestWebSocketRejectsSecondConnection(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)
	addr := listen(t, app)

	first := dial(t, addr, gameID, "alice")
	readUntil(t, first, ws.MessageTypeGameState)

	second := dial(t, addr, gameID, "alice")
	require.NoError(t, second.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := second.ReadMessage()
	var closeErr *fastws.CloseError
	require.ErrorAs(t, err, &closeErr)
	require.Equal(t, fastws.CloseNormalClosure, closeErr.Code)
	require.Equal(t, "Connection already exists", closeErr.Text)

	// the first connection keeps working
	require.NoError(t, first.WriteJSON(ws.Message{
		Type:    ws.MessageTypeSelect,
		Payload: json.RawMessage(`{"x":2,"y":5}`),
	}))
	readUntil(t, first, ws.MessageTypeLegalMoves)
}

func TestWebSocketMalformedGameID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ws/game/not-a-game?playerId=alice", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
