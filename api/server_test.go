package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battlesnakeio/arena/notify"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestState(t *testing.T) {
	f := newFixture()

	req, _ := http.NewRequest("GET", "/state", nil)
	rr := httptest.NewRecorder()
	f.server.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	state := rules.GameState{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	require.Equal(t, 30, state.Width)
}

func TestStateMsgpack(t *testing.T) {
	f := newFixture()

	req, _ := http.NewRequest("GET", "/state?encoding=msgpack", nil)
	rr := httptest.NewRecorder()
	f.server.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/msgpack", rr.Header().Get("Content-Type"))

	state := rules.GameState{}
	require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &state))
	require.Equal(t, 30, state.Height)
}

func TestLeaderboard(t *testing.T) {
	f := newFixture()
	f.board.IncreaseScore("a")
	f.board.IncreaseScore("b")
	f.board.IncreaseScore("b")

	req, _ := http.NewRequest("GET", "/leaderboard?n=1", nil)
	rr := httptest.NewRecorder()
	f.server.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	entries := []stats.Entry{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "b", entries[0].PlayerID)
	require.Equal(t, 2, entries[0].Score)
}

func TestLeaderboardBadLimit(t *testing.T) {
	f := newFixture()

	req, _ := http.NewRequest("GET", "/leaderboard?n=zero", nil)
	rr := httptest.NewRecorder()
	f.server.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVersion(t *testing.T) {
	f := newFixture()

	req, _ := http.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()
	f.server.hs.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"version":"dev"`)
}

func TestHandleCommands(t *testing.T) {
	f := newFixture()
	f.worker.Connect("a")
	f.worker.Step()
	c := f.client("a")

	require.NoError(t, c.handle(ClientMessage{Type: "name", Name: " Bob "}))
	require.NoError(t, c.handle(ClientMessage{Type: "color", Color: "#123456"}))
	require.NoError(t, c.handle(ClientMessage{Type: "join"}))
	state := f.worker.Step()

	p, ok := state.Player("a")
	require.True(t, ok)
	require.Equal(t, "Bob", p.Name)
	require.Equal(t, "#123456", p.Color)
	require.Equal(t, rules.StatusActive, p.Status)

	require.NoError(t, c.handle(ClientMessage{Type: "spectate"}))
	p, _ = f.worker.Step().Player("a")
	require.Equal(t, rules.StatusSpectating, p.Status)
}

func TestHandleRejects(t *testing.T) {
	f := newFixture()
	c := f.client("a")

	require.Error(t, c.handle(ClientMessage{Type: "direction", Direction: "sideways"}))
	require.Error(t, c.handle(ClientMessage{Type: "name", Name: "<b>bold</b>"}))
	require.Error(t, c.handle(ClientMessage{Type: "color", Color: "red"}))
	require.Error(t, c.handle(ClientMessage{Type: "admin", Setting: "bots", Change: "double"}))
	require.Error(t, c.handle(ClientMessage{Type: "admin", Setting: "lasers", Change: "increase"}))
	require.Error(t, c.handle(ClientMessage{Type: "dance"}))
}

func TestHandleAdmin(t *testing.T) {
	f := newFixture()
	c := f.client("a")

	require.NoError(t, c.handle(ClientMessage{Type: "admin", Setting: SettingBots, Change: "increase"}))
	require.NoError(t, c.handle(ClientMessage{Type: "admin", Setting: SettingSpeed, Change: "decrease"}))
	f.worker.Step()

	require.Len(t, f.players.Bots(), 1)
	require.Equal(t, 99, f.worker.FPS())
}

// readUntil reads frames until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) json.RawMessage {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg.Payload
		}
	}
}

func TestSocket(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.worker.Run(ctx)

	ts := httptest.NewServer(f.server.hs.Handler)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	welcome := Welcome{}
	require.NoError(t, json.Unmarshal(readUntil(t, conn, TypeWelcome), &welcome))
	require.NotEmpty(t, welcome.ID)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "join"}))
	for {
		state := rules.GameState{}
		require.NoError(t, json.Unmarshal(readUntil(t, conn, notify.TypeState), &state))
		if p, ok := state.Player(welcome.ID); ok && p.Status == rules.StatusActive {
			break
		}
	}

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "name", Name: "<script>"}))
	rejection := notify.Notification{}
	require.NoError(t, json.Unmarshal(readUntil(t, conn, TypeError), &rejection))
	require.Contains(t, rejection.Text, "invalid name")
}
