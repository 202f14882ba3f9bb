// Package e2e drives a running arena over its public endpoints.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) get(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}

func (c *client) state() (*rules.GameState, error) {
	st := &rules.GameState{}
	return st, c.get("/state", st)
}

func (c *client) leaderboard(n int) ([]stats.Entry, error) {
	entries := []stats.Entry{}
	return entries, c.get(fmt.Sprintf("/leaderboard?n=%d", n), &entries)
}

// player is one websocket connection to the arena.
type player struct {
	id   string
	conn *websocket.Conn
}

func (c *client) connect() (*player, error) {
	url := "ws" + strings.TrimPrefix(c.apiURL, "http") + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dial failed")
	}

	p := &player{conn: conn}
	for {
		msg, err := p.read()
		if err != nil {
			conn.Close()
			return nil, err
		}
		if msg.Type != api.TypeWelcome {
			continue
		}
		welcome := api.Welcome{}
		if err := json.Unmarshal(msg.Payload, &welcome); err != nil {
			conn.Close()
			return nil, err
		}
		p.id = welcome.ID
		return p, nil
	}
}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (p *player) read() (frame, error) {
	msg := frame{}
	p.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	err := p.conn.ReadJSON(&msg)
	return msg, err
}

func (p *player) send(msg api.ClientMessage) error {
	return p.conn.WriteJSON(msg)
}

// drain discards the frames the arena pushes so the connection stays alive.
func (p *player) drain() {
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (p *player) close() error {
	return p.conn.Close()
}
