package api

import (
	"math/rand"
	"time"

	"github.com/battlesnakeio/arena/admin"
	"github.com/battlesnakeio/arena/notify"
	"github.com/battlesnakeio/arena/registry"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/battlesnakeio/arena/worker"
)

type fixture struct {
	server  *Server
	worker  *worker.Worker
	players *registry.Players
	board   stats.Board
	hub     *Hub
}

func newFixture() *fixture {
	cfg := rules.DefaultConfig()
	cfg.Width = 30
	cfg.Height = 30
	cfg.DefaultFood = 3
	cfg.DefaultBots = 0
	cfg.MaxFPS = 100
	cfg.StartingFPS = 100

	rng := rand.New(rand.NewSource(7))
	hub := NewHub(256)
	players := registry.NewPlayers(rng)
	names := registry.NewNames(rng)
	board := stats.InMemBoard()
	palette := rules.NewPalette()
	game := rules.NewGame(cfg, players, board, notify.NewDispatcher(hub), names, rng)
	game.Reset()

	w := worker.New(worker.Deps{
		Game:    game,
		Players: players,
		Names:   names,
		Stats:   board,
		Palette: palette,
	})
	w.IdleInterval = 10 * time.Millisecond
	adm := admin.New(game, players, names, board, palette, w)

	return &fixture{
		server:  New(":0", hub, w, adm, board),
		worker:  w,
		players: players,
		board:   board,
		hub:     hub,
	}
}

func (f *fixture) client(id string) *client {
	return &client{
		id:      id,
		server:  f.server,
		codec:   JSON,
		limiter: newLimiter(),
	}
}
