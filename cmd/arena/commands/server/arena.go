package server

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/arena/admin"
	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/notify"
	"github.com/battlesnakeio/arena/registry"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/battlesnakeio/arena/worker"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// run wires the arena together and serves it until SIGINT or SIGTERM.
func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case s := <-sig:
			log.WithField("signal", s.String()).Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	cfg := config.Rules()

	group, ctx := errgroup.WithContext(ctx)

	board := stats.InstrumentBoard(stats.InMemBoard())
	if redisURL != "" {
		client, err := stats.Dial(redisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		mirror := stats.NewMirror(board, client, config.StatQueue)
		board = mirror
		group.Go(func() error { return mirror.Run(ctx) })
		log.WithField("redis", redisURL).Info("mirroring stats to redis")
	}

	hub := api.NewHub(config.ClientBuffer)
	players := registry.NewPlayers(rng)
	names := registry.NewNames(rng)
	palette := rules.NewPalette()
	game := rules.NewGame(cfg, players, board, notify.NewDispatcher(hub), names, rng)

	w := worker.New(worker.Deps{
		Game:    game,
		Players: players,
		Names:   names,
		Stats:   board,
		Palette: palette,
	})
	adm := admin.New(game, players, names, board, palette, w)

	game.Reset()
	bots := cfg.DefaultBots
	if initialBots >= 0 {
		bots = initialBots
	}
	for i := 0; i < bots && i < cfg.MaxBots; i++ {
		adm.AddBot()
	}

	log.WithFields(log.Fields{
		"Width":  cfg.Width,
		"Height": cfg.Height,
		"Bots":   bots,
		"Seed":   seed,
	}).Info("arena created")

	srv := api.New(apiListen, hub, w, adm, board)
	group.Go(func() error {
		err := w.Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})
	group.Go(srv.ListenAndServe)
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Duration(shutdownWait)*time.Second)
		defer done()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
