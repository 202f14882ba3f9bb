// Package worker runs the arena. It owns the game and is the only goroutine
// allowed to touch it: transports hand it commands which are applied at the
// start of the next tick.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/battlesnakeio/arena/registry"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	log "github.com/sirupsen/logrus"
)

// Command is a change to the game applied between two ticks.
type Command func(g *rules.Game)

// Deps are the pieces of the arena the worker drives.
type Deps struct {
	Game    *rules.Game
	Players *registry.Players
	Names   *registry.Names
	Stats   stats.Board
	Palette *rules.Palette
}

// Worker is the fixed rate tick loop.
type Worker struct {
	Deps
	// IdleInterval is how often an idle loop checks for commands when it is
	// not woken up.
	IdleInterval time.Duration

	commandsMu sync.Mutex
	pending    []Command
	wake       chan struct{}

	fps      int64
	snapshot atomic.Value
}

// New returns a worker running at the starting FPS of the game config.
func New(deps Deps) *Worker {
	w := &Worker{
		Deps:         deps,
		IdleInterval: time.Second,
		wake:         make(chan struct{}, 1),
	}
	w.SetFPS(deps.Game.Config().StartingFPS)
	w.snapshot.Store(deps.Game.State())
	return w
}

// Enqueue stages a command for the next tick.
func (w *Worker) Enqueue(c Command) {
	w.commandsMu.Lock()
	w.pending = append(w.pending, c)
	n := len(w.pending)
	w.commandsMu.Unlock()
	pendingCommands.Set(float64(n))

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// FPS returns the current tick rate.
func (w *Worker) FPS() int {
	return int(atomic.LoadInt64(&w.fps))
}

// SetFPS changes the tick rate from the next tick on. The rate is clamped to
// the configured bounds and the applied value is returned.
func (w *Worker) SetFPS(fps int) int {
	cfg := w.Game.Config()
	if fps < cfg.MinFPS {
		fps = cfg.MinFPS
	}
	if cfg.MaxFPS > 0 && fps > cfg.MaxFPS {
		fps = cfg.MaxFPS
	}
	if fps < 1 {
		fps = 1
	}
	atomic.StoreInt64(&w.fps, int64(fps))
	return fps
}

// Snapshot returns the state of the last tick. It is safe to call from any
// goroutine and must not be modified.
func (w *Worker) Snapshot() *rules.GameState {
	return w.snapshot.Load().(*rules.GameState)
}

// Step applies the pending commands and runs one tick.
func (w *Worker) Step() *rules.GameState {
	w.drain()
	return w.tick()
}

func (w *Worker) drain() {
	w.commandsMu.Lock()
	cmds := w.pending
	w.pending = nil
	w.commandsMu.Unlock()
	pendingCommands.Set(0)

	for _, c := range cmds {
		c(w.Game)
	}
	if len(cmds) > 0 {
		w.snapshot.Store(w.Game.State())
	}
}

func (w *Worker) tick() *rules.GameState {
	start := time.Now()
	state := w.Game.Tick()
	tickDuration.Observe(time.Since(start).Seconds())
	playersGauge.Set(float64(len(state.Players)))
	foodGauge.Set(float64(len(state.Food)))
	w.snapshot.Store(state)
	return state
}

// Run will run the loop until ctx is done. No ticks happen while no human is
// connected.
func (w *Worker) Run(ctx context.Context) error {
	log.WithField("FPS", w.FPS()).Info("arena loop started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		w.drain()

		if w.Players.NumberOfHumans() == 0 {
			select {
			case <-w.wake:
			case <-time.After(w.IdleInterval):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		state := w.tick()
		log.WithFields(log.Fields{
			"Turn":    state.Turn,
			"Players": len(state.Players),
		}).Debug("tick complete")

		turnDelay := time.Second / time.Duration(w.FPS())
		remainingDelay := turnDelay - time.Since(start)
		if remainingDelay > 0 {
			select {
			case <-time.After(remainingDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
