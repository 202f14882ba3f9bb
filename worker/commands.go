package worker

import (
	"fmt"

	"github.com/battlesnakeio/arena/rules"
	log "github.com/sirupsen/logrus"
)

// Connect registers a new human as a spectator under a generated name.
func (w *Worker) Connect(id string) {
	w.Enqueue(func(g *rules.Game) {
		p := rules.NewPlayer(id, w.Names.PlayerName(), w.Palette.Next(), false)
		p.Status = rules.StatusSpectating
		g.AddPlayer(p)
	})
}

// Disconnect removes a player and its stats.
func (w *Worker) Disconnect(id string) {
	w.Enqueue(func(g *rules.Game) {
		g.RemovePlayer(id)
		w.Stats.Remove(id)
	})
}

// Join puts a spectator on the board.
func (w *Worker) Join(id string) {
	w.Enqueue(func(g *rules.Game) { g.Play(id) })
}

// Spectate takes a player off the board.
func (w *Worker) Spectate(id string) {
	w.Enqueue(func(g *rules.Game) { g.Spectate(id) })
}

// ChangeDirection turns a player on the next tick.
func (w *Worker) ChangeDirection(id string, d rules.Direction) {
	w.Enqueue(func(g *rules.Game) { g.ChangeDirection(id, d) })
}

// ChangeName renames a player if the name is free.
func (w *Worker) ChangeName(id, name string) {
	w.Enqueue(func(g *rules.Game) {
		p, ok := g.Players().Player(id)
		if !ok || p.Name == name {
			return
		}
		if !w.Names.UsePlayerName(name) {
			log.WithFields(log.Fields{"PlayerID": id, "Name": name}).Debug("name taken")
			g.Notifier().BroadcastNotification(fmt.Sprintf("%s couldn't change name to %s.", p.Name, name), p.Color)
			return
		}
		old := p.Name
		w.Names.ReleaseName(old)
		p.Name = name
		g.Notifier().BroadcastNotification(fmt.Sprintf("%s is now known as %s.", old, name), p.Color)
	})
}

// ChangeColor recolors a player.
func (w *Worker) ChangeColor(id, color string) {
	w.Enqueue(func(g *rules.Game) {
		p, ok := g.Players().Player(id)
		if !ok {
			return
		}
		p.Color = color
		g.Notifier().BroadcastNotification(fmt.Sprintf("%s has changed colors to %s.", p.Name, color), color)
	})
}
