package rules

import (
	log "github.com/sirupsen/logrus"
)

// Tick runs the game one step and broadcasts the resulting state
func (g *Game) Tick() *GameState {
	g.turn++
	active := g.activePlayers()

	// 1. bots decide on the board as it was before anyone moves
	for _, p := range active {
		if p.IsBot {
			g.bots.Steer(p)
		}
	}
	pre := g.occupancy.Snapshot()

	// 2. wall collisions
	deaths := []Death{}
	moving := make([]*Player, 0, len(active))
	for _, p := range active {
		next, ok := p.NextHead()
		if !ok {
			continue
		}
		if g.occupancy.IsOutOfBounds(next) {
			log.WithFields(log.Fields{
				"Turn":     g.turn,
				"PlayerID": p.ID,
				"Head":     next,
			}).Debug("ran into wall")
			// The stale head must not take part in the head grouping below.
			g.occupancy.RemovePlayerOccupancy(p.ID)
			g.markForRespawn(p.ID)
			g.notifier.BroadcastRanIntoWall(p.Name, p.Color)
			g.notifier.NotifyPlayerDied(p.ID)
			deaths = append(deaths, Death{PlayerID: p.ID, Cause: DeathCauseWallCollision})
			continue
		}
		moving = append(moving, p)
	}

	// 3. move
	for _, p := range moving {
		p.Move()
		g.occupancy.AddPlayerOccupancy(p.ID, p.Segments)
	}

	// 4. classify against the bodies as they were before the move
	reports := g.occupancy.KillReports(pre)

	// 5. kills, suicides and head to head collisions
	deaths = append(deaths, g.handleKillReports(reports)...)

	// 6. dead bodies vanish
	for _, id := range g.players.PlayersMarkedForRespawn() {
		g.occupancy.RemovePlayerOccupancy(id)
		if p, ok := g.players.Player(id); ok {
			p.ClearSegments()
		}
	}

	// 7. food
	eaten := g.food.ConsumeAndRespawnFood(g.players)

	// 8. respawn
	g.respawnPlayers()

	// 9. broadcast
	state := g.State()
	state.Deaths = deaths
	log.WithFields(log.Fields{
		"Turn":    g.turn,
		"Players": len(active),
		"Deaths":  len(deaths),
		"Eaten":   eaten,
		"Food":    g.food.FoodAmount(),
	}).Debug("tick")
	g.notifier.BroadcastGameState(state)
	return state
}

func (g *Game) activePlayers() []*Player {
	active := []*Player{}
	for _, p := range g.players.Players() {
		if p.Status == StatusActive && len(p.Segments) > 0 {
			active = append(active, p)
		}
	}
	return active
}

func (g *Game) markForRespawn(id string) {
	g.players.AddPlayerIDToRespawn(id)
	g.stats.AddDeath(id)
}
