package rules

import (
	log "github.com/sirupsen/logrus"
)

// handleKillReports applies the outcome of every collision of the tick and
// marks the victims for respawn.
func (g *Game) handleKillReports(reports []KillReport) []Death {
	deaths := []Death{}
	for _, report := range reports {
		switch r := report.(type) {
		case SingleKill:
			if d, ok := g.handleSingleKill(r); ok {
				deaths = append(deaths, d)
			}
		case MutualKill:
			deaths = append(deaths, g.handleMutualKill(r)...)
		default:
			log.WithField("Report", report).Warn("unknown kill report")
		}
	}
	return deaths
}

func (g *Game) handleSingleKill(r SingleKill) (Death, bool) {
	victim, ok := g.players.Player(r.VictimID)
	if !ok {
		return Death{}, false
	}
	fields := log.Fields{
		"Turn":     g.turn,
		"VictimID": victim.ID,
		"KillerID": r.KillerID,
	}

	if r.IsSuicide() {
		log.WithFields(fields).Debug("suicide")
		g.notifier.BroadcastSuicide(victim.Name, victim.Color)
		g.notifier.NotifyPlayerDied(victim.ID)
		g.markForRespawn(victim.ID)
		return Death{PlayerID: victim.ID, Cause: DeathCauseSelfCollision}, true
	}

	if killer, ok := g.players.Player(r.KillerID); ok {
		log.WithFields(fields).Debug("kill")
		g.stats.IncreaseScore(killer.ID)
		g.stats.AddKill(killer.ID)
		killer.Grow(g.cfg.KillGrowth)
		g.notifier.BroadcastKill(killer.Name, victim.Name, killer.Color, victim.Color, killer.Length())
		g.notifier.NotifyPlayerMadeAKill(killer.ID)
	}
	g.notifier.NotifyPlayerDied(victim.ID)
	g.markForRespawn(victim.ID)
	return Death{PlayerID: victim.ID, Cause: DeathCauseSnakeCollision, KillerID: r.KillerID}, true
}

func (g *Game) handleMutualKill(r MutualKill) []Death {
	deaths := []Death{}
	victims := []VictimSummary{}
	for _, id := range r.VictimIDs {
		p, ok := g.players.Player(id)
		if !ok {
			continue
		}
		victims = append(victims, VictimSummary{Name: p.Name, Color: p.Color})
		deaths = append(deaths, Death{PlayerID: id, Cause: DeathCauseHeadToHeadCollision})
	}
	if len(victims) == 0 {
		return deaths
	}
	log.WithFields(log.Fields{
		"Turn":    g.turn,
		"Victims": r.VictimIDs,
	}).Debug("killed each other")
	g.notifier.BroadcastKillEachOther(victims)
	for _, d := range deaths {
		g.notifier.NotifyPlayerDied(d.PlayerID)
		g.markForRespawn(d.PlayerID)
	}
	return deaths
}
