package rules

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// placementAttempts is the number of free cells tried when looking for room
// for a full starting body.
const placementAttempts = 8

// Game is the authoritative world. Every method must be called from the
// goroutine that runs the ticks.
type Game struct {
	cfg       Config
	occupancy *Occupancy
	food      *FoodManager
	bots      *BotDirector

	players  PlayerRegistry
	stats    StatBoard
	notifier Notifier
	names    NameAllocator
	rng      RNG

	startLength int
	turn        int64
}

// NewGame wires a game over the given ports. The board starts empty, call
// Reset to spawn the default food.
func NewGame(cfg Config, players PlayerRegistry, stats StatBoard, notifier Notifier, names NameAllocator, rng RNG) *Game {
	occupancy := NewOccupancy(cfg.Width, cfg.Height, cfg.SpawnProbes, rng)
	return &Game{
		cfg:         cfg,
		occupancy:   occupancy,
		food:        NewFoodManager(cfg, occupancy, stats, names, notifier, rng),
		bots:        NewBotDirector(occupancy, rng, cfg.BotWanderChance),
		players:     players,
		stats:       stats,
		notifier:    notifier,
		names:       names,
		rng:         rng,
		startLength: cfg.StartLength,
	}
}

// Config returns the settings the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Occupancy returns the board index.
func (g *Game) Occupancy() *Occupancy { return g.occupancy }

// FoodManager returns the food manager.
func (g *Game) FoodManager() *FoodManager { return g.food }

// Players returns the player registry.
func (g *Game) Players() PlayerRegistry { return g.players }

// Names returns the name allocator.
func (g *Game) Names() NameAllocator { return g.names }

// Notifier returns the notification port.
func (g *Game) Notifier() Notifier { return g.notifier }

// Turn returns the number of ticks run since the last reset.
func (g *Game) Turn() int64 { return g.turn }

// StartLength returns the length new bodies are given.
func (g *Game) StartLength() int { return g.startLength }

// SetStartLength changes the length of the next bodies handed out, clamped
// to the configured bounds.
func (g *Game) SetStartLength(n int) int {
	if n < g.cfg.MinStartLength {
		n = g.cfg.MinStartLength
	}
	if g.cfg.MaxStartLength > 0 && n > g.cfg.MaxStartLength {
		n = g.cfg.MaxStartLength
	}
	if n < 1 {
		n = 1
	}
	g.startLength = n
	return n
}

// Reset respawns every player that is not spectating and refills the food.
func (g *Game) Reset() {
	g.turn = 0
	for _, p := range g.players.Players() {
		g.occupancy.RemovePlayerOccupancy(p.ID)
		p.ClearSegments()
		if p.Status != StatusSpectating {
			g.players.AddPlayerIDToRespawn(p.ID)
		}
	}
	g.food.Reinitialize()
	g.respawnPlayers()
}

// AddPlayer registers a player and puts it on the board. A player that
// cannot be placed is retried on the next ticks.
func (g *Game) AddPlayer(p *Player) {
	g.players.AddPlayer(p)
	log.WithFields(log.Fields{
		"PlayerID": p.ID,
		"Name":     p.Name,
		"Bot":      p.IsBot,
	}).Info("player joined")
	g.notifier.BroadcastNotification(fmt.Sprintf("%s has joined.", p.Name), p.Color)
	if p.Status == StatusSpectating {
		return
	}
	g.players.AddPlayerIDToRespawn(p.ID)
	g.respawnPlayer(p.ID, false)
}

// RemovePlayer takes a player off the board and out of the registry.
func (g *Game) RemovePlayer(id string) {
	p, ok := g.players.Player(id)
	if !ok {
		return
	}
	g.occupancy.RemovePlayerOccupancy(id)
	g.players.RemovePlayer(id)
	g.names.ReleaseName(p.Name)
	log.WithField("PlayerID", id).Info("player left")
	g.notifier.BroadcastNotification(fmt.Sprintf("%s has left.", p.Name), p.Color)
}

// Spectate removes the body of a player and stops it from respawning.
func (g *Game) Spectate(id string) {
	p, ok := g.players.Player(id)
	if !ok || p.Status == StatusSpectating {
		return
	}
	g.occupancy.RemovePlayerOccupancy(id)
	p.ClearSegments()
	g.players.UpdatePlayerStatusToSpectating(id)
}

// Play puts a spectating player back on the board.
func (g *Game) Play(id string) {
	p, ok := g.players.Player(id)
	if !ok || p.Status != StatusSpectating {
		return
	}
	g.players.AddPlayerIDToRespawn(id)
	g.respawnPlayer(id, false)
}

// ChangeDirection turns an active player. Reversals and unknown ids are
// ignored.
func (g *Game) ChangeDirection(id string, d Direction) {
	p, ok := g.players.Player(id)
	if !ok || p.Status != StatusActive {
		return
	}
	p.ChangeDirection(d)
}

func (g *Game) respawnPlayers() {
	for _, id := range g.players.PlayersMarkedForRespawn() {
		g.respawnPlayer(id, true)
	}
}

func (g *Game) respawnPlayer(id string, announce bool) {
	p, ok := g.players.Player(id)
	if !ok || p.Status == StatusSpectating {
		return
	}
	if !g.placePlayer(p) {
		g.notifier.BroadcastNotification(fmt.Sprintf("No room to spawn %s.", p.Name), notificationColor)
		return
	}
	g.players.ResetPlayerState(id)
	if announce {
		g.notifier.BroadcastNotification(fmt.Sprintf("%s has respawned.", p.Name), p.Color)
	}
}

// placePlayer gives p a fresh body on free cells. When no full body fits
// the player starts as a single segment and grows into its start length.
func (g *Game) placePlayer(p *Player) bool {
	length := g.startLength
	var fallback *Coordinate
	for attempt := 0; attempt < placementAttempts; attempt++ {
		head, ok := g.occupancy.RandomUnoccupiedCoordinate()
		if !ok {
			break
		}
		if fallback == nil {
			h := head
			fallback = &h
		}
		for _, d := range g.shuffledDirections() {
			if body := g.bodyBehind(head, d, length); body != nil {
				p.Reset(body, d, 0)
				g.occupancy.AddPlayerOccupancy(p.ID, p.Segments)
				return true
			}
		}
	}
	if fallback == nil {
		return false
	}
	d := g.shuffledDirections()[0]
	for _, candidate := range Directions {
		if g.occupancy.IsSafe(fallback.Step(candidate, 1)) {
			d = candidate
			break
		}
	}
	p.Reset([]Coordinate{*fallback}, d, length-1)
	g.occupancy.AddPlayerOccupancy(p.ID, p.Segments)
	return true
}

// bodyBehind lays out length cells starting at head and trailing away from
// dir. It returns nil if any cell is off the board or taken.
func (g *Game) bodyBehind(head Coordinate, dir Direction, length int) []Coordinate {
	body := make([]Coordinate, 0, length)
	for i := 0; i < length; i++ {
		c := head.Step(dir.Opposite(), i)
		if g.occupancy.IsOutOfBounds(c) || g.occupancy.IsOccupied(c) {
			return nil
		}
		body = append(body, c)
	}
	if g.occupancy.IsOutOfBounds(head.Step(dir, 1)) {
		return nil
	}
	return body
}

func (g *Game) shuffledDirections() []Direction {
	dirs := make([]Direction, len(Directions))
	copy(dirs, Directions)
	for i := len(dirs) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
