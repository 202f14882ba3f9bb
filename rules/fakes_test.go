package rules

import (
	"fmt"
	"math/rand"
	"sort"
)

// seqRNG returns scripted values, wrapped into range, then zeros.
type seqRNG struct {
	values []int
	calls  int
}

func (r *seqRNG) Intn(n int) int {
	defer func() { r.calls++ }()
	if r.calls >= len(r.values) {
		return 0
	}
	return r.values[r.calls] % n
}

func fixedRNG() RNG { return rand.New(rand.NewSource(42)) }

type fakeRegistry struct {
	players map[string]*Player
	respawn []string
	rng     RNG
}

func newFakeRegistry(players ...*Player) *fakeRegistry {
	r := &fakeRegistry{players: map[string]*Player{}, rng: fixedRNG()}
	for _, p := range players {
		r.players[p.ID] = p
	}
	return r
}

func (r *fakeRegistry) AddPlayer(p *Player) { r.players[p.ID] = p }

func (r *fakeRegistry) Player(id string) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

func (r *fakeRegistry) Players() []*Player {
	out := []*Player{}
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeRegistry) NumberOfPlayers() int { return len(r.players) }

func (r *fakeRegistry) AnActivePlayer(excludeID string) (*Player, bool) {
	for _, p := range r.Players() {
		if p.ID != excludeID && p.Status == StatusActive {
			return p, true
		}
	}
	return nil, false
}

func (r *fakeRegistry) AddPlayerIDToRespawn(id string) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Status = StatusPendingRespawn
	for _, m := range r.respawn {
		if m == id {
			return
		}
	}
	r.respawn = append(r.respawn, id)
}

func (r *fakeRegistry) PlayersMarkedForRespawn() []string {
	out := make([]string, len(r.respawn))
	copy(out, r.respawn)
	return out
}

func (r *fakeRegistry) ResetPlayerState(id string) {
	kept := r.respawn[:0]
	for _, m := range r.respawn {
		if m != id {
			kept = append(kept, m)
		}
	}
	r.respawn = kept
	if p, ok := r.players[id]; ok {
		p.Status = StatusActive
	}
}

func (r *fakeRegistry) UpdatePlayerStatusToSpectating(id string) {
	if p, ok := r.players[id]; ok {
		p.Status = StatusSpectating
	}
}

func (r *fakeRegistry) RemovePlayer(id string) { delete(r.players, id) }

type fakeStats struct {
	stats map[string]Stat
}

func newFakeStats() *fakeStats { return &fakeStats{stats: map[string]Stat{}} }

func (s *fakeStats) IncreaseScore(id string) {
	st := s.stats[id]
	st.Score++
	s.stats[id] = st
}

func (s *fakeStats) AddKill(id string) {
	st := s.stats[id]
	st.Kills++
	s.stats[id] = st
}

func (s *fakeStats) AddDeath(id string) {
	st := s.stats[id]
	st.Deaths++
	s.stats[id] = st
}

func (s *fakeStats) Stat(id string) Stat { return s.stats[id] }

type foodCollected struct {
	ID     string
	Text   string
	At     Coordinate
	Color  string
	IsSwap bool
}

type recordingNotifier struct {
	kills         []string
	suicides      []string
	killEachOther [][]VictimSummary
	walls         []string
	died          []string
	madeKill      []string
	food          []foodCollected
	notifications []string
	states        []*GameState
}

func (n *recordingNotifier) BroadcastKill(killerName, victimName, killerColor, victimColor string, newLength int) {
	n.kills = append(n.kills, fmt.Sprintf("%s>%s:%d", killerName, victimName, newLength))
}

func (n *recordingNotifier) BroadcastSuicide(name, color string) {
	n.suicides = append(n.suicides, name)
}

func (n *recordingNotifier) BroadcastKillEachOther(victims []VictimSummary) {
	n.killEachOther = append(n.killEachOther, victims)
}

func (n *recordingNotifier) BroadcastRanIntoWall(name, color string) {
	n.walls = append(n.walls, name)
}

func (n *recordingNotifier) NotifyPlayerDied(id string) { n.died = append(n.died, id) }

func (n *recordingNotifier) NotifyPlayerMadeAKill(id string) { n.madeKill = append(n.madeKill, id) }

func (n *recordingNotifier) NotifyPlayerFoodCollected(id, text string, at Coordinate, color string, isSwap bool) {
	n.food = append(n.food, foodCollected{ID: id, Text: text, At: at, Color: color, IsSwap: isSwap})
}

func (n *recordingNotifier) BroadcastNotification(text, color string) {
	n.notifications = append(n.notifications, text)
}

func (n *recordingNotifier) BroadcastGameState(state *GameState) {
	n.states = append(n.states, state)
}

type fakeNames struct {
	next     int
	returned []string
	released []string
}

func (f *fakeNames) FoodID() string {
	if len(f.returned) > 0 {
		id := f.returned[len(f.returned)-1]
		f.returned = f.returned[:len(f.returned)-1]
		return id
	}
	f.next++
	return fmt.Sprintf("food%03d", f.next)
}

func (f *fakeNames) ReturnFoodID(id string) { f.returned = append(f.returned, id) }

func (f *fakeNames) BotID() string {
	f.next++
	return fmt.Sprintf("bot%03d", f.next)
}

func (f *fakeNames) PlayerName() string {
	f.next++
	return fmt.Sprintf("player%03d", f.next)
}

func (f *fakeNames) ReleaseName(name string) { f.released = append(f.released, name) }

// testPlayer returns an active player with the given body, head first.
func testPlayer(id string, dir Direction, segments ...Coordinate) *Player {
	p := NewPlayer(id, id, "#"+id, false)
	p.Segments = segments
	p.Direction = dir
	p.Status = StatusActive
	return p
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 20
	cfg.DefaultFood = 1
	cfg.SwapChance = 0
	cfg.BotWanderChance = 0
	cfg.StartLength = 3
	return cfg
}
