// Package registry keeps the players of the arena and the names handed out
// to them.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/battlesnakeio/arena/rules"
)

var (
	// ErrNotFound is returned when a player is not registered.
	ErrNotFound = errors.New("registry: player not found")
)

// Players is an in memory rules.PlayerRegistry.
type Players struct {
	lock    sync.Mutex
	players map[string]*rules.Player
	respawn []string
	rng     rules.RNG
}

// NewPlayers returns an empty registry. rng picks the target of a swap.
func NewPlayers(rng rules.RNG) *Players {
	return &Players{
		players: map[string]*rules.Player{},
		rng:     rng,
	}
}

// AddPlayer registers p, replacing any player with the same id.
func (r *Players) AddPlayer(p *rules.Player) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.players[p.ID] = p
}

// Player looks a player up by id.
func (r *Players) Player(id string) (*rules.Player, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.players[id]
	return p, ok
}

// Lookup is Player with an error for callers outside the game loop.
func (r *Players) Lookup(id string) (*rules.Player, error) {
	p, ok := r.Player(id)
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Players returns every player ordered by id.
func (r *Players) Players() []*rules.Player {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.sorted()
}

// NumberOfPlayers counts every registered player, bots included.
func (r *Players) NumberOfPlayers() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.players)
}

// NumberOfHumans counts the players that are not bots.
func (r *Players) NumberOfHumans() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	n := 0
	for _, p := range r.players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

// Bots returns the ids of every bot ordered by id.
func (r *Players) Bots() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	ids := []string{}
	for _, p := range r.sorted() {
		if p.IsBot {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// AnActivePlayer picks a random active player that is not excludeID.
func (r *Players) AnActivePlayer(excludeID string) (*rules.Player, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	candidates := []*rules.Player{}
	for _, p := range r.sorted() {
		if p.ID != excludeID && p.Status == rules.StatusActive && len(p.Segments) > 0 {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[r.rng.Intn(len(candidates))], true
}

// AddPlayerIDToRespawn marks a player as waiting for a new body.
func (r *Players) AddPlayerIDToRespawn(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Status = rules.StatusPendingRespawn
	for _, marked := range r.respawn {
		if marked == id {
			return
		}
	}
	r.respawn = append(r.respawn, id)
}

// PlayersMarkedForRespawn returns the marked ids in the order they were
// marked.
func (r *Players) PlayersMarkedForRespawn() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := make([]string, len(r.respawn))
	copy(out, r.respawn)
	return out
}

// ResetPlayerState clears the respawn mark and makes the player active.
func (r *Players) ResetPlayerState(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.unmark(id)
	if p, ok := r.players[id]; ok {
		p.Status = rules.StatusActive
	}
}

// UpdatePlayerStatusToSpectating stops a player from playing.
func (r *Players) UpdatePlayerStatusToSpectating(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.players[id]
	if !ok {
		return
	}
	r.unmark(id)
	p.Status = rules.StatusSpectating
}

// RemovePlayer forgets a player.
func (r *Players) RemovePlayer(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.unmark(id)
	delete(r.players, id)
}

func (r *Players) unmark(id string) {
	kept := r.respawn[:0]
	for _, marked := range r.respawn {
		if marked != id {
			kept = append(kept, marked)
		}
	}
	r.respawn = kept
}

func (r *Players) sorted() []*rules.Player {
	out := make([]*rules.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
