// Package stats keeps the score, kills and deaths of every player.
package stats

import (
	"sort"
	"sync"

	"github.com/battlesnakeio/arena/rules"
)

// Entry is one line of the leaderboard.
type Entry struct {
	PlayerID string `json:"playerId" msgpack:"playerId"`
	rules.Stat
}

// Board is the stat board used by the game loop, with the extra calls the
// transport needs.
type Board interface {
	rules.StatBoard
	// Remove forgets the stats of a player that left.
	Remove(id string)
	// Leaderboard returns the n best players by score, then kills. n <= 0
	// returns everyone.
	Leaderboard(n int) []Entry
}

// InMemBoard returns an in memory implementation of the Board interface.
func InMemBoard() Board {
	return &inmem{stats: map[string]rules.Stat{}}
}

type inmem struct {
	lock  sync.Mutex
	stats map[string]rules.Stat
}

func (in *inmem) update(id string, f func(*rules.Stat)) {
	in.lock.Lock()
	defer in.lock.Unlock()
	s := in.stats[id]
	f(&s)
	in.stats[id] = s
}

func (in *inmem) IncreaseScore(id string) { in.update(id, func(s *rules.Stat) { s.Score++ }) }
func (in *inmem) AddKill(id string)       { in.update(id, func(s *rules.Stat) { s.Kills++ }) }
func (in *inmem) AddDeath(id string)      { in.update(id, func(s *rules.Stat) { s.Deaths++ }) }

func (in *inmem) Stat(id string) rules.Stat {
	in.lock.Lock()
	defer in.lock.Unlock()
	return in.stats[id]
}

func (in *inmem) Remove(id string) {
	in.lock.Lock()
	defer in.lock.Unlock()
	delete(in.stats, id)
}

func (in *inmem) Leaderboard(n int) []Entry {
	in.lock.Lock()
	entries := make([]Entry, 0, len(in.stats))
	for id, s := range in.stats {
		entries = append(entries, Entry{PlayerID: id, Stat: s})
	}
	in.lock.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Kills != b.Kills {
			return a.Kills > b.Kills
		}
		return a.PlayerID < b.PlayerID
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
