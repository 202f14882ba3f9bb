package rules

// GameState is the snapshot broadcast after every tick.
type GameState struct {
	Turn    int64         `json:"turn" msgpack:"turn"`
	Width   int           `json:"width" msgpack:"width"`
	Height  int           `json:"height" msgpack:"height"`
	Players []PlayerState `json:"players" msgpack:"players"`
	Food    []Food        `json:"food" msgpack:"food"`
	Deaths  []Death       `json:"deaths,omitempty" msgpack:"deaths,omitempty"`
}

// PlayerState is the public view of a player.
type PlayerState struct {
	ID        string       `json:"id" msgpack:"id"`
	Name      string       `json:"name" msgpack:"name"`
	Color     string       `json:"color" msgpack:"color"`
	Direction Direction    `json:"direction" msgpack:"direction"`
	Segments  []Coordinate `json:"segments" msgpack:"segments"`
	Status    Status       `json:"status" msgpack:"status"`
	IsBot     bool         `json:"isBot" msgpack:"isBot"`
	Length    int          `json:"length" msgpack:"length"`
	Stat
}

// State copies the current world into a GameState. The copy shares nothing
// with the game so it can be read from other goroutines.
func (g *Game) State() *GameState {
	state := &GameState{
		Turn:    g.turn,
		Width:   g.cfg.Width,
		Height:  g.cfg.Height,
		Players: []PlayerState{},
		Food:    []Food{},
	}
	for _, p := range g.players.Players() {
		segments := make([]Coordinate, len(p.Segments))
		copy(segments, p.Segments)
		state.Players = append(state.Players, PlayerState{
			ID:        p.ID,
			Name:      p.Name,
			Color:     p.Color,
			Direction: p.Direction,
			Segments:  segments,
			Status:    p.Status,
			IsBot:     p.IsBot,
			Length:    p.Length(),
			Stat:      g.stats.Stat(p.ID),
		})
	}
	for _, f := range g.food.Food() {
		state.Food = append(state.Food, *f)
	}
	return state
}

// Player returns the state of a single player.
func (s *GameState) Player(id string) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerState{}, false
}
