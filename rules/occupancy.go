package rules

import (
	"sort"
)

// OccupantKind tells what is standing on a cell.
type OccupantKind int

const (
	// OccupantNone is an empty cell
	OccupantNone OccupantKind = iota
	// OccupantPlayer is a segment of a player
	OccupantPlayer
	// OccupantFood is a food item
	OccupantFood
)

// Occupant describes one thing on a cell.
type Occupant struct {
	Kind     OccupantKind
	PlayerID string
	Segment  int
	FoodID   string
}

// FoodConsumption is a player head that landed on a food this tick.
type FoodConsumption struct {
	PlayerID string
	FoodID   string
}

// Occupancy is the authoritative map from board cell to occupants. Between
// ticks every cell has at most one occupant, while moving several heads may
// share a cell and that is what KillReports classifies.
type Occupancy struct {
	width  int
	height int
	probes int
	rng    RNG

	cells   [][]Occupant
	players map[string][]Coordinate
	foods   map[string]Coordinate
	used    int
}

// NewOccupancy returns an empty index for a width x height board.
func NewOccupancy(width, height, probes int, rng RNG) *Occupancy {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Occupancy{
		width:   width,
		height:  height,
		probes:  probes,
		rng:     rng,
		cells:   make([][]Occupant, width*height),
		players: map[string][]Coordinate{},
		foods:   map[string]Coordinate{},
	}
}

// Width of the board.
func (o *Occupancy) Width() int { return o.width }

// Height of the board.
func (o *Occupancy) Height() int { return o.height }

// IsOutOfBounds reports whether c lies outside the board.
func (o *Occupancy) IsOutOfBounds(c Coordinate) bool {
	return c.X < 0 || c.X >= o.width || c.Y < 0 || c.Y >= o.height
}

// IsSafe reports whether a head can move onto c. Food does not make a cell
// unsafe.
func (o *Occupancy) IsSafe(c Coordinate) bool {
	if o.IsOutOfBounds(c) {
		return false
	}
	for _, oc := range o.cells[o.index(c)] {
		if oc.Kind == OccupantPlayer {
			return false
		}
	}
	return true
}

// IsOccupied reports whether anything at all is on c.
func (o *Occupancy) IsOccupied(c Coordinate) bool {
	if o.IsOutOfBounds(c) {
		return false
	}
	return len(o.cells[o.index(c)]) > 0
}

// Occupants returns a copy of everything on c.
func (o *Occupancy) Occupants(c Coordinate) []Occupant {
	if o.IsOutOfBounds(c) {
		return nil
	}
	cell := o.cells[o.index(c)]
	out := make([]Occupant, len(cell))
	copy(out, cell)
	return out
}

// AddPlayerOccupancy replaces every cell held by the player with segments.
// Segments outside the board are not indexed.
func (o *Occupancy) AddPlayerOccupancy(playerID string, segments []Coordinate) {
	o.RemovePlayerOccupancy(playerID)
	held := make([]Coordinate, 0, len(segments))
	for i, s := range segments {
		if o.IsOutOfBounds(s) {
			continue
		}
		o.add(s, Occupant{Kind: OccupantPlayer, PlayerID: playerID, Segment: i})
		held = append(held, s)
	}
	o.players[playerID] = held
}

// RemovePlayerOccupancy clears every cell held by the player.
func (o *Occupancy) RemovePlayerOccupancy(playerID string) {
	held, ok := o.players[playerID]
	if !ok {
		return
	}
	for _, c := range held {
		o.remove(c, func(oc Occupant) bool {
			return oc.Kind == OccupantPlayer && oc.PlayerID == playerID
		})
	}
	delete(o.players, playerID)
}

// AddFoodOccupancy indexes a food.
func (o *Occupancy) AddFoodOccupancy(f *Food) {
	if f == nil || o.IsOutOfBounds(f.Coordinate) {
		return
	}
	o.RemoveFoodOccupancy(f.ID)
	o.add(f.Coordinate, Occupant{Kind: OccupantFood, FoodID: f.ID})
	o.foods[f.ID] = f.Coordinate
}

// RemoveFoodOccupancy removes a food from the index.
func (o *Occupancy) RemoveFoodOccupancy(foodID string) {
	c, ok := o.foods[foodID]
	if !ok {
		return
	}
	o.remove(c, func(oc Occupant) bool {
		return oc.Kind == OccupantFood && oc.FoodID == foodID
	})
	delete(o.foods, foodID)
}

// RandomUnoccupiedCoordinate picks a free cell uniformly at random. A few
// random probes are tried before falling back to a full scan. ok is false
// when the board has no room left.
func (o *Occupancy) RandomUnoccupiedCoordinate() (Coordinate, bool) {
	total := o.width * o.height
	if total == 0 || o.used >= total {
		return Coordinate{}, false
	}
	for i := 0; i < o.probes; i++ {
		idx := o.rng.Intn(total)
		if len(o.cells[idx]) == 0 {
			return o.coordinate(idx), true
		}
	}
	free := make([]int, 0, total-o.used)
	for idx, cell := range o.cells {
		if len(cell) == 0 {
			free = append(free, idx)
		}
	}
	if len(free) == 0 {
		return Coordinate{}, false
	}
	return o.coordinate(free[o.rng.Intn(len(free))]), true
}

// FoodsConsumed lists every player head that is on a food, ordered by
// player id.
func (o *Occupancy) FoodsConsumed() []FoodConsumption {
	consumed := []FoodConsumption{}
	for _, id := range o.playerIDs() {
		held := o.players[id]
		if len(held) == 0 {
			continue
		}
		head := held[0]
		if !o.isHead(id, head) {
			continue
		}
		for _, oc := range o.cells[o.index(head)] {
			if oc.Kind == OccupantFood {
				consumed = append(consumed, FoodConsumption{PlayerID: id, FoodID: oc.FoodID})
			}
		}
	}
	return consumed
}

// Snapshot is a frozen view of every player segment, used to classify a tick
// against the bodies as they were before anyone moved.
type Snapshot map[Coordinate][]Occupant

// Snapshot copies the player segments currently in the index.
func (o *Occupancy) Snapshot() Snapshot {
	snap := Snapshot{}
	for idx, cell := range o.cells {
		for _, oc := range cell {
			if oc.Kind == OccupantPlayer {
				c := o.coordinate(idx)
				snap[c] = append(snap[c], oc)
			}
		}
	}
	return snap
}

// KillReports classifies the collisions of the current heads. Heads that
// share a cell always form a MutualKill. Every other head that landed on a
// player segment is a SingleKill credited to the owner of that segment,
// itself included. Bodies come from pre, or from the live index when pre is
// nil. A player appears in at most one report.
func (o *Occupancy) KillReports(pre Snapshot) []KillReport {
	heads := map[Coordinate][]string{}
	order := []Coordinate{}
	for _, id := range o.playerIDs() {
		held := o.players[id]
		if len(held) == 0 || !o.isHead(id, held[0]) {
			continue
		}
		if _, seen := heads[held[0]]; !seen {
			order = append(order, held[0])
		}
		heads[held[0]] = append(heads[held[0]], id)
	}

	reports := []KillReport{}
	for _, c := range order {
		if ids := heads[c]; len(ids) > 1 {
			reports = append(reports, MutualKill{VictimIDs: ids})
		}
	}
	for _, c := range order {
		ids := heads[c]
		if len(ids) != 1 {
			continue
		}
		mover := ids[0]
		if owner, ok := o.bodyOwner(c, mover, pre); ok {
			reports = append(reports, SingleKill{KillerID: owner, VictimID: mover})
		}
	}
	return reports
}

// bodyOwner finds the player whose body is on c, ignoring the head of mover
// itself in the live index.
func (o *Occupancy) bodyOwner(c Coordinate, mover string, pre Snapshot) (string, bool) {
	var candidates []Occupant
	if pre != nil {
		candidates = pre[c]
	} else {
		for _, oc := range o.cells[o.index(c)] {
			if oc.Kind != OccupantPlayer {
				continue
			}
			if oc.Segment == 0 {
				continue
			}
			candidates = append(candidates, oc)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	// Prefer somebody else's body over the mover's own one.
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if (ci.PlayerID == mover) != (cj.PlayerID == mover) {
			return cj.PlayerID == mover
		}
		return ci.PlayerID < cj.PlayerID
	})
	return candidates[0].PlayerID, true
}

func (o *Occupancy) isHead(playerID string, c Coordinate) bool {
	for _, oc := range o.cells[o.index(c)] {
		if oc.Kind == OccupantPlayer && oc.PlayerID == playerID && oc.Segment == 0 {
			return true
		}
	}
	return false
}

func (o *Occupancy) playerIDs() []string {
	ids := make([]string, 0, len(o.players))
	for id := range o.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o *Occupancy) add(c Coordinate, oc Occupant) {
	idx := o.index(c)
	if len(o.cells[idx]) == 0 {
		o.used++
	}
	o.cells[idx] = append(o.cells[idx], oc)
}

func (o *Occupancy) remove(c Coordinate, match func(Occupant) bool) {
	idx := o.index(c)
	cell := o.cells[idx]
	if len(cell) == 0 {
		return
	}
	kept := cell[:0]
	for _, oc := range cell {
		if !match(oc) {
			kept = append(kept, oc)
		}
	}
	if len(kept) == 0 {
		o.cells[idx] = nil
		o.used--
		return
	}
	o.cells[idx] = kept
}

func (o *Occupancy) index(c Coordinate) int {
	return c.Y*o.width + c.X
}

func (o *Occupancy) coordinate(idx int) Coordinate {
	return Coordinate{X: idx % o.width, Y: idx / o.width}
}
