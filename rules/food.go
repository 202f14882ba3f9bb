package rules

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
)

// FoodType is the effect a food has when eaten.
type FoodType string

const (
	// FoodTypeNormal grows the player that eats it
	FoodTypeNormal FoodType = "NORMAL"
	// FoodTypeSwap exchanges the body of the player that eats it with another
	// active player
	FoodTypeSwap FoodType = "SWAP"
)

const (
	noRoomForFoodText = "Could not add more food. No room left."
	swapText          = "Swap!"
	notificationColor = "white"
)

// Food is a consumable on the board.
type Food struct {
	ID         string     `json:"id" msgpack:"id"`
	Coordinate Coordinate `json:"coordinate" msgpack:"coordinate"`
	Type       FoodType   `json:"type" msgpack:"type"`
	Color      string     `json:"color" msgpack:"color"`
	Value      int        `json:"value" msgpack:"value"`
}

// FoodManager owns every food on the board.
type FoodManager struct {
	cfg       Config
	occupancy *Occupancy
	stats     StatBoard
	names     NameAllocator
	notifier  Notifier
	rng       RNG

	food        map[string]*Food
	lastSpawned string
}

// NewFoodManager returns an empty food manager, call Reinitialize to fill the
// board.
func NewFoodManager(cfg Config, occupancy *Occupancy, stats StatBoard, names NameAllocator, notifier Notifier, rng RNG) *FoodManager {
	return &FoodManager{
		cfg:       cfg,
		occupancy: occupancy,
		stats:     stats,
		names:     names,
		notifier:  notifier,
		rng:       rng,
		food:      map[string]*Food{},
	}
}

// Reinitialize clears all food and generates the default amount.
func (fm *FoodManager) Reinitialize() {
	fm.Clear()
	fm.GenerateFood(fm.cfg.DefaultFood)
}

// Clear removes every food from the board.
func (fm *FoodManager) Clear() {
	for _, id := range fm.sortedIDs() {
		fm.RemoveFood(id)
	}
	fm.lastSpawned = ""
}

// GenerateFood spawns up to n foods and returns how many were spawned. It
// stops at the first food that cannot be placed.
func (fm *FoodManager) GenerateFood(n int) int {
	spawned := 0
	for i := 0; i < n; i++ {
		if !fm.GenerateSingleFood() {
			break
		}
		spawned++
	}
	return spawned
}

// GenerateSingleFood places one food on a random free cell. When the board
// is full a notification is broadcast and false is returned.
func (fm *FoodManager) GenerateSingleFood() bool {
	at, ok := fm.occupancy.RandomUnoccupiedCoordinate()
	if !ok {
		fm.notifier.BroadcastNotification(noRoomForFoodText, notificationColor)
		return false
	}
	f := &Food{
		ID:         fm.names.FoodID(),
		Coordinate: at,
		Type:       FoodTypeNormal,
		Color:      fm.cfg.FoodColor,
		Value:      fm.cfg.FoodGrowth,
	}
	if fm.cfg.SwapChance > 0 && fm.rng.Intn(fm.cfg.SwapChance) == 0 {
		f.Type = FoodTypeSwap
		f.Color = fm.cfg.SwapFoodColor
		f.Value = 0
	}
	fm.food[f.ID] = f
	fm.occupancy.AddFoodOccupancy(f)
	fm.lastSpawned = f.ID
	return true
}

// RemoveFood deletes a food and releases its id. Unknown ids are ignored.
func (fm *FoodManager) RemoveFood(id string) bool {
	if _, ok := fm.food[id]; !ok {
		return false
	}
	fm.occupancy.RemoveFoodOccupancy(id)
	delete(fm.food, id)
	fm.names.ReturnFoodID(id)
	if fm.lastSpawned == id {
		fm.lastSpawned = ""
	}
	return true
}

// ConsumeAndRespawnFood applies every food eaten this tick and spawns a
// replacement for each one. It returns the number of foods consumed.
func (fm *FoodManager) ConsumeAndRespawnFood(players PlayerRegistry) int {
	consumed := 0
	for _, fc := range fm.occupancy.FoodsConsumed() {
		f, ok := fm.food[fc.FoodID]
		if !ok {
			continue
		}
		fm.RemoveFood(f.ID)
		consumed++

		if p, ok := players.Player(fc.PlayerID); ok {
			if f.Type == FoodTypeSwap && fm.swap(p, f, players) {
				log.WithFields(log.Fields{
					"PlayerID": p.ID,
					"Food":     f.ID,
				}).Debug("swap food eaten")
			} else {
				fm.feed(p, f)
			}
		}

		fm.GenerateSingleFood()
	}
	return consumed
}

func (fm *FoodManager) feed(p *Player, f *Food) {
	growth := f.Value
	if growth <= 0 {
		growth = fm.cfg.FoodGrowth
	}
	fm.stats.IncreaseScore(p.ID)
	p.Grow(growth)
	fm.notifier.NotifyPlayerFoodCollected(p.ID, fmt.Sprintf("+%d", growth), f.Coordinate, f.Color, false)
}

func (fm *FoodManager) swap(p *Player, f *Food, players PlayerRegistry) bool {
	other, ok := players.AnActivePlayer(p.ID)
	if !ok || other.ID == p.ID {
		return false
	}
	swapBodies(p, other)
	fm.occupancy.AddPlayerOccupancy(p.ID, p.Segments)
	fm.occupancy.AddPlayerOccupancy(other.ID, other.Segments)
	fm.notifier.NotifyPlayerFoodCollected(p.ID, swapText, f.Coordinate, f.Color, true)
	fm.notifier.NotifyPlayerFoodCollected(other.ID, swapText, f.Coordinate, f.Color, true)
	return true
}

// FoodAmount returns the number of foods on the board.
func (fm *FoodManager) FoodAmount() int {
	return len(fm.food)
}

// Food returns the foods on the board ordered by id.
func (fm *FoodManager) Food() []*Food {
	food := make([]*Food, 0, len(fm.food))
	for _, id := range fm.sortedIDs() {
		food = append(food, fm.food[id])
	}
	return food
}

// LastFoodIDSpawned returns the id of the newest food still on the board.
func (fm *FoodManager) LastFoodIDSpawned() string {
	return fm.lastSpawned
}

func (fm *FoodManager) sortedIDs() []string {
	ids := make([]string, 0, len(fm.food))
	for id := range fm.food {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
