package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/battlesnakeio/arena/rules"
)

var (
	adjectives = []string{
		"Angry", "Brave", "Clever", "Dizzy", "Eager", "Fancy", "Gentle", "Happy",
		"Icy", "Jolly", "Kind", "Lazy", "Mighty", "Nimble", "Odd", "Proud",
		"Quick", "Rusty", "Shy", "Tiny", "Ugly", "Vast", "Wild", "Young", "Zany",
	}
	nouns = []string{
		"Adder", "Boa", "Cobra", "Dragon", "Eel", "Fang", "Gecko", "Hydra",
		"Iguana", "Jaguar", "Krait", "Lizard", "Mamba", "Newt", "Otter", "Python",
		"Quail", "Racer", "Serpent", "Taipan", "Urchin", "Viper", "Worm", "Yak", "Zebra",
	}
)

// Names is an in memory rules.NameAllocator. Player names are unique among
// the players currently connected, food ids are reused once returned.
type Names struct {
	lock     sync.Mutex
	rng      rules.RNG
	used     map[string]bool
	freeFood []string
	nextFood int
	nextBot  int
}

// NewNames returns an allocator with no names in use.
func NewNames(rng rules.RNG) *Names {
	n := &Names{rng: rng}
	n.Reinitialize()
	return n
}

// Reinitialize forgets every name and food id handed out.
func (n *Names) Reinitialize() {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.used = map[string]bool{}
	n.freeFood = nil
	n.nextFood = 0
	n.nextBot = 0
}

// FoodID returns an id for a new food, reusing returned ones first.
func (n *Names) FoodID() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	if l := len(n.freeFood); l > 0 {
		id := n.freeFood[l-1]
		n.freeFood = n.freeFood[:l-1]
		return id
	}
	n.nextFood++
	return fmt.Sprintf("food-%d", n.nextFood)
}

// ReturnFoodID makes a food id available again.
func (n *Names) ReturnFoodID(id string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.freeFood = append(n.freeFood, id)
}

// BotID returns a unique bot name, which is also its player id.
func (n *Names) BotID() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	for {
		n.nextBot++
		id := fmt.Sprintf("Bot %d", n.nextBot)
		if !n.used[strings.ToLower(id)] {
			n.used[strings.ToLower(id)] = true
			return id
		}
	}
}

// PlayerName returns a random unused player name.
func (n *Names) PlayerName() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	for attempt := 0; attempt < len(adjectives)*len(nouns); attempt++ {
		name := adjectives[n.rng.Intn(len(adjectives))] + " " + nouns[n.rng.Intn(len(nouns))]
		if !n.used[strings.ToLower(name)] {
			n.used[strings.ToLower(name)] = true
			return name
		}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("Player %d", i)
		if !n.used[strings.ToLower(name)] {
			n.used[strings.ToLower(name)] = true
			return name
		}
	}
}

// UsePlayerName claims name, it reports false if the name is taken.
// Names are compared case insensitively.
func (n *Names) UsePlayerName(name string) bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	key := strings.ToLower(name)
	if n.used[key] {
		return false
	}
	n.used[key] = true
	return true
}

// DoesPlayerNameExist reports whether name is in use.
func (n *Names) DoesPlayerNameExist(name string) bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.used[strings.ToLower(name)]
}

// ReleaseName frees a name for reuse.
func (n *Names) ReleaseName(name string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	delete(n.used, strings.ToLower(name))
}
