// Package admin implements the tuning commands any player can issue: the
// number of bots, the amount of food, the speed and the start length.
package admin

import (
	"fmt"
	"strings"

	"github.com/battlesnakeio/arena/registry"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Change is the direction of an admin change.
type Change string

const (
	// Increase raises the setting by one step
	Increase Change = "INCREASE"
	// Decrease lowers the setting by one step
	Decrease Change = "DECREASE"
	// Reset puts the setting back to its default
	Reset Change = "RESET"
)

const (
	defaultRequester      = "Admin"
	defaultRequesterColor = "white"
)

// ParseChange parses a change case insensitively.
func ParseChange(s string) (Change, error) {
	c := Change(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case Increase, Decrease, Reset:
		return c, nil
	}
	return "", errors.Errorf("admin: invalid change %q", s)
}

// Speed is the tick rate control of the loop.
type Speed interface {
	FPS() int
	SetFPS(fps int) int
}

// Service applies admin changes. Its methods must run on the game loop.
type Service struct {
	game    *rules.Game
	players *registry.Players
	names   *registry.Names
	stats   stats.Board
	palette *rules.Palette
	speed   Speed
}

// New returns an admin service.
func New(game *rules.Game, players *registry.Players, names *registry.Names, board stats.Board, palette *rules.Palette, speed Speed) *Service {
	return &Service{
		game:    game,
		players: players,
		names:   names,
		stats:   board,
		palette: palette,
		speed:   speed,
	}
}

func (s *Service) requester(id string) (string, string) {
	if p, ok := s.players.Player(id); ok {
		return p.Name, p.Color
	}
	return defaultRequester, defaultRequesterColor
}

func (s *Service) announce(color, format string, args ...interface{}) {
	s.game.Notifier().BroadcastNotification(fmt.Sprintf(format, args...), color)
}

// ChangeBots adds, removes or resets the bots.
func (s *Service) ChangeBots(requesterID string, c Change) {
	name, color := s.requester(requesterID)
	cfg := s.game.Config()
	switch c {
	case Increase:
		if len(s.players.Bots()) >= cfg.MaxBots {
			s.announce(color, "%s couldn't add a bot. The maximum of %d bots has been reached.", name, cfg.MaxBots)
			return
		}
		s.AddBot()
		s.announce(color, "%s added a bot.", name)
	case Decrease:
		if !s.RemoveBot() {
			s.announce(color, "%s couldn't remove a bot.", name)
			return
		}
		s.announce(color, "%s removed a bot.", name)
	case Reset:
		s.ResetBots()
		s.announce(color, "%s reset the bots.", name)
	}
}

// AddBot puts a new bot in the arena.
func (s *Service) AddBot() {
	id := s.names.BotID()
	s.game.AddPlayer(rules.NewPlayer(id, id, s.palette.Next(), true))
}

// RemoveBot removes the newest bot, it reports false when there are none.
func (s *Service) RemoveBot() bool {
	bots := s.players.Bots()
	if len(bots) == 0 {
		return false
	}
	id := bots[len(bots)-1]
	s.game.RemovePlayer(id)
	s.stats.Remove(id)
	return true
}

// ResetBots brings the number of bots back to the default.
func (s *Service) ResetBots() {
	target := s.game.Config().DefaultBots
	for len(s.players.Bots()) > target {
		s.RemoveBot()
	}
	for len(s.players.Bots()) < target {
		s.AddBot()
	}
	log.WithField("Bots", target).Debug("bots reset")
}

// ChangeFood adds, removes or resets the food.
func (s *Service) ChangeFood(requesterID string, c Change) {
	name, color := s.requester(requesterID)
	food := s.game.FoodManager()
	switch c {
	case Increase:
		if food.GenerateSingleFood() {
			s.announce(color, "%s added food.", name)
		}
	case Decrease:
		if !s.removeFood() {
			s.announce(color, "%s couldn't remove food.", name)
			return
		}
		s.announce(color, "%s removed food.", name)
	case Reset:
		for s.removeFood() {
		}
		food.GenerateFood(s.game.Config().DefaultFood)
		s.announce(color, "%s reset the food.", name)
	}
}

func (s *Service) removeFood() bool {
	food := s.game.FoodManager()
	if food.FoodAmount() == 0 {
		return false
	}
	id := food.LastFoodIDSpawned()
	if id == "" {
		id = food.Food()[food.FoodAmount()-1].ID
	}
	return food.RemoveFood(id)
}

// ChangeSpeed raises, lowers or resets the FPS.
func (s *Service) ChangeSpeed(requesterID string, c Change) {
	name, color := s.requester(requesterID)
	cfg := s.game.Config()
	current := s.speed.FPS()
	var fps int
	switch c {
	case Increase:
		fps = s.speed.SetFPS(current + 1)
	case Decrease:
		fps = s.speed.SetFPS(current - 1)
	case Reset:
		fps = s.speed.SetFPS(cfg.StartingFPS)
	default:
		return
	}
	if fps == current && c != Reset {
		s.announce(color, "%s couldn't change the speed, it is already %d FPS.", name, fps)
		return
	}
	s.announce(color, "%s changed the speed to %d FPS.", name, fps)
}

// ChangeStartLength raises, lowers or resets the length new players start
// with.
func (s *Service) ChangeStartLength(requesterID string, c Change) {
	name, color := s.requester(requesterID)
	current := s.game.StartLength()
	var length int
	switch c {
	case Increase:
		length = s.game.SetStartLength(current + 1)
	case Decrease:
		length = s.game.SetStartLength(current - 1)
	case Reset:
		length = s.game.SetStartLength(s.game.Config().StartLength)
	default:
		return
	}
	s.announce(color, "%s changed the start length to %d.", name, length)
}
