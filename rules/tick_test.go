package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	g        *Game
	players  *fakeRegistry
	stats    *fakeStats
	notifier *recordingNotifier
	names    *fakeNames
}

func newGameFixture(cfg Config, players ...*Player) *gameFixture {
	f := &gameFixture{
		players:  newFakeRegistry(),
		stats:    newFakeStats(),
		notifier: &recordingNotifier{},
		names:    &fakeNames{},
	}
	f.g = NewGame(cfg, f.players, f.stats, f.notifier, f.names, fixedRNG())
	for _, p := range players {
		f.players.AddPlayer(p)
		f.g.Occupancy().AddPlayerOccupancy(p.ID, p.Segments)
	}
	return f
}

func (f *gameFixture) placeFood(id string, at Coordinate) {
	food := &Food{ID: id, Coordinate: at, Type: FoodTypeNormal, Color: "#ff0000", Value: 1}
	f.g.food.food[id] = food
	f.g.Occupancy().AddFoodOccupancy(food)
}

func TestTickUpdatesTurnAndBroadcasts(t *testing.T) {
	p := testPlayer("a", DirectionRight, Coordinate{X: 2, Y: 2}, Coordinate{X: 1, Y: 2})
	f := newGameFixture(testConfig(), p)

	state := f.g.Tick()
	require.Equal(t, int64(1), state.Turn)
	require.Equal(t, int64(1), f.g.Turn())
	require.Len(t, f.notifier.states, 1)
	require.Equal(t, state, f.notifier.states[0])
	require.Equal(t, []Coordinate{{X: 3, Y: 2}, {X: 2, Y: 2}}, p.Segments)
	require.False(t, f.g.Occupancy().IsOccupied(Coordinate{X: 1, Y: 2}))

	ps, ok := state.Player("a")
	require.True(t, ok)
	require.Equal(t, p.Segments, ps.Segments)
	require.Empty(t, state.Deaths)
}

func TestTickWallCollision(t *testing.T) {
	p := testPlayer("a", DirectionRight, Coordinate{X: 19, Y: 5}, Coordinate{X: 18, Y: 5})
	f := newGameFixture(testConfig(), p)

	state := f.g.Tick()
	require.Equal(t, []string{"a"}, f.notifier.walls)
	require.Equal(t, []string{"a"}, f.notifier.died)
	require.Equal(t, 1, f.stats.Stat("a").Deaths)
	require.Equal(t, []Death{{PlayerID: "a", Cause: DeathCauseWallCollision}}, state.Deaths)

	// respawned within the same tick with a fresh body
	require.Equal(t, StatusActive, p.Status)
	require.Len(t, p.Segments, 3)
	require.Contains(t, f.notifier.notifications, "a has respawned.")
	require.Empty(t, f.players.PlayersMarkedForRespawn())
}

func TestTickHeadToHeadCollision(t *testing.T) {
	a := testPlayer("a", DirectionRight, Coordinate{X: 4, Y: 5}, Coordinate{X: 3, Y: 5})
	b := testPlayer("b", DirectionLeft, Coordinate{X: 6, Y: 5}, Coordinate{X: 7, Y: 5})
	f := newGameFixture(testConfig(), a, b)

	state := f.g.Tick()
	require.Len(t, f.notifier.killEachOther, 1)
	require.Equal(t, []VictimSummary{{Name: "a", Color: "#a"}, {Name: "b", Color: "#b"}}, f.notifier.killEachOther[0])
	require.Empty(t, f.notifier.kills)
	require.Empty(t, f.notifier.suicides)
	require.ElementsMatch(t, []string{"a", "b"}, f.notifier.died)
	require.Equal(t, []Death{
		{PlayerID: "a", Cause: DeathCauseHeadToHeadCollision},
		{PlayerID: "b", Cause: DeathCauseHeadToHeadCollision},
	}, state.Deaths)
	require.Equal(t, 1, f.stats.Stat("a").Deaths)
	require.Equal(t, 0, f.stats.Stat("a").Kills)
	require.Equal(t, 1, f.stats.Stat("b").Deaths)
}

func TestTickKillCreditsKiller(t *testing.T) {
	a := testPlayer("a", DirectionDown, Coordinate{X: 4, Y: 4}, Coordinate{X: 4, Y: 3})
	b := testPlayer("b", DirectionRight, Coordinate{X: 6, Y: 5}, Coordinate{X: 5, Y: 5}, Coordinate{X: 4, Y: 5})
	cfg := testConfig()
	f := newGameFixture(cfg, a, b)

	state := f.g.Tick()
	require.Equal(t, []string{"b>a:8"}, f.notifier.kills)
	require.Equal(t, []string{"b"}, f.notifier.madeKill)
	require.Equal(t, []string{"a"}, f.notifier.died)
	require.Equal(t, cfg.KillGrowth, b.Growth())
	require.Equal(t, Stat{Score: 1, Kills: 1}, f.stats.Stat("b"))
	require.Equal(t, Stat{Deaths: 1}, f.stats.Stat("a"))
	require.Equal(t, []Death{{PlayerID: "a", Cause: DeathCauseSnakeCollision, KillerID: "b"}}, state.Deaths)
}

func TestTickSuicide(t *testing.T) {
	body := []Coordinate{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}}
	p := testPlayer("a", DirectionLeft, body...)
	f := newGameFixture(testConfig(), p)

	state := f.g.Tick()
	require.Equal(t, []string{"a"}, f.notifier.suicides)
	require.Empty(t, f.notifier.kills)
	require.Equal(t, Stat{Deaths: 1}, f.stats.Stat("a"))
	require.Equal(t, []Death{{PlayerID: "a", Cause: DeathCauseSelfCollision}}, state.Deaths)
}

func TestTickEatsFood(t *testing.T) {
	p := testPlayer("a", DirectionRight, Coordinate{X: 2, Y: 2}, Coordinate{X: 1, Y: 2})
	f := newGameFixture(testConfig(), p)
	f.placeFood("f1", Coordinate{X: 3, Y: 2})

	f.g.Tick()
	require.Equal(t, 1, f.stats.Stat("a").Score)
	require.Equal(t, 3, p.Length())
	require.Equal(t, 1, f.g.FoodManager().FoodAmount())
	require.Len(t, f.notifier.food, 1)

	f.g.Tick()
	require.Len(t, p.Segments, 3)
}

func TestAddPlayerPlacesBody(t *testing.T) {
	f := newGameFixture(testConfig())
	p := NewPlayer("a", "alice", "#123456", false)

	f.g.AddPlayer(p)
	require.Equal(t, StatusActive, p.Status)
	require.Len(t, p.Segments, 3)
	for _, c := range p.Segments {
		require.False(t, f.g.Occupancy().IsSafe(c))
	}
	require.Equal(t, []string{"alice has joined."}, f.notifier.notifications)

	f.g.RemovePlayer("a")
	_, ok := f.players.Player("a")
	require.False(t, ok)
	for _, c := range p.Segments {
		require.True(t, f.g.Occupancy().IsSafe(c))
	}
	require.Equal(t, []string{"alice"}, f.names.released)
	require.Equal(t, "alice has left.", f.notifier.notifications[1])
}

func TestSpectateAndPlay(t *testing.T) {
	f := newGameFixture(testConfig())
	p := NewPlayer("a", "alice", "#123456", false)
	f.g.AddPlayer(p)
	head := p.Segments[0]

	f.g.Spectate("a")
	require.Equal(t, StatusSpectating, p.Status)
	require.Empty(t, p.Segments)
	require.True(t, f.g.Occupancy().IsSafe(head))

	f.g.Tick()
	require.Equal(t, StatusSpectating, p.Status)

	f.g.Play("a")
	require.Equal(t, StatusActive, p.Status)
	require.Len(t, p.Segments, 3)
}

func TestRespawnWithoutRoom(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 2
	cfg.Height = 2
	blocker := testPlayer("a", DirectionUp, Coordinate{X: 0, Y: 1}, Coordinate{X: 0, Y: 0}, Coordinate{X: 1, Y: 0}, Coordinate{X: 1, Y: 1})
	f := newGameFixture(cfg, blocker)
	p := NewPlayer("b", "bob", "#123456", false)

	f.g.AddPlayer(p)
	require.Equal(t, StatusPendingRespawn, p.Status)
	require.Contains(t, f.notifier.notifications, "No room to spawn bob.")
	require.Equal(t, []string{"b"}, f.players.PlayersMarkedForRespawn())
}

func TestChangeDirection(t *testing.T) {
	p := testPlayer("a", DirectionRight, Coordinate{X: 2, Y: 2}, Coordinate{X: 1, Y: 2})
	f := newGameFixture(testConfig(), p)

	f.g.ChangeDirection("a", DirectionLeft)
	require.Equal(t, DirectionRight, p.Direction)
	f.g.ChangeDirection("a", DirectionUp)
	require.Equal(t, DirectionUp, p.Direction)
	f.g.ChangeDirection("nobody", DirectionUp)
}

func TestSetStartLength(t *testing.T) {
	f := newGameFixture(testConfig())
	require.Equal(t, 3, f.g.StartLength())
	require.Equal(t, 1, f.g.SetStartLength(0))
	require.Equal(t, 100, f.g.SetStartLength(500))
	require.Equal(t, 7, f.g.SetStartLength(7))
}

func TestResetRespawnsEveryone(t *testing.T) {
	a := testPlayer("a", DirectionRight, Coordinate{X: 2, Y: 2})
	b := testPlayer("b", DirectionRight, Coordinate{X: 8, Y: 8})
	b.Status = StatusSpectating
	f := newGameFixture(testConfig(), a, b)
	f.g.Tick()

	f.g.Reset()
	require.Equal(t, int64(0), f.g.Turn())
	require.Equal(t, StatusActive, a.Status)
	require.Len(t, a.Segments, 3)
	require.Equal(t, StatusSpectating, b.Status)
	require.Equal(t, 1, f.g.FoodManager().FoodAmount())
}
