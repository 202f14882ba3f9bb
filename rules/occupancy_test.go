package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOccupancyBounds(t *testing.T) {
	o := NewOccupancy(10, 5, 4, fixedRNG())
	require.False(t, o.IsOutOfBounds(Coordinate{X: 0, Y: 0}))
	require.False(t, o.IsOutOfBounds(Coordinate{X: 9, Y: 4}))
	require.True(t, o.IsOutOfBounds(Coordinate{X: 10, Y: 0}))
	require.True(t, o.IsOutOfBounds(Coordinate{X: 0, Y: 5}))
	require.True(t, o.IsOutOfBounds(Coordinate{X: -1, Y: 2}))
	require.False(t, o.IsSafe(Coordinate{X: -1, Y: 2}))
}

func TestOccupancyPlayerCells(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 2, Y: 2}, {X: 1, Y: 2}})
	require.False(t, o.IsSafe(Coordinate{X: 2, Y: 2}))
	require.False(t, o.IsSafe(Coordinate{X: 1, Y: 2}))
	require.True(t, o.IsSafe(Coordinate{X: 3, Y: 2}))

	occupants := o.Occupants(Coordinate{X: 1, Y: 2})
	require.Len(t, occupants, 1)
	require.Equal(t, Occupant{Kind: OccupantPlayer, PlayerID: "a", Segment: 1}, occupants[0])

	// re-adding replaces the old cells
	o.AddPlayerOccupancy("a", []Coordinate{{X: 3, Y: 2}, {X: 2, Y: 2}})
	require.True(t, o.IsSafe(Coordinate{X: 1, Y: 2}))
	require.False(t, o.IsSafe(Coordinate{X: 3, Y: 2}))

	o.RemovePlayerOccupancy("a")
	require.True(t, o.IsSafe(Coordinate{X: 3, Y: 2}))
	require.False(t, o.IsOccupied(Coordinate{X: 2, Y: 2}))

	// unknown ids are ignored
	o.RemovePlayerOccupancy("nobody")
}

func TestOccupancyFoodIsSafe(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	f := &Food{ID: "f1", Coordinate: Coordinate{X: 4, Y: 4}}
	o.AddFoodOccupancy(f)
	require.True(t, o.IsSafe(f.Coordinate))
	require.True(t, o.IsOccupied(f.Coordinate))

	o.RemoveFoodOccupancy("f1")
	require.False(t, o.IsOccupied(f.Coordinate))
}

func TestRandomUnoccupiedCoordinate(t *testing.T) {
	o := NewOccupancy(3, 3, 2, fixedRNG())
	body := []Coordinate{}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 1 {
				continue
			}
			body = append(body, Coordinate{X: x, Y: y})
		}
	}
	o.AddPlayerOccupancy("a", body)

	for i := 0; i < 10; i++ {
		c, ok := o.RandomUnoccupiedCoordinate()
		require.True(t, ok)
		require.Equal(t, Coordinate{X: 2, Y: 1}, c)
	}
}

func TestRandomUnoccupiedCoordinateFullBoard(t *testing.T) {
	o := NewOccupancy(2, 2, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	o.AddFoodOccupancy(&Food{ID: "f1", Coordinate: Coordinate{X: 0, Y: 1}})

	_, ok := o.RandomUnoccupiedCoordinate()
	require.False(t, ok)
}

func TestKillReportsMutualKill(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 4, Y: 5}, {X: 3, Y: 5}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 6, Y: 5}, {X: 7, Y: 5}})
	pre := o.Snapshot()

	o.AddPlayerOccupancy("a", []Coordinate{{X: 5, Y: 5}, {X: 4, Y: 5}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 5, Y: 5}, {X: 6, Y: 5}})

	reports := o.KillReports(pre)
	require.Equal(t, []KillReport{MutualKill{VictimIDs: []string{"a", "b"}}}, reports)
}

func TestKillReportsBodyCollision(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 4, Y: 4}, {X: 4, Y: 3}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}})
	pre := o.Snapshot()

	// a moves down into the tail of b while b moves right
	o.AddPlayerOccupancy("a", []Coordinate{{X: 4, Y: 5}, {X: 4, Y: 4}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 7, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 5}})

	reports := o.KillReports(pre)
	require.Equal(t, []KillReport{SingleKill{KillerID: "b", VictimID: "a"}}, reports)
}

func TestKillReportsSuicide(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	body := []Coordinate{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}}
	o.AddPlayerOccupancy("a", body)
	pre := o.Snapshot()

	o.AddPlayerOccupancy("a", []Coordinate{{X: 4, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}})

	reports := o.KillReports(pre)
	require.Len(t, reports, 1)
	kill, ok := reports[0].(SingleKill)
	require.True(t, ok)
	require.True(t, kill.IsSuicide())
	require.Equal(t, "a", kill.VictimID)
}

func TestKillReportsHeadToHeadTakesPrecedence(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 4, Y: 5}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 6, Y: 5}})
	o.AddPlayerOccupancy("c", []Coordinate{{X: 5, Y: 4}, {X: 5, Y: 5}})
	pre := o.Snapshot()

	// a and b meet on the body of c
	o.AddPlayerOccupancy("a", []Coordinate{{X: 5, Y: 5}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 5, Y: 5}})
	o.AddPlayerOccupancy("c", []Coordinate{{X: 5, Y: 3}, {X: 5, Y: 4}})

	reports := o.KillReports(pre)
	require.Equal(t, []KillReport{MutualKill{VictimIDs: []string{"a", "b"}}}, reports)
}

func TestKillReportsLiveIndex(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("b", []Coordinate{{X: 6, Y: 5}, {X: 5, Y: 5}})
	o.AddPlayerOccupancy("a", []Coordinate{{X: 5, Y: 5}, {X: 5, Y: 4}})

	reports := o.KillReports(nil)
	require.Equal(t, []KillReport{SingleKill{KillerID: "b", VictimID: "a"}}, reports)
}

func TestKillReportsNoCollision(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddPlayerOccupancy("a", []Coordinate{{X: 1, Y: 1}, {X: 0, Y: 1}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 8, Y: 8}, {X: 9, Y: 8}})
	require.Empty(t, o.KillReports(o.Snapshot()))
}

func TestFoodsConsumed(t *testing.T) {
	o := NewOccupancy(10, 10, 4, fixedRNG())
	o.AddFoodOccupancy(&Food{ID: "f1", Coordinate: Coordinate{X: 3, Y: 3}})
	o.AddFoodOccupancy(&Food{ID: "f2", Coordinate: Coordinate{X: 7, Y: 7}})
	o.AddPlayerOccupancy("b", []Coordinate{{X: 3, Y: 3}, {X: 2, Y: 3}})
	o.AddPlayerOccupancy("a", []Coordinate{{X: 8, Y: 7}, {X: 7, Y: 7}})

	require.Equal(t, []FoodConsumption{{PlayerID: "b", FoodID: "f1"}}, o.FoodsConsumed())
}
