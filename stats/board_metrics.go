package stats

import (
	"github.com/battlesnakeio/arena/rules"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentBoard wraps all board methods to instrument the underlying calls.
func InstrumentBoard(b Board) Board { return &metrics{b} }

var (
	boardCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "stats",
			Name:      "calls",
			Help:      "Calls processed by the stat board.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(boardCalls.WithLabelValues(method))
	return t.ObserveDuration
}

func init() {
	prometheus.MustRegister(boardCalls)
}

type metrics struct{ b Board }

func (m *metrics) IncreaseScore(id string) {
	defer instrument("IncreaseScore")()
	m.b.IncreaseScore(id)
}

func (m *metrics) AddKill(id string) {
	defer instrument("AddKill")()
	m.b.AddKill(id)
}

func (m *metrics) AddDeath(id string) {
	defer instrument("AddDeath")()
	m.b.AddDeath(id)
}

func (m *metrics) Stat(id string) rules.Stat {
	defer instrument("Stat")()
	return m.b.Stat(id)
}

func (m *metrics) Remove(id string) {
	defer instrument("Remove")()
	m.b.Remove(id)
}

func (m *metrics) Leaderboard(n int) []Entry {
	defer instrument("Leaderboard")()
	return m.b.Leaderboard(n)
}
