package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "arena",
		Subsystem: "worker",
		Name:      "tick_seconds",
		Help:      "Time spent running a tick.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	})
	playersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "arena",
		Subsystem: "worker",
		Name:      "players",
		Help:      "Players in the arena after the last tick.",
	})
	foodGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "arena",
		Subsystem: "worker",
		Name:      "food",
		Help:      "Food on the board after the last tick.",
	})
	pendingCommands = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "arena",
		Subsystem: "worker",
		Name:      "pending_commands",
		Help:      "Commands waiting for the next tick.",
	})
)

func init() {
	prometheus.MustRegister(tickDuration, playersGauge, foodGauge, pendingCommands)
}
