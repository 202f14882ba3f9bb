package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen    = ":3005"
	redisURL     = ""
	promEnable   = true
	promListen   = ":9000"
	seed         int64
	initialBots  = -1
	shutdownWait = 5
)

// RootCmd runs the arena.
var RootCmd = &cobra.Command{
	Use:    "server",
	Short:  "serve the snake arena",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		if err := run(); err != nil {
			log.WithError(err).Fatal("arena stopped")
		}
	},
}

func init() {
	RootCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	RootCmd.Flags().StringVar(&redisURL, "redis-url", redisURL, "mirror stats to this redis, disabled when empty")
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	RootCmd.Flags().Int64Var(&seed, "seed", seed, "random seed, the current time when zero")
	RootCmd.Flags().IntVar(&initialBots, "bots", initialBots, "bots to start with, the configured default when negative")
	RootCmd.Flags().IntVar(&shutdownWait, "shutdown-wait", shutdownWait, "seconds to wait for clients on shutdown")
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
