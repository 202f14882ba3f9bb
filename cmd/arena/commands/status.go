package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/stats"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the current state of a running arena",
	Run: func(*cobra.Command, []string) {
		state := &rules.GameState{}
		if err := get("/state", state); err != nil {
			log.WithError(err).WithField("addr", apiAddr).Error("unable to get the arena state")
			return
		}
		spew.Dump(state)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "prints the top players of a running arena",
	Run: func(*cobra.Command, []string) {
		entries := []stats.Entry{}
		if err := get(fmt.Sprintf("/leaderboard?n=%d", leaderboardSize), &entries); err != nil {
			log.WithError(err).WithField("addr", apiAddr).Error("unable to get the leaderboard")
			return
		}
		for i, e := range entries {
			fmt.Printf("%2d. %-36s score %4d kills %4d deaths %4d\n", i+1, e.PlayerID, e.Score, e.Kills, e.Deaths)
		}
	},
}

var (
	leaderboardSize int
)

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardSize, "size", "n", 10, "number of players to show")
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
}

func get(path string, v interface{}) error {
	resp, err := httpClient.Get(apiAddr + path)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.WithFields(log.Fields{
			"resp": string(data),
			"path": path,
		}).Info("unable to unmarshal response")
		return errors.Wrap(err, "unable to unmarshal response")
	}
	return nil
}
