// Package config reads the arena settings from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/battlesnakeio/arena/rules"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of server performance.
var (
	InputRate      rate.Limit
	InputBurst     int
	ClientBuffer   int
	MaxNameLength  int
	StatQueue      int
	LeaderboardLen int
)

func init() { refresh() }

func refresh() {
	InputRate = rate.Limit(getEnvInt("INPUT_RPS", 30))
	InputBurst = getEnvInt("INPUT_BURST", 10)
	ClientBuffer = getEnvInt("CLIENT_BUFFER", 64)
	MaxNameLength = getEnvInt("MAX_NAME_LENGTH", 16)
	StatQueue = getEnvInt("STAT_QUEUE", 1024)
	LeaderboardLen = getEnvInt("LEADERBOARD_LENGTH", 10)
}

// Load reads the given .env files, or .env when none are given, into the
// environment and refreshes the tuning variables. Missing files are
// ignored, variables already set in the environment win.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "unable to load %s", f)
		}
	}
	refresh()
	return nil
}

// Rules returns the game settings, starting from rules.DefaultConfig.
func Rules() rules.Config {
	d := rules.DefaultConfig()
	return rules.Config{
		Width:           getEnvInt("BOARD_WIDTH", d.Width),
		Height:          getEnvInt("BOARD_HEIGHT", d.Height),
		MinFPS:          getEnvInt("MIN_FPS", d.MinFPS),
		MaxFPS:          getEnvInt("MAX_FPS", d.MaxFPS),
		StartingFPS:     getEnvInt("STARTING_FPS", d.StartingFPS),
		DefaultFood:     getEnvInt("DEFAULT_FOOD", d.DefaultFood),
		FoodGrowth:      getEnvInt("FOOD_GROWTH", d.FoodGrowth),
		FoodColor:       getEnvString("FOOD_COLOR", d.FoodColor),
		SwapFoodColor:   getEnvString("SWAP_FOOD_COLOR", d.SwapFoodColor),
		SwapChance:      getEnvInt("SWAP_CHANCE", d.SwapChance),
		StartLength:     getEnvInt("START_LENGTH", d.StartLength),
		MinStartLength:  getEnvInt("MIN_START_LENGTH", d.MinStartLength),
		MaxStartLength:  getEnvInt("MAX_START_LENGTH", d.MaxStartLength),
		KillGrowth:      getEnvInt("KILL_GROWTH", d.KillGrowth),
		MaxBots:         getEnvInt("MAX_BOTS", d.MaxBots),
		DefaultBots:     getEnvInt("DEFAULT_BOTS", d.DefaultBots),
		BotWanderChance: getEnvInt("BOT_WANDER_CHANCE", d.BotWanderChance),
		SpawnProbes:     getEnvInt("SPAWN_PROBES", d.SpawnProbes),
	}
}

// SetupLogging configures logrus from LOG_LEVEL and LOG_FORMAT.
func SetupLogging() {
	level, err := log.ParseLevel(getEnvString("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stdout)
}

func getEnvString(varName, defaults string) string {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	return val
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}
