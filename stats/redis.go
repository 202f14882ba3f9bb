package stats

import (
	"context"
	"strconv"

	"github.com/battlesnakeio/arena/rules"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	leaderboardKey = "arena:leaderboard"
	statKeyPrefix  = "arena:stat:"
)

// Dial will create a new redis client for connectURL, see
// github.com/go-redis/redis/options.go for URL specifics. The client is
// tested for connectivity before it is returned.
func Dial(connectURL string) (*redis.Client, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "unable to connect")
	}
	return client, nil
}

type op struct {
	id    string
	field string
	del   bool
}

// Mirror is a Board that copies every change to redis so scores survive a
// restart of the leaderboard readers. The game loop never waits on redis:
// writes are queued and applied by Run, and dropped when the queue is full.
type Mirror struct {
	Board
	client *redis.Client
	ops    chan op
}

// NewMirror wraps b. queue is the number of pending writes kept before new
// ones are dropped.
func NewMirror(b Board, client *redis.Client, queue int) *Mirror {
	return &Mirror{
		Board:  b,
		client: client,
		ops:    make(chan op, queue),
	}
}

// IncreaseScore increments the score and queues the redis write.
func (m *Mirror) IncreaseScore(id string) {
	m.Board.IncreaseScore(id)
	m.enqueue(op{id: id, field: "score"})
}

// AddKill increments the kills and queues the redis write.
func (m *Mirror) AddKill(id string) {
	m.Board.AddKill(id)
	m.enqueue(op{id: id, field: "kills"})
}

// AddDeath increments the deaths and queues the redis write.
func (m *Mirror) AddDeath(id string) {
	m.Board.AddDeath(id)
	m.enqueue(op{id: id, field: "deaths"})
}

// Remove forgets the player here and in redis.
func (m *Mirror) Remove(id string) {
	m.Board.Remove(id)
	m.enqueue(op{id: id, del: true})
}

func (m *Mirror) enqueue(o op) {
	select {
	case m.ops <- o:
	default:
		log.WithField("PlayerID", o.id).Warn("stat mirror queue full, dropping write")
	}
}

// Run applies queued writes until ctx is done, then flushes what is left.
func (m *Mirror) Run(ctx context.Context) error {
	for {
		select {
		case o := <-m.ops:
			m.apply(o)
		case <-ctx.Done():
			for {
				select {
				case o := <-m.ops:
					m.apply(o)
				default:
					return nil
				}
			}
		}
	}
}

func (m *Mirror) apply(o op) {
	pipe := m.client.Pipeline()
	if o.del {
		pipe.Del(statKeyPrefix + o.id)
		pipe.ZRem(leaderboardKey, o.id)
	} else {
		pipe.HIncrBy(statKeyPrefix+o.id, o.field, 1)
		if o.field == "score" {
			pipe.ZIncrBy(leaderboardKey, 1, o.id)
		}
	}
	if _, err := pipe.Exec(); err != nil {
		log.WithError(err).WithField("PlayerID", o.id).Error("unable to mirror stat")
	}
}

// StoredStat reads the mirrored stat of a player from redis.
func (m *Mirror) StoredStat(id string) (rules.Stat, error) {
	fields, err := m.client.HGetAll(statKeyPrefix + id).Result()
	if err != nil {
		return rules.Stat{}, errors.Wrap(err, "unable to read stat")
	}
	s := rules.Stat{}
	s.Score, _ = strconv.Atoi(fields["score"])
	s.Kills, _ = strconv.Atoi(fields["kills"])
	s.Deaths, _ = strconv.Atoi(fields["deaths"])
	return s, nil
}

// StoredLeaderboard reads the n best scores from redis.
func (m *Mirror) StoredLeaderboard(n int) ([]Entry, error) {
	scores, err := m.client.ZRevRangeWithScores(leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read leaderboard")
	}
	entries := make([]Entry, 0, len(scores))
	for _, z := range scores {
		id, _ := z.Member.(string)
		entries = append(entries, Entry{PlayerID: id, Stat: rules.Stat{Score: int(z.Score)}})
	}
	return entries, nil
}
