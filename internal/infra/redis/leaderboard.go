package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"school-trivia/internal/domain"
)

const (
	leaderboardScoresKey  = "leaderboard:scores"
	leaderboardEntriesKey = "leaderboard:entries"
)

// Leaderboard stores entries as a sorted set of IDs by score plus a hash of
// the JSON entries, trimmed to capacity after every insert.
type Leaderboard struct {
	client   *redis.Client
	capacity int
}

func NewLeaderboard(client *redis.Client, capacity int) *Leaderboard {
	if capacity <= 0 {
		capacity = 10
	}
	return &Leaderboard{client: client, capacity: capacity}
}

func (l *Leaderboard) Add(ctx context.Context, entry domain.LeaderboardEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal leaderboard entry: %w", err)
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, leaderboardEntriesKey, entry.ID, data)
		pipe.ZAdd(ctx, leaderboardScoresKey, redis.Z{Score: float64(entry.Score), Member: entry.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("add leaderboard entry: %w", err)
	}
	return l.trim(ctx)
}

// trim drops everything ranked below capacity from both keys.
func (l *Leaderboard) trim(ctx context.Context) error {
	stale, err := l.client.ZRange(ctx, leaderboardScoresKey, 0, int64(-l.capacity-1)).Result()
	if err != nil {
		return fmt.Errorf("read stale leaderboard entries: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}
	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByRank(ctx, leaderboardScoresKey, 0, int64(-l.capacity-1))
		pipe.HDel(ctx, leaderboardEntriesKey, stale...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("trim leaderboard: %w", err)
	}
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > l.capacity {
		limit = l.capacity
	}
	ids, err := l.client.ZRevRange(ctx, leaderboardScoresKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	raw, err := l.client.HMGet(ctx, leaderboardEntriesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard entries: %w", err)
	}

	out := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(s), &entry); err != nil {
			return nil, fmt.Errorf("decode leaderboard entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}
