package memory

import (
	"context"
	"sort"
	"sync"

	"school-trivia/internal/domain"
)

// Leaderboard keeps the top entries by score in memory.
type Leaderboard struct {
	capacity int

	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
}

func NewLeaderboard(capacity int) *Leaderboard {
	if capacity <= 0 {
		capacity = 10
	}
	return &Leaderboard{capacity: capacity}
}

// Add inserts entry and trims the board to capacity. Equal scores keep
// insertion order.
func (l *Leaderboard) Add(_ context.Context, entry domain.LeaderboardEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Score > l.entries[j].Score
	})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	return nil
}

func (l *Leaderboard) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	return append([]domain.LeaderboardEntry(nil), l.entries[:limit]...), nil
}
