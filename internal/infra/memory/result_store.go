package memory

import (
	"context"
	"sync"

	"school-trivia/internal/domain"
)

// ResultStore keeps result records in memory, newest first.
type ResultStore struct {
	mu      sync.RWMutex
	records []domain.ResultRecord
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Save(_ context.Context, record domain.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.ResultRecord{record}, s.records...)
	return nil
}

// List returns records of the given difficulty; unset or DifficultyAll returns all.
func (s *ResultStore) List(_ context.Context, difficulty domain.Difficulty) ([]domain.ResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ResultRecord, 0, len(s.records))
	for _, r := range s.records {
		if difficulty != domain.DifficultyUnset && difficulty != domain.DifficultyAll && r.Difficulty != difficulty {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *ResultStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
	return nil
}
