package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"school-trivia/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines stay in process; Redis only carries a liveness marker per hosted
// game so other instances can tell which game IDs are taken.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	games  map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		games:  make(map[string]*app.Game),
	}
}

func (s *SessionStore) GetOrCreate(gameID string, create func() *app.Game) *app.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game, ok := s.games[gameID]; ok {
		return game
	}
	game := create()
	s.games[gameID] = game
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(gameID), "1", s.ttl).Err()
	return game
}

func (s *SessionStore) Get(gameID string) (*app.Game, bool) {
	s.mu.RLock()
	game, ok := s.games[gameID]
	s.mu.RUnlock()
	if ok {
		_ = s.client.Expire(context.Background(), s.key(gameID), s.ttl).Err()
	}
	return game, ok
}

func (s *SessionStore) DeleteIfEmpty(gameID string) {
	s.mu.Lock()
	game, ok := s.games[gameID]
	if !ok || !game.IsEmpty() {
		s.mu.Unlock()
		return
	}
	delete(s.games, gameID)
	s.mu.Unlock()

	_ = s.client.Del(context.Background(), s.key(gameID)).Err()
	game.Close()
}

// Live reports whether any instance marked gameID as hosted.
func (s *SessionStore) Live(ctx context.Context, gameID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(gameID)).Result()
	return n > 0, err
}

func (s *SessionStore) key(gameID string) string {
	return "game:session:" + gameID
}
