package memory

import (
	"sync"

	"school-trivia/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu    sync.RWMutex
	games map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		games: make(map[string]*app.Game),
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
	return game
}

func (s *SessionStore) Get(gameID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[gameID]
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
	game.Close()
}

// Len reports how many games are hosted.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
