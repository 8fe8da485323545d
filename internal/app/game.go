package app

import (
	"sync"

	"school-trivia/internal/domain"
	"school-trivia/internal/engine"
)

// Game is one hosted engine plus the bookkeeping the service needs around it:
// connected viewers and whether the finished game has been persisted.
type Game struct {
	id     string
	engine *engine.Engine

	mu       sync.Mutex
	viewers  int
	recorded bool
	unwatch  func()
}

// NewGame is exported for infrastructure layers that need to seed games.
func NewGame(id string, opts ...engine.Option) *Game {
	return &Game{id: id, engine: engine.New(opts...)}
}

func (g *Game) ID() string { return g.id }

// State returns the engine snapshot.
func (g *Game) State() domain.SessionState {
	return g.engine.State()
}

// IsEmpty reports whether no viewer is attached.
func (g *Game) IsEmpty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewers == 0
}

// Close stops the completion watcher and abandons the running game.
func (g *Game) Close() {
	g.mu.Lock()
	unwatch := g.unwatch
	g.unwatch = nil
	g.mu.Unlock()
	if unwatch != nil {
		unwatch()
	}
	g.engine.Reset()
}

func (g *Game) attach() {
	g.mu.Lock()
	g.viewers++
	g.mu.Unlock()
}

func (g *Game) detach() {
	g.mu.Lock()
	if g.viewers > 0 {
		g.viewers--
	}
	g.mu.Unlock()
}

// watch calls onComplete each time the engine reports a finished game.
func (g *Game) watch(onComplete func(*Game)) {
	g.mu.Lock()
	if g.unwatch != nil {
		g.mu.Unlock()
		return
	}
	updates, cancel := g.engine.Subscribe()
	g.unwatch = cancel
	g.mu.Unlock()

	go func() {
		for state := range updates {
			if state.Phase == domain.PhaseComplete {
				onComplete(g)
			}
		}
	}()
}

func (g *Game) rearm() {
	g.mu.Lock()
	g.recorded = false
	g.mu.Unlock()
}

// claimRecord returns true exactly once per finished game.
func (g *Game) claimRecord() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.recorded {
		return false
	}
	g.recorded = true
	return true
}
