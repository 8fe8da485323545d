package memory

import (
	"testing"

	"school-trivia/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	created := 0
	create := func() *app.Game {
		created++
		return app.NewGame("game-1")
	}

	game := store.GetOrCreate("game-1", create)
	if game == nil || game.ID() != "game-1" {
		t.Fatalf("expected game-1, got %v", game)
	}
	if again := store.GetOrCreate("game-1", create); again != game || created != 1 {
		t.Fatalf("expected existing game reused, created %d", created)
	}
	if _, ok := store.Get("game-1"); !ok {
		t.Fatalf("expected game present")
	}

	store.DeleteIfEmpty("game-1")
	if _, ok := store.Get("game-1"); ok {
		t.Fatalf("expected game removed when empty")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}
