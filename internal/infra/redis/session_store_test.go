package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"school-trivia/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)

	_ = store.GetOrCreate("game-1", func() *app.Game { return app.NewGame("game-1") })
	if !mr.Exists("game:session:game-1") {
		t.Fatalf("expected redis key to be set")
	}
	live, err := store.Live(context.Background(), "game-1")
	if err != nil || !live {
		t.Fatalf("expected game-1 live, got %v (%v)", live, err)
	}

	mr.FastForward(30 * time.Second)
	if _, ok := store.Get("game-1"); !ok {
		t.Fatalf("expected game-1 hosted")
	}
	if ttl := mr.TTL("game:session:game-1"); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed on access, got %v", ttl)
	}

	store.DeleteIfEmpty("game-1")
	if mr.Exists("game:session:game-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("game-1"); ok {
		t.Fatalf("expected game removed locally")
	}
}
