package engine

import (
	"testing"

	"school-trivia/internal/domain"
)

func TestRankKeepsInputOrderForTies(t *testing.T) {
	standings := Rank([]domain.Participant{
		{ID: 0, Name: "A", Score: 10},
		{ID: 1, Name: "B", Score: 10},
		{ID: 2, Name: "C", Score: 5},
	})

	want := []struct {
		name     string
		position int
		medal    domain.Medal
	}{
		{"A", 1, domain.MedalGold},
		{"B", 2, domain.MedalSilver},
		{"C", 3, domain.MedalBronze},
	}
	for i, w := range want {
		got := standings[i]
		if got.Participant.Name != w.name || got.Position != w.position || got.Medal != w.medal {
			t.Fatalf("standing %d: expected %s/%d/%s, got %+v", i, w.name, w.position, w.medal, got)
		}
	}
}

func TestRankTwoWayDrawUsesZeroPosition(t *testing.T) {
	standings := Rank([]domain.Participant{
		{ID: 0, Name: "A", Score: 7},
		{ID: 1, Name: "B", Score: 7},
	})
	for _, s := range standings {
		if s.Position != 0 || s.Medal != domain.MedalNone {
			t.Fatalf("expected draw sentinel, got %+v", s)
		}
	}
	if standings[0].Participant.Name != "A" {
		t.Fatalf("expected input order preserved, got %s first", standings[0].Participant.Name)
	}
}

func TestRankSortsDescending(t *testing.T) {
	standings := Rank([]domain.Participant{
		{ID: 0, Name: "low", Score: 1},
		{ID: 1, Name: "high", Score: 9},
		{ID: 2, Name: "mid", Score: 4},
		{ID: 3, Name: "none", Score: 0},
	})
	names := []string{"high", "mid", "low", "none"}
	for i, name := range names {
		if standings[i].Participant.Name != name || standings[i].Position != i+1 {
			t.Fatalf("position %d: expected %s, got %+v", i+1, name, standings[i])
		}
	}
	if standings[3].Medal != domain.MedalNone {
		t.Fatalf("fourth place should have no medal")
	}
}

func TestRankTwoParticipantsWithWinner(t *testing.T) {
	standings := Rank([]domain.Participant{
		{ID: 0, Name: "A", Score: 3},
		{ID: 1, Name: "B", Score: 5},
	})
	if standings[0].Participant.Name != "B" || standings[0].Position != 1 || standings[1].Position != 2 {
		t.Fatalf("unexpected standings %+v", standings)
	}
}
