package engine

import (
	"errors"
	"testing"

	"school-trivia/internal/domain"
)

func TestPlanPartitionsFairly(t *testing.T) {
	for participants := 1; participants <= 7; participants++ {
		for questions := 0; questions <= 25; questions++ {
			plan, err := Plan(participants, questions)
			if err != nil {
				t.Fatalf("plan(%d,%d): %v", participants, questions, err)
			}
			if plan.Participants() != participants || plan.Questions() != questions {
				t.Fatalf("plan(%d,%d): reports %d participants and %d questions", participants, questions, plan.Participants(), plan.Questions())
			}

			seen := make([]int, questions)
			minCount, maxCount := questions+1, -1
			for p := 0; p < participants; p++ {
				owned := plan.QuestionsFor(p)
				for i, q := range owned {
					if i > 0 && owned[i-1] >= q {
						t.Fatalf("plan(%d,%d): participant %d not ascending: %v", participants, questions, p, owned)
					}
					seen[q]++
				}
				if len(owned) < minCount {
					minCount = len(owned)
				}
				if len(owned) > maxCount {
					maxCount = len(owned)
				}
			}
			for q, n := range seen {
				if n != 1 {
					t.Fatalf("plan(%d,%d): question %d assigned %d times", participants, questions, q, n)
				}
			}
			if maxCount-minCount > 1 {
				t.Fatalf("plan(%d,%d): unfair counts min=%d max=%d", participants, questions, minCount, maxCount)
			}
		}
	}
}

func TestPlanOwnerLookup(t *testing.T) {
	plan, err := Plan(3, 7)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for q := 0; q < 7; q++ {
		owner, err := plan.ParticipantOwning(q)
		if err != nil {
			t.Fatalf("owner of %d: %v", q, err)
		}
		if owner != q%3 {
			t.Fatalf("expected owner %d for question %d, got %d", q%3, q, owner)
		}
	}
	if _, err := plan.ParticipantOwning(7); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlanRejectsZeroParticipants(t *testing.T) {
	if _, err := Plan(0, 3); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
}
