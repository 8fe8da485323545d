package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-trivia/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(map[string][]domain.Question{
			"default": sampleQuestions(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	set, err := repo.GetQuestions(context.Background(), "default")
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuestions(context.Background(), "default"); err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(map[string][]domain.Question{
			"default": sampleQuestions(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuestions(context.Background(), "default")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuestions(context.Background(), "default")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}

	repo.Invalidate("default")
	_, _ = repo.GetQuestions(context.Background(), "default")
	if loader.calls != 3 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderErrors(t *testing.T) {
	loader := NewStaticQuestionLoader(map[string][]domain.Question{
		"broken": {{ID: "q1", Text: "?", Options: []string{"only"}}},
	})

	if _, err := loader.LoadQuestions(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected bank not found, got %v", err)
	}
	_, err := loader.LoadQuestions(context.Background(), "broken")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.QuestionID != "q1" {
		t.Fatalf("expected validation error for q1, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, bankID)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectIndex: 1, Difficulty: domain.DifficultyEasy},
		{ID: "q2", Text: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectIndex: 0, Category: "countries"},
	}
}
