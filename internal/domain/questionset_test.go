package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestLoadQuestionsRejectsBadRecords(t *testing.T) {
	cases := []struct {
		name  string
		raw   []Question
		index int
	}{
		{
			name: "single option",
			raw: []Question{
				{ID: "ok", Options: []string{"a", "b"}, CorrectIndex: 1},
				{ID: "bad", Options: []string{"a"}, CorrectIndex: 0},
			},
			index: 1,
		},
		{
			name:  "correct index too large",
			raw:   []Question{{ID: "bad", Options: []string{"a", "b"}, CorrectIndex: 2}},
			index: 0,
		},
		{
			name:  "negative correct index",
			raw:   []Question{{ID: "bad", Options: []string{"a", "b"}, CorrectIndex: -1}},
			index: 0,
		},
		{
			name:  "unknown difficulty",
			raw:   []Question{{ID: "bad", Options: []string{"a", "b"}, Difficulty: "extreme"}},
			index: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadQuestions(tc.raw)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Index != tc.index || verr.QuestionID != "bad" {
				t.Fatalf("expected first offending record %d, got %+v", tc.index, verr)
			}
		})
	}
}

func TestLoadQuestionsEmptyIsValid(t *testing.T) {
	set, err := LoadQuestions(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %d", set.Len())
	}
}

func TestFilterByDifficultyKeepsOrder(t *testing.T) {
	set := MustLoadQuestions([]Question{
		{ID: "1", Options: []string{"a", "b"}, Difficulty: DifficultyEasy},
		{ID: "2", Options: []string{"a", "b"}, Difficulty: DifficultyHard},
		{ID: "3", Options: []string{"a", "b"}, Difficulty: DifficultyEasy},
	})

	easy := set.FilterByDifficulty(DifficultyEasy)
	if easy.Len() != 2 || easy.At(0).ID != "1" || easy.At(1).ID != "3" {
		t.Fatalf("unexpected easy subset %+v", easy.Questions())
	}
	if set.Len() != 3 {
		t.Fatalf("filter mutated source set")
	}
	if all := set.FilterByDifficulty(DifficultyAll); all.Len() != 3 {
		t.Fatalf("expected all questions, got %d", all.Len())
	}
}

func TestFilterByCategoryAndOrder(t *testing.T) {
	set := MustLoadQuestions([]Question{
		{ID: "b", Options: []string{"a", "b"}, Category: "football", Order: 2},
		{ID: "a", Options: []string{"a", "b"}, Category: "football", Order: 1},
		{ID: "c", Options: []string{"a", "b"}, Category: "countries", Order: 0},
	})

	football := set.FilterByCategory("football").SortedByOrder()
	if football.Len() != 2 || football.At(0).ID != "a" || football.At(1).ID != "b" {
		t.Fatalf("unexpected football round %+v", football.Questions())
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	raw := make([]Question, 10)
	for i := range raw {
		raw[i] = Question{ID: string(rune('a' + i)), Options: []string{"x", "y"}}
	}
	set := MustLoadQuestions(raw)

	first := set.Shuffle(rand.New(rand.NewSource(42)))
	second := set.Shuffle(rand.New(rand.NewSource(42)))
	for i := 0; i < set.Len(); i++ {
		if first.At(i).ID != second.At(i).ID {
			t.Fatalf("same seed produced different order at %d", i)
		}
	}
	if set.At(0).ID != "a" {
		t.Fatalf("shuffle mutated source set")
	}
}

func TestQuestionsAreCopied(t *testing.T) {
	raw := []Question{{ID: "1", Options: []string{"a", "b"}}}
	set := MustLoadQuestions(raw)
	raw[0].Options[0] = "changed"
	if set.At(0).Options[0] != "a" {
		t.Fatalf("set shares option storage with caller")
	}
}
