package domain

import (
	"math/rand"
	"sort"
)

// QuestionSet is an ordered question sequence. It is never mutated once built;
// every transformation returns a new set.
type QuestionSet struct {
	questions []Question
}

// LoadQuestions validates raw records and builds a set. The first offending
// record is reported as a *ValidationError.
func LoadQuestions(raw []Question) (QuestionSet, error) {
	out := make([]Question, 0, len(raw))
	for i, q := range raw {
		if err := validateQuestion(i, q); err != nil {
			return QuestionSet{}, err
		}
		out = append(out, cloneQuestion(q))
	}
	return QuestionSet{questions: out}, nil
}

// MustLoadQuestions is LoadQuestions for static fixtures; it panics on bad data.
func MustLoadQuestions(raw []Question) QuestionSet {
	set, err := LoadQuestions(raw)
	if err != nil {
		panic(err)
	}
	return set
}

func validateQuestion(i int, q Question) error {
	switch {
	case len(q.Options) < 2:
		return &ValidationError{Index: i, QuestionID: q.ID, Reason: "needs at least 2 options"}
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return &ValidationError{Index: i, QuestionID: q.ID, Reason: "correct index out of range"}
	case !q.Difficulty.Valid():
		return &ValidationError{Index: i, QuestionID: q.ID, Reason: "unknown difficulty " + string(q.Difficulty)}
	}
	return nil
}

func cloneQuestion(q Question) Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Len returns the number of questions.
func (s QuestionSet) Len() int { return len(s.questions) }

// At returns the question at index i. Callers must stay within [0, Len()).
func (s QuestionSet) At(i int) Question { return cloneQuestion(s.questions[i]) }

// Questions returns a copy of the underlying records.
func (s QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// FilterByDifficulty keeps questions tagged d, preserving order. DifficultyAll keeps everything.
func (s QuestionSet) FilterByDifficulty(d Difficulty) QuestionSet {
	if d == DifficultyAll {
		return s
	}
	return s.filter(func(q Question) bool { return q.Difficulty == d })
}

// FilterByCategory keeps questions of one category, preserving order.
func (s QuestionSet) FilterByCategory(category string) QuestionSet {
	return s.filter(func(q Question) bool { return q.Category == category })
}

func (s QuestionSet) filter(keep func(Question) bool) QuestionSet {
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return QuestionSet{questions: out}
}

// SortedByOrder returns the set stably sorted by the Order key.
func (s QuestionSet) SortedByOrder() QuestionSet {
	out := append([]Question(nil), s.questions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return QuestionSet{questions: out}
}

// Shuffle returns a permutation drawn from rng. Pass a seeded source for reproducible games.
func (s QuestionSet) Shuffle(rng *rand.Rand) QuestionSet {
	out := append([]Question(nil), s.questions...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return QuestionSet{questions: out}
}
