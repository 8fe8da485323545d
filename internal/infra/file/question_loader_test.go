package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"school-trivia/internal/domain"
)

func TestLoadYAMLBank(t *testing.T) {
	dir := t.TempDir()
	raw := `
questions:
  - id: c1
    text: Capital of Peru?
    options: [Lima, Quito, Bogota]
    correctIndex: 0
    category: countries
    icon: "🇵🇪"
    order: 2
  - id: c2
    text: Capital of Chile?
    options: [Santiago, Lima]
    correctIndex: 0
    difficulty: easy
    order: 1
`
	writeFile(t, filepath.Join(dir, "south-america.yaml"), raw)

	set, err := NewQuestionLoader(dir).LoadQuestions(context.Background(), "south-america")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	first := set.At(0)
	if first.ID != "c1" || first.Category != "countries" || first.Icon != "🇵🇪" || len(first.Options) != 3 {
		t.Fatalf("unexpected first question %+v", first)
	}
	if set.At(1).Difficulty != domain.DifficultyEasy {
		t.Fatalf("expected easy difficulty, got %q", set.At(1).Difficulty)
	}
}

func TestLoadJSONListBank(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "maths.json"), `[{"id":"m1","text":"2+2","options":["3","4"],"correctIndex":1,"difficulty":"easy"}]`)

	set, err := NewQuestionLoader(dir).LoadQuestions(context.Background(), "maths")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Len() != 1 || set.At(0).CorrectIndex != 1 {
		t.Fatalf("unexpected bank %+v", set.Questions())
	}
}

func TestCategoryKeyedBank(t *testing.T) {
	raw := `{
  "football": [{"id":"f1","text":"Players per side?","options":["9","11"],"correctIndex":1}],
  "countries": [{"id":"c1","text":"Capital of Peru?","options":["Lima","Quito"],"correctIndex":0}]
}`
	set, err := ReadBank(strings.NewReader(raw), FormatJSON)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	if set.FilterByCategory("football").Len() != 1 || set.At(0).Category != "countries" {
		t.Fatalf("expected categories taken from keys, got %+v", set.Questions())
	}
}

func TestCategoryKeyedExportWithQuestionAndCorrect(t *testing.T) {
	raw := `{
  "countries": [
    {"id": "countries_1", "question": "Capital of France?", "options": ["Berlin", "Madrid", "Paris", "Rome"], "correct": 2, "icon": "🇫🇷"}
  ],
  "speed": [
    {"id": "speed_1", "question": "5 x 5?", "options": ["10", "25"], "correct": 1, "icon": "⚡"}
  ]
}`
	set, err := ReadBank(strings.NewReader(raw), FormatJSON)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	q := set.FilterByCategory("countries").At(0)
	if q.ID != "countries_1" || q.Text != "Capital of France?" || q.CorrectIndex != 2 || q.Icon != "🇫🇷" {
		t.Fatalf("export decoded lossily: %+v", q)
	}
	if s := set.FilterByCategory("speed").At(0); s.Text != "5 x 5?" || s.CorrectIndex != 1 {
		t.Fatalf("unexpected speed question %+v", s)
	}
}

func TestEditorExportWithoutIDs(t *testing.T) {
	raw := `[
    {"question": "How many legs does a spider have?", "options": ["6", "8"], "correct": 1, "difficulty": "easy"},
    {"question": "Boiling point of water in C?", "options": ["90", "100"], "correct": 1, "difficulty": "medium"}
]`
	set, err := ReadBank(strings.NewReader(raw), FormatJSON)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	first, second := set.At(0), set.At(1)
	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", first.ID, second.ID)
	}
	if first.Text != "How many legs does a spider have?" || first.CorrectIndex != 1 || first.Difficulty != domain.DifficultyEasy {
		t.Fatalf("unexpected first question %+v", first)
	}
}

func TestRecordsNeedTextAndAnswer(t *testing.T) {
	cases := map[string]string{
		"missing question text": `[{"id":"ok","text":"a","options":["x","y"],"correctIndex":0},{"id":"blank","options":["x","y"],"correct":1}]`,
		"missing correct answer": `[{"id":"ok","text":"a","options":["x","y"],"correctIndex":0},{"id":"blank","question":"b","options":["x","y"]}]`,
	}
	for reason, raw := range cases {
		_, err := ReadBank(strings.NewReader(raw), FormatJSON)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", reason, err)
		}
		if verr.Index != 1 || verr.QuestionID != "blank" || verr.Reason != reason {
			t.Fatalf("%s: unexpected error %+v", reason, verr)
		}
	}
}

func TestLoadRejectsInvalidQuestions(t *testing.T) {
	_, err := ReadBank(strings.NewReader(`{"questions":[{"id":"ok","text":"a","options":["x","y"],"correctIndex":0},{"id":"bad","text":"b","options":["x","y"],"correctIndex":5}]}`), FormatJSON)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Index != 1 || verr.QuestionID != "bad" {
		t.Fatalf("expected record 1 (bad), got %+v", verr)
	}
}

func TestLoadMissingBank(t *testing.T) {
	loader := NewQuestionLoader(t.TempDir())
	for _, id := range []string{"nope", "../etc", ""} {
		if _, err := loader.LoadQuestions(context.Background(), id); !errors.Is(err, domain.ErrBankNotFound) {
			t.Fatalf("expected bank not found for %q, got %v", id, err)
		}
	}
}

func TestEmptyBankIsValid(t *testing.T) {
	set, err := ReadBank(strings.NewReader("  \n"), FormatYAML)
	if err != nil {
		t.Fatalf("empty bank: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %d", set.Len())
	}
}

func TestFormatFor(t *testing.T) {
	if f, ok := FormatFor("bank.YML"); !ok || f != FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, ok)
	}
	if _, ok := FormatFor("bank.csv"); ok {
		t.Fatalf("csv should not be recognised")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
