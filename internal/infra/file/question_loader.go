package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"school-trivia/internal/domain"
)

// Format is the encoding of an imported question bank.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var extensions = []struct {
	ext    string
	format Format
}{
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
	{".json", FormatJSON},
}

// QuestionLoader reads banks from <dir>/<bankID>.{yaml,yml,json}.
type QuestionLoader struct {
	dir string
}

func NewQuestionLoader(dir string) *QuestionLoader {
	return &QuestionLoader{dir: dir}
}

func (l *QuestionLoader) LoadQuestions(_ context.Context, bankID string) (domain.QuestionSet, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) || bankID == ".." {
		return domain.QuestionSet{}, fmt.Errorf("%w: invalid bank id %q", domain.ErrBankNotFound, bankID)
	}
	for _, e := range extensions {
		path := filepath.Join(l.dir, bankID+e.ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.QuestionSet{}, fmt.Errorf("open bank %s: %w", path, err)
		}
		set, err := ReadBank(f, e.format)
		f.Close()
		if err != nil {
			return domain.QuestionSet{}, fmt.Errorf("read bank %s: %w", path, err)
		}
		return set, nil
	}
	return domain.QuestionSet{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
}

// ReadBank decodes and validates a bank. Three layouts are accepted: a bare
// list, {"questions": [...]}, and a map of category to questions where the key
// fills in each question's category. Records may spell the prompt and answer
// as text/correctIndex or as question/correct; records without an id get one.
func ReadBank(r io.Reader, format Format) (domain.QuestionSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.QuestionSet{}, err
	}
	records, err := decode(data, format)
	if err != nil {
		return domain.QuestionSet{}, err
	}
	raw := make([]domain.Question, 0, len(records))
	for i, rec := range records {
		q, err := rec.question(i)
		if err != nil {
			return domain.QuestionSet{}, err
		}
		raw = append(raw, q)
	}
	return domain.LoadQuestions(raw)
}

// bankRecord is one question as written in a bank file.
type bankRecord struct {
	ID           string            `json:"id" yaml:"id"`
	Text         string            `json:"text" yaml:"text"`
	Question     string            `json:"question" yaml:"question"`
	Options      []string          `json:"options" yaml:"options"`
	CorrectIndex *int              `json:"correctIndex" yaml:"correctIndex"`
	Correct      *int              `json:"correct" yaml:"correct"`
	Difficulty   domain.Difficulty `json:"difficulty" yaml:"difficulty"`
	Category     string            `json:"category" yaml:"category"`
	Icon         string            `json:"icon" yaml:"icon"`
	Order        int               `json:"order" yaml:"order"`
}

func (rec bankRecord) question(i int) (domain.Question, error) {
	text := strings.TrimSpace(rec.Text)
	if text == "" {
		text = strings.TrimSpace(rec.Question)
	}
	if text == "" {
		return domain.Question{}, &domain.ValidationError{Index: i, QuestionID: rec.ID, Reason: "missing question text"}
	}
	correct := rec.CorrectIndex
	if correct == nil {
		correct = rec.Correct
	}
	if correct == nil {
		return domain.Question{}, &domain.ValidationError{Index: i, QuestionID: rec.ID, Reason: "missing correct answer"}
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Question{
		ID:           id,
		Text:         text,
		Options:      rec.Options,
		CorrectIndex: *correct,
		Difficulty:   rec.Difficulty,
		Category:     rec.Category,
		Icon:         rec.Icon,
		Order:        rec.Order,
	}, nil
}

func decode(data []byte, format Format) ([]bankRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var (
		list  []bankRecord
		byKey map[string][]bankRecord
	)
	switch format {
	case FormatJSON:
		var err error
		if trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &list)
		} else {
			err = json.Unmarshal(trimmed, &byKey)
		}
		if err != nil {
			return nil, fmt.Errorf("decode json bank: %w", err)
		}
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("decode yaml bank: %w", err)
		}
		var err error
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			err = node.Decode(&list)
		} else {
			err = node.Decode(&byKey)
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml bank: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bank format %q", format)
	}
	if byKey == nil {
		return list, nil
	}
	if qs, ok := byKey["questions"]; ok && len(byKey) == 1 {
		return qs, nil
	}
	return flattenCategories(byKey), nil
}

func flattenCategories(byKey map[string][]bankRecord) []bankRecord {
	categories := make([]string, 0, len(byKey))
	for c := range byKey {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var out []bankRecord
	for _, c := range categories {
		for _, rec := range byKey[c] {
			if rec.Category == "" {
				rec.Category = c
			}
			out = append(out, rec)
		}
	}
	return out
}

// FormatFor guesses the format from a file name.
func FormatFor(name string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format, true
		}
	}
	return "", false
}
