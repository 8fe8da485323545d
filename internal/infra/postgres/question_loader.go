package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"school-trivia/internal/domain"
)

// QuestionLoader loads question banks from the questions table.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

// LoadQuestions returns the bank ordered by sort_order. A bank without rows is
// reported as not found.
func (l *QuestionLoader) LoadQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, text, options, correct_index,
		       COALESCE(difficulty, ''), COALESCE(category, ''), COALESCE(icon, ''), sort_order
		FROM questions
		WHERE bank_id = $1
		ORDER BY sort_order, id`, bankID)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var raw []domain.Question
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.Text, &options, &q.CorrectIndex, &q.Difficulty, &q.Category, &q.Icon, &q.Order); err != nil {
			return domain.QuestionSet{}, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return domain.QuestionSet{}, fmt.Errorf("unmarshal options of %s: %w", q.ID, err)
		}
		raw = append(raw, q)
	}
	if err := rows.Err(); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load questions: %w", err)
	}
	if len(raw) == 0 {
		return domain.QuestionSet{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	return domain.LoadQuestions(raw)
}

// ReplaceBank swaps the contents of a bank in one transaction.
func (l *QuestionLoader) ReplaceBank(ctx context.Context, bankID string, set domain.QuestionSet) error {
	return l.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE bank_id = $1`, bankID); err != nil {
			return fmt.Errorf("clear bank: %w", err)
		}
		batch := &pgx.Batch{}
		for _, q := range set.Questions() {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("marshal options of %s: %w", q.ID, err)
			}
			batch.Queue(`
				INSERT INTO questions (id, bank_id, text, options, correct_index, difficulty, category, icon, sort_order)
				VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)`,
				q.ID, bankID, q.Text, string(options), q.CorrectIndex, string(q.Difficulty), q.Category, q.Icon, q.Order)
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert question %d: %w", i, err)
			}
		}
		return br.Close()
	})
}
