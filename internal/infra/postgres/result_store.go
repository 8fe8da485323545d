package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"school-trivia/internal/domain"
)

// ResultStore persists participant results in the results table.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Save(ctx context.Context, r domain.ResultRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO results (id, game_id, participant_name, score, total_questions, percentage, difficulty, result_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		r.ID, r.GameID, r.ParticipantName, r.Score, r.TotalQuestions, r.Percentage, string(r.Difficulty), string(r.ResultType), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// List returns results newest first; unset or DifficultyAll returns all.
func (s *ResultStore) List(ctx context.Context, difficulty domain.Difficulty) ([]domain.ResultRecord, error) {
	filter := string(difficulty)
	if difficulty == domain.DifficultyAll {
		filter = ""
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, game_id, participant_name, score, total_questions, percentage,
		       COALESCE(difficulty, ''), result_type, created_at
		FROM results
		WHERE $1 = '' OR difficulty = $1
		ORDER BY created_at DESC, id`, filter)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []domain.ResultRecord
	for rows.Next() {
		var r domain.ResultRecord
		if err := rows.Scan(&r.ID, &r.GameID, &r.ParticipantName, &r.Score, &r.TotalQuestions, &r.Percentage, &r.Difficulty, &r.ResultType, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ResultStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}
