package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/habitkeeper-server/internal/model"
)

var _ model.CompletionStore = (*CompletionRepository)(nil)

type CompletionRepository struct {
	db *Connection
}

func NewCompletionRepository(db *Connection) *CompletionRepository {
	return &CompletionRepository{
		db: db,
	}
}

// Create inserts a completion row. The (habit_id, date) pair is unique, so
// under concurrent inserts for the same day exactly one succeeds and the
// others observe model.ErrDuplicate.
func (r *CompletionRepository) Create(ctx context.Context, completion model.Completion) (model.Completion, error) {
	query := `INSERT INTO completions (id, habit_id, date, completed_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, habit_id, date, completed_at`

	var saved model.Completion
	err := r.db.QueryRow(ctx, query,
		completion.ID, completion.HabitID, completion.Date, completion.CompletedAt,
	).Scan(
		&saved.ID, &saved.HabitID, &saved.Date, &saved.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Completion{}, model.ErrDuplicate
		}
		return model.Completion{}, fmt.Errorf("failed to create completion: %w", err)
	}

	return saved, nil
}

func (r *CompletionRepository) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (model.Completion, error) {
	query := `SELECT id, habit_id, date, completed_at
			  FROM completions WHERE habit_id = $1 AND date = $2`

	var completion model.Completion
	err := r.db.QueryRow(ctx, query, habitID, date).Scan(
		&completion.ID, &completion.HabitID, &completion.Date, &completion.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Completion{}, model.ErrNotFound
		}
		return model.Completion{}, fmt.Errorf("failed to get completion by habit and date: %w", err)
	}

	return completion, nil
}

func (r *CompletionRepository) GetByHabitID(ctx context.Context, habitID uuid.UUID) ([]model.Completion, error) {
	query := `SELECT id, habit_id, date, completed_at
			  FROM completions WHERE habit_id = $1
			  ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completions by habit id: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		var completion model.Completion
		if err := rows.Scan(
			&completion.ID, &completion.HabitID, &completion.Date, &completion.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completions = append(completions, completion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completions: %w", err)
	}

	return completions, nil
}

func (r *CompletionRepository) CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM completions WHERE habit_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, habitID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}

	return count, nil
}

// DeleteByHabitID removes every completion for a habit. Deleting zero rows is
// not an error.
func (r *CompletionRepository) DeleteByHabitID(ctx context.Context, habitID uuid.UUID) error {
	const query = `DELETE FROM completions WHERE habit_id = $1`

	if _, err := r.db.Exec(ctx, query, habitID); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}

	return nil
}
