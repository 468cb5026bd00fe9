package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/habitkeeper-server/internal/model"
)

var _ model.HabitStore = (*HabitRepository)(nil)

type HabitRepository struct {
	db *Connection
}

func NewHabitRepository(db *Connection) *HabitRepository {
	return &HabitRepository{
		db: db,
	}
}

func (r *HabitRepository) Create(ctx context.Context, habit model.Habit) (model.Habit, error) {
	query := `INSERT INTO habits (id, user_id, name, description, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, name, description, created_at`

	var savedHabit model.Habit
	err := r.db.QueryRow(ctx, query,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.CreatedAt,
	).Scan(
		&savedHabit.ID, &savedHabit.UserID, &savedHabit.Name, &savedHabit.Description, &savedHabit.CreatedAt,
	)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	return savedHabit, nil
}

func (r *HabitRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Habit, error) {
	query := `SELECT id, user_id, name, description, created_at
			  FROM habits WHERE id = $1`

	var habit model.Habit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Habit{}, model.ErrNotFound
		}
		return model.Habit{}, fmt.Errorf("failed to get habit by id: %w", err)
	}

	return habit, nil
}

func (r *HabitRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Habit, error) {
	query := `SELECT id, user_id, name, description, created_at
			  FROM habits WHERE user_id = $1
			  ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits by user id: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var habit model.Habit
		if err := rows.Scan(
			&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	return habits, nil
}

func (r *HabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM habits WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
