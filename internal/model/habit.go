package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HabitStore defines persistence operations for habits.
type HabitStore interface {
	Create(ctx context.Context, habit Habit) (Habit, error)
	GetByID(ctx context.Context, id uuid.UUID) (Habit, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Habit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Habit represents a tracked behavior owned by exactly one user.
type Habit struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// CreateHabitParams contains parameters to create a habit.
type CreateHabitParams struct {
	UserID      uuid.UUID
	Name        string
	Description string
}

// HabitStats holds per-habit counters derived from the completion ledger.
type HabitStats struct {
	TotalCompletions int
	CompletedToday   bool
}

// HabitWithStats pairs a habit with its derived stats for listings.
type HabitWithStats struct {
	Habit Habit
	Stats HabitStats
}
