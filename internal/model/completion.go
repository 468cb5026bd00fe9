package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical calendar-day format used by the ledger.
const DateLayout = "2006-01-02"

// CompletionStore defines persistence operations for completion records.
type CompletionStore interface {
	Create(ctx context.Context, completion Completion) (Completion, error)
	GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (Completion, error)
	GetByHabitID(ctx context.Context, habitID uuid.UUID) ([]Completion, error)
	CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error)
	DeleteByHabitID(ctx context.Context, habitID uuid.UUID) error
}

// Completion records that a habit was performed on a calendar day.
// At most one completion may exist per (habit, date) pair; the pair is
// unique at the storage level.
type Completion struct {
	ID          uuid.UUID
	HabitID     uuid.UUID
	Date        string // YYYY-MM-DD, server-local
	CompletedAt time.Time
}
