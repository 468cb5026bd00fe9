package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Ledger maintains the per-(habit, date) completion records. Every habit
// access is ownership-scoped before the ledger is touched.
type Ledger struct {
	habitStore      model.HabitStore
	completionStore model.CompletionStore
	logger          *logger.Logger
}

func NewLedger(
	habitStore model.HabitStore,
	completionStore model.CompletionStore,
	logger *logger.Logger,
) *Ledger {
	return &Ledger{
		habitStore:      habitStore,
		completionStore: completionStore,
		logger:          logger,
	}
}

// Complete records a completion for today, computed from server-local time.
// A second completion for the same day fails and carries the existing record.
func (s *Ledger) Complete(ctx context.Context, userID, habitID uuid.UUID) (model.Completion, error) {
	if _, err := ownedHabit(ctx, s.habitStore, userID, habitID); err != nil {
		return model.Completion{}, err
	}

	now := time.Now()
	completion := model.Completion{
		ID:          uuid.New(),
		HabitID:     habitID,
		Date:        now.Format(model.DateLayout),
		CompletedAt: now,
	}

	saved, err := s.completionStore.Create(ctx, completion)
	if errors.Is(err, model.ErrDuplicate) {
		// A concurrent insert may already hold the (habit, date) slot;
		// return the stored record.
		existing, getErr := s.completionStore.GetByHabitAndDate(ctx, habitID, completion.Date)
		if getErr != nil {
			return model.Completion{}, fmt.Errorf("failed to get existing completion: %w", getErr)
		}
		s.logger.Info("Ledger service: habit already completed",
			"habit_id", habitID,
			"date", completion.Date)
		return model.Completion{}, apierrors.NewErrAlreadyCompleted(existing)
	}
	if err != nil {
		s.logger.Error("Ledger service: failed to create completion",
			"habit_id", habitID,
			"date", completion.Date,
			"error", err.Error())
		return model.Completion{}, fmt.Errorf("failed to create completion: %w", err)
	}

	s.logger.Info("Ledger service: habit completed",
		"habit_id", habitID,
		"date", saved.Date)

	return saved, nil
}

// StatusOn reports whether the habit was completed on the given date. Not
// completed is a valid result, not an error. The date is validated before any
// storage access.
func (s *Ledger) StatusOn(ctx context.Context, userID, habitID uuid.UUID, date string) (model.Habit, *model.Completion, error) {
	if !dateFormat.MatchString(date) {
		return model.Habit{}, nil, apierrors.NewErrInvalidDate()
	}

	habit, err := ownedHabit(ctx, s.habitStore, userID, habitID)
	if err != nil {
		return model.Habit{}, nil, err
	}

	completion, err := s.completionStore.GetByHabitAndDate(ctx, habitID, date)
	if errors.Is(err, model.ErrNotFound) {
		return habit, nil, nil
	}
	if err != nil {
		return model.Habit{}, nil, fmt.Errorf("failed to get completion by habit and date: %w", err)
	}

	return habit, &completion, nil
}

// History returns all completions for the habit, most recent date first.
func (s *Ledger) History(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, []model.Completion, error) {
	habit, err := ownedHabit(ctx, s.habitStore, userID, habitID)
	if err != nil {
		return model.Habit{}, nil, err
	}

	completions, err := s.completionStore.GetByHabitID(ctx, habitID)
	if err != nil {
		return model.Habit{}, nil, fmt.Errorf("failed to get completions by habit id: %w", err)
	}

	return habit, completions, nil
}
