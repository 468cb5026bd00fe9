package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

type Habit struct {
	habitStore      model.HabitStore
	completionStore model.CompletionStore
	stats           *Stats
	logger          *logger.Logger
}

func NewHabit(
	habitStore model.HabitStore,
	completionStore model.CompletionStore,
	logger *logger.Logger,
) *Habit {
	return &Habit{
		habitStore:      habitStore,
		completionStore: completionStore,
		stats:           NewStats(completionStore, logger),
		logger:          logger,
	}
}

// ownedHabit resolves a habit and verifies ownership. A habit that does not
// exist and a habit owned by another user are indistinguishable to the caller.
func ownedHabit(ctx context.Context, store model.HabitStore, userID, habitID uuid.UUID) (model.Habit, error) {
	habit, err := store.GetByID(ctx, habitID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Habit{}, apierrors.NewErrHabitNotFound()
	}
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to get habit by id: %w", err)
	}
	if habit.UserID != userID {
		return model.Habit{}, apierrors.NewErrHabitNotFound()
	}
	return habit, nil
}

// List returns the user's habits with derived stats. An empty result is not
// an error.
func (s *Habit) List(ctx context.Context, userID uuid.UUID) ([]model.HabitWithStats, error) {
	habits, err := s.habitStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits by user id: %w", err)
	}

	result := make([]model.HabitWithStats, 0, len(habits))
	for _, habit := range habits {
		stats, err := s.stats.StatsFor(ctx, habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get stats for habit: %w", err)
		}
		result = append(result, model.HabitWithStats{Habit: habit, Stats: stats})
	}

	return result, nil
}

// Create persists a new habit owned by the user.
func (s *Habit) Create(ctx context.Context, params model.CreateHabitParams) (model.Habit, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Habit{}, apierrors.NewErrValidation("Habit name is required")
	}

	habit := model.Habit{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Name:        name,
		Description: params.Description,
		CreatedAt:   time.Now(),
	}

	saved, err := s.habitStore.Create(ctx, habit)
	if err != nil {
		s.logger.Error("Habit service: failed to create habit",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	s.logger.Info("Habit service: habit created",
		"user_id", params.UserID,
		"habit_id", saved.ID)

	return saved, nil
}

// Get returns the habit only if it exists and is owned by the user.
func (s *Habit) Get(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, error) {
	return ownedHabit(ctx, s.habitStore, userID, habitID)
}

// Delete removes the habit and all of its completions. No completion may
// outlive its habit.
func (s *Habit) Delete(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, error) {
	habit, err := ownedHabit(ctx, s.habitStore, userID, habitID)
	if err != nil {
		return model.Habit{}, err
	}

	if err := s.completionStore.DeleteByHabitID(ctx, habitID); err != nil {
		return model.Habit{}, fmt.Errorf("failed to delete completions: %w", err)
	}

	if err := s.habitStore.Delete(ctx, habitID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Habit{}, apierrors.NewErrHabitNotFound()
		}
		return model.Habit{}, fmt.Errorf("failed to delete habit: %w", err)
	}

	s.logger.Info("Habit service: habit deleted",
		"user_id", userID,
		"habit_id", habitID)

	return habit, nil
}
