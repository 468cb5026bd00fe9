package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

// Stats derives per-habit counters from the completion ledger. It holds no
// state of its own.
type Stats struct {
	completionStore model.CompletionStore
	logger          *logger.Logger
}

func NewStats(completionStore model.CompletionStore, logger *logger.Logger) *Stats {
	return &Stats{
		completionStore: completionStore,
		logger:          logger,
	}
}

// StatsFor computes the total completion count and whether the habit was
// completed today, in server-local time.
func (s *Stats) StatsFor(ctx context.Context, habitID uuid.UUID) (model.HabitStats, error) {
	total, err := s.completionStore.CountByHabitID(ctx, habitID)
	if err != nil {
		return model.HabitStats{}, fmt.Errorf("failed to count completions: %w", err)
	}

	today := time.Now().Format(model.DateLayout)
	_, err = s.completionStore.GetByHabitAndDate(ctx, habitID, today)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.HabitStats{}, fmt.Errorf("failed to get completion for today: %w", err)
	}

	return model.HabitStats{
		TotalCompletions: total,
		CompletedToday:   err == nil,
	}, nil
}
