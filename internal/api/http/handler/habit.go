package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

// HabitService defines habit operations scoped to the authenticated user.
type HabitService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.HabitWithStats, error)
	Create(ctx context.Context, params model.CreateHabitParams) (model.Habit, error)
	Delete(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, error)
}

// LedgerService defines completion ledger operations scoped to the
// authenticated user.
type LedgerService interface {
	Complete(ctx context.Context, userID, habitID uuid.UUID) (model.Completion, error)
	StatusOn(ctx context.Context, userID, habitID uuid.UUID, date string) (model.Habit, *model.Completion, error)
	History(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, []model.Completion, error)
}

// Habit handles HTTP endpoints for habits and their completions.
type Habit struct {
	habitService   HabitService
	ledgerService  LedgerService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewHabit creates a new Habit handler.
func NewHabit(
	habitService HabitService,
	ledgerService LedgerService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Habit {
	return &Habit{
		habitService:   habitService,
		ledgerService:  ledgerService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type statsPayload struct {
	TotalCompletions int  `json:"totalCompletions"`
	CompletedToday   bool `json:"completedToday"`
}

type habitPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	Stats       *statsPayload `json:"stats,omitempty"`
}

type completionPayload struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habitId"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completedAt"`
}

// completionSummary omits the habit reference; used inside habit-scoped
// responses where the habit is already identified.
type completionSummary struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completedAt"`
}

func toHabitPayload(habit model.Habit) habitPayload {
	return habitPayload{
		ID:          habit.ID.String(),
		Name:        habit.Name,
		Description: habit.Description,
		CreatedAt:   habit.CreatedAt,
	}
}

// requireUser extracts the authenticated user ID set by the middleware.
func (h *Habit) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apierrors.NewErrMissingAuthorizationToken())
		return uuid.Nil, false
	}
	return userID, true
}

// habitIDParam parses and validates the habit ID path parameter.
func (h *Habit) habitIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	habitID, err := uuid.Parse(chi.URLParam(r, "habitID"))
	if err != nil {
		handleError(w, apierrors.NewErrInvalidHabitID())
		return uuid.Nil, false
	}
	return habitID, true
}

// List returns all habits owned by the user, with derived stats.
func (h *Habit) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	habits, err := h.habitService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("Habit handler: list failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	payload := make([]habitPayload, 0, len(habits))
	for _, hs := range habits {
		p := toHabitPayload(hs.Habit)
		p.Stats = &statsPayload{
			TotalCompletions: hs.Stats.TotalCompletions,
			CompletedToday:   hs.Stats.CompletedToday,
		}
		payload = append(payload, p)
	}

	writeJSON(w, http.StatusOK, map[string]any{"habits": payload})
}

// Create persists a new habit for the user.
func (h *Habit) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierrors.NewErrValidation("Invalid request body"))
		return
	}

	habit, err := h.habitService.Create(r.Context(), model.CreateHabitParams{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error("Habit handler: create failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Habit created successfully",
		"habit":   toHabitPayload(habit),
	})
}

// Delete removes a habit and all of its completions.
func (h *Habit) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := h.habitIDParam(w, r)
	if !ok {
		return
	}

	habit, err := h.habitService.Delete(r.Context(), userID, habitID)
	if err != nil {
		h.logger.Error("Habit handler: delete failed",
			"user_id", userID,
			"habit_id", habitID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Habit deleted successfully",
		"deletedHabit": map[string]string{
			"id":   habit.ID.String(),
			"name": habit.Name,
		},
	})
}

// Complete records a completion for today.
func (h *Habit) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := h.habitIDParam(w, r)
	if !ok {
		return
	}

	completion, err := h.ledgerService.Complete(r.Context(), userID, habitID)
	if err != nil {
		h.logger.Error("Habit handler: complete failed",
			"user_id", userID,
			"habit_id", habitID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Habit marked as complete for today",
		"completion": completionPayload{
			ID:          completion.ID.String(),
			HabitID:     completion.HabitID.String(),
			Date:        completion.Date,
			CompletedAt: completion.CompletedAt,
		},
	})
}

type statusResponse struct {
	HabitID           string             `json:"habitId"`
	HabitName         string             `json:"habitName"`
	Date              string             `json:"date"`
	Completed         bool               `json:"completed"`
	CompletionDetails *completionDetails `json:"completionDetails"`
}

type completionDetails struct {
	ID          string    `json:"id"`
	CompletedAt time.Time `json:"completedAt"`
}

// Status reports whether a habit was completed on the requested date.
func (h *Habit) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := h.habitIDParam(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handleError(w, apierrors.NewErrMissingDate())
		return
	}

	habit, completion, err := h.ledgerService.StatusOn(r.Context(), userID, habitID, date)
	if err != nil {
		h.logger.Error("Habit handler: status failed",
			"user_id", userID,
			"habit_id", habitID,
			"date", date,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := statusResponse{
		HabitID:   habitID.String(),
		HabitName: habit.Name,
		Date:      date,
		Completed: completion != nil,
	}
	if completion != nil {
		resp.CompletionDetails = &completionDetails{
			ID:          completion.ID.String(),
			CompletedAt: completion.CompletedAt,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History returns all completions for a habit, most recent date first.
func (h *Habit) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := h.habitIDParam(w, r)
	if !ok {
		return
	}

	habit, completions, err := h.ledgerService.History(r.Context(), userID, habitID)
	if err != nil {
		h.logger.Error("Habit handler: history failed",
			"user_id", userID,
			"habit_id", habitID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	payload := make([]completionSummary, 0, len(completions))
	for _, c := range completions {
		payload = append(payload, completionSummary{
			ID:          c.ID.String(),
			Date:        c.Date,
			CompletedAt: c.CompletedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"habitId":          habitID.String(),
		"habitName":        habit.Name,
		"totalCompletions": len(completions),
		"completions":      payload,
	})
}
