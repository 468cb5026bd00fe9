package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/habitkeeper-server/internal/api/http/context"
	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/model"
	"github.com/dtroode/habitkeeper-server/internal/testutil"
)

// MockHabitService mocks the HabitService interface
type MockHabitService struct {
	mock.Mock
}

func (m *MockHabitService) List(ctx context.Context, userID uuid.UUID) ([]model.HabitWithStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.HabitWithStats), args.Error(1)
}

func (m *MockHabitService) Create(ctx context.Context, params model.CreateHabitParams) (model.Habit, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Habit), args.Error(1)
}

func (m *MockHabitService) Delete(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, error) {
	args := m.Called(ctx, userID, habitID)
	return args.Get(0).(model.Habit), args.Error(1)
}

// MockLedgerService mocks the LedgerService interface
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Complete(ctx context.Context, userID, habitID uuid.UUID) (model.Completion, error) {
	args := m.Called(ctx, userID, habitID)
	return args.Get(0).(model.Completion), args.Error(1)
}

func (m *MockLedgerService) StatusOn(ctx context.Context, userID, habitID uuid.UUID, date string) (model.Habit, *model.Completion, error) {
	args := m.Called(ctx, userID, habitID, date)
	var completion *model.Completion
	if c := args.Get(1); c != nil {
		completion = c.(*model.Completion)
	}
	return args.Get(0).(model.Habit), completion, args.Error(2)
}

func (m *MockLedgerService) History(ctx context.Context, userID, habitID uuid.UUID) (model.Habit, []model.Completion, error) {
	args := m.Called(ctx, userID, habitID)
	return args.Get(0).(model.Habit), args.Get(1).([]model.Completion), args.Error(2)
}

// newHabitMux mounts the habit handler behind a router that injects userID
// into the request context, standing in for the authentication middleware.
func newHabitMux(habitService *MockHabitService, ledgerService *MockLedgerService, userID uuid.UUID) http.Handler {
	ctxMgr := httpctx.NewManager()
	h := NewHabit(habitService, ledgerService, ctxMgr, testutil.MakeNoopLogger())

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxMgr.SetUserIDToContext(r.Context(), userID)))
		})
	})
	mux.Get("/habits", h.List)
	mux.Post("/habits", h.Create)
	mux.Delete("/habits/{habitID}", h.Delete)
	mux.Post("/habits/{habitID}/complete", h.Complete)
	mux.Get("/habits/{habitID}/status", h.Status)
	mux.Get("/habits/{habitID}/history", h.History)
	return mux
}

func TestHabitHandler_List(t *testing.T) {
	userID := uuid.New()

	t.Run("habits with stats", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		habit := model.Habit{ID: uuid.New(), UserID: userID, Name: "Read", CreatedAt: time.Now()}
		habitService.On("List", mock.Anything, userID).Return([]model.HabitWithStats{
			{Habit: habit, Stats: model.HabitStats{TotalCompletions: 3, CompletedToday: true}},
		}, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Habits []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Stats struct {
					TotalCompletions int  `json:"totalCompletions"`
					CompletedToday   bool `json:"completedToday"`
				} `json:"stats"`
			} `json:"habits"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Habits, 1)
		assert.Equal(t, habit.ID.String(), body.Habits[0].ID)
		assert.Equal(t, 3, body.Habits[0].Stats.TotalCompletions)
		assert.True(t, body.Habits[0].Stats.CompletedToday)
	})

	t.Run("no habits yields empty array", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		habitService.On("List", mock.Anything, userID).
			Return([]model.HabitWithStats(nil), nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"habits":[]}`, rec.Body.String())
	})
}

func TestHabitHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		created := model.Habit{ID: uuid.New(), UserID: userID, Name: "Read", Description: "20 pages", CreatedAt: time.Now()}
		habitService.On("Create", mock.Anything, model.CreateHabitParams{
			UserID:      userID,
			Name:        "Read",
			Description: "20 pages",
		}).Return(created, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodPost, "/habits",
			strings.NewReader(`{"name":"Read","description":"20 pages"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Habit created successfully")
	})

	t.Run("empty name", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		habitService.On("Create", mock.Anything, mock.Anything).
			Return(model.Habit{}, apierrors.NewErrValidation("Habit name is required"))

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(`{"name":""}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Habit name is required")
	})
}

func TestHabitHandler_Delete(t *testing.T) {
	userID := uuid.New()
	habitID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		habitService.On("Delete", mock.Anything, userID, habitID).
			Return(model.Habit{ID: habitID, UserID: userID, Name: "Read"}, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodDelete, "/habits/"+habitID.String(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Message      string `json:"message"`
			DeletedHabit struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"deletedHabit"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Habit deleted successfully", body.Message)
		assert.Equal(t, habitID.String(), body.DeletedHabit.ID)
		assert.Equal(t, "Read", body.DeletedHabit.Name)
	})

	t.Run("malformed habit id", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodDelete, "/habits/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid habit ID")
		habitService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		habitService.On("Delete", mock.Anything, userID, habitID).
			Return(model.Habit{}, apierrors.NewErrHabitNotFound())

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodDelete, "/habits/"+habitID.String(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHabitHandler_Complete(t *testing.T) {
	userID := uuid.New()
	habitID := uuid.New()

	t.Run("successful completion", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		completion := model.Completion{
			ID:          uuid.New(),
			HabitID:     habitID,
			Date:        "2024-01-15",
			CompletedAt: time.Now(),
		}
		ledgerService.On("Complete", mock.Anything, userID, habitID).Return(completion, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodPost, "/habits/"+habitID.String()+"/complete", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Message    string `json:"message"`
			Completion struct {
				ID      string `json:"id"`
				HabitID string `json:"habitId"`
				Date    string `json:"date"`
			} `json:"completion"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Habit marked as complete for today", body.Message)
		assert.Equal(t, completion.ID.String(), body.Completion.ID)
		assert.Equal(t, habitID.String(), body.Completion.HabitID)
		assert.Equal(t, "2024-01-15", body.Completion.Date)
	})

	t.Run("already completed includes existing record", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		existing := model.Completion{
			ID:          uuid.New(),
			HabitID:     habitID,
			Date:        "2024-01-15",
			CompletedAt: time.Now().Add(-time.Hour),
		}
		ledgerService.On("Complete", mock.Anything, userID, habitID).
			Return(model.Completion{}, apierrors.NewErrAlreadyCompleted(existing))

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodPost, "/habits/"+habitID.String()+"/complete", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Error      string `json:"error"`
			Completion struct {
				ID   string `json:"id"`
				Date string `json:"date"`
			} `json:"completion"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Habit already completed for today", body.Error)
		assert.Equal(t, existing.ID.String(), body.Completion.ID)
		assert.Equal(t, "2024-01-15", body.Completion.Date)
	})

	t.Run("malformed habit id", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodPost, "/habits/42/complete", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		ledgerService.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHabitHandler_Status(t *testing.T) {
	userID := uuid.New()
	habitID := uuid.New()
	habit := model.Habit{ID: habitID, UserID: userID, Name: "Read"}

	t.Run("completed on date", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		completion := &model.Completion{ID: uuid.New(), HabitID: habitID, Date: "2024-01-15", CompletedAt: time.Now()}
		ledgerService.On("StatusOn", mock.Anything, userID, habitID, "2024-01-15").
			Return(habit, completion, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/status?date=2024-01-15", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			HabitID           string `json:"habitId"`
			HabitName         string `json:"habitName"`
			Date              string `json:"date"`
			Completed         bool   `json:"completed"`
			CompletionDetails *struct {
				ID string `json:"id"`
			} `json:"completionDetails"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, habitID.String(), body.HabitID)
		assert.Equal(t, "Read", body.HabitName)
		assert.Equal(t, "2024-01-15", body.Date)
		assert.True(t, body.Completed)
		require.NotNil(t, body.CompletionDetails)
		assert.Equal(t, completion.ID.String(), body.CompletionDetails.ID)
	})

	t.Run("not completed", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		ledgerService.On("StatusOn", mock.Anything, userID, habitID, "2024-01-15").
			Return(habit, nil, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/status?date=2024-01-15", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["completed"])
		assert.Nil(t, body["completionDetails"])
	})

	t.Run("missing date", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/status", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Date parameter is required")
		ledgerService.AssertNotCalled(t, "StatusOn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed date", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		ledgerService.On("StatusOn", mock.Anything, userID, habitID, "01-15-2024").
			Return(model.Habit{}, nil, apierrors.NewErrInvalidDate())

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/status?date=01-15-2024", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid date format")
	})
}

func TestHabitHandler_History(t *testing.T) {
	userID := uuid.New()
	habitID := uuid.New()
	habit := model.Habit{ID: habitID, UserID: userID, Name: "Read"}

	t.Run("history most recent first", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		completions := []model.Completion{
			{ID: uuid.New(), HabitID: habitID, Date: "2024-01-16", CompletedAt: time.Now()},
			{ID: uuid.New(), HabitID: habitID, Date: "2024-01-15", CompletedAt: time.Now().Add(-24 * time.Hour)},
		}
		ledgerService.On("History", mock.Anything, userID, habitID).
			Return(habit, completions, nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/history", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			HabitID          string `json:"habitId"`
			HabitName        string `json:"habitName"`
			TotalCompletions int    `json:"totalCompletions"`
			Completions      []struct {
				Date string `json:"date"`
			} `json:"completions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Read", body.HabitName)
		assert.Equal(t, 2, body.TotalCompletions)
		require.Len(t, body.Completions, 2)
		assert.Equal(t, "2024-01-16", body.Completions[0].Date)
	})

	t.Run("empty history", func(t *testing.T) {
		habitService := &MockHabitService{}
		ledgerService := &MockLedgerService{}

		ledgerService.On("History", mock.Anything, userID, habitID).
			Return(habit, []model.Completion(nil), nil)

		mux := newHabitMux(habitService, ledgerService, userID)
		req := httptest.NewRequest(http.MethodGet, "/habits/"+habitID.String()+"/history", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			TotalCompletions int   `json:"totalCompletions"`
			Completions      []any `json:"completions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 0, body.TotalCompletions)
		assert.NotNil(t, body.Completions)
		assert.Empty(t, body.Completions)
	})
}
