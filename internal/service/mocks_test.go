package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/habitkeeper-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// MockHabitStore mocks the HabitStore interface
type MockHabitStore struct {
	mock.Mock
}

func (m *MockHabitStore) Create(ctx context.Context, habit model.Habit) (model.Habit, error) {
	args := m.Called(ctx, habit)
	return args.Get(0).(model.Habit), args.Error(1)
}

func (m *MockHabitStore) GetByID(ctx context.Context, id uuid.UUID) (model.Habit, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Habit), args.Error(1)
}

func (m *MockHabitStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Habit, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Habit), args.Error(1)
}

func (m *MockHabitStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompletionStore mocks the CompletionStore interface
type MockCompletionStore struct {
	mock.Mock
}

func (m *MockCompletionStore) Create(ctx context.Context, completion model.Completion) (model.Completion, error) {
	args := m.Called(ctx, completion)
	return args.Get(0).(model.Completion), args.Error(1)
}

func (m *MockCompletionStore) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (model.Completion, error) {
	args := m.Called(ctx, habitID, date)
	return args.Get(0).(model.Completion), args.Error(1)
}

func (m *MockCompletionStore) GetByHabitID(ctx context.Context, habitID uuid.UUID) ([]model.Completion, error) {
	args := m.Called(ctx, habitID)
	return args.Get(0).([]model.Completion), args.Error(1)
}

func (m *MockCompletionStore) CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error) {
	args := m.Called(ctx, habitID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompletionStore) DeleteByHabitID(ctx context.Context, habitID uuid.UUID) error {
	args := m.Called(ctx, habitID)
	return args.Error(0)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateToken(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ParseToken(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}
