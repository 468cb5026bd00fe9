package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

// TokenService provides high-level operations for issuing and resolving
// access tokens. It composes the TokenManager.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue creates a signed access token for the user.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	token, err := s.manager.GenerateToken(userID, email)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}
	return token, nil
}

// GetUserID resolves the user ID carried by a bearer token.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	userID, _, err := s.manager.ParseToken(token)
	return userID, err
}
