package model

import "github.com/google/uuid"

// TokenManager generates and validates signed access tokens.
type TokenManager interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ParseToken(token string) (userID uuid.UUID, email string, err error)
}
