package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects user ID into the request
// context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and passes the
// request on with the user ID set on its context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenString string
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}

		userID, authErr := m.authenticateUser(r.Context(), tokenString)
		if authErr != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(authErr.HTTPCode)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": authErr.Message})
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (uuid.UUID, *apierrors.APIError) {
	if tokenString == "" {
		return uuid.Nil, apierrors.NewErrMissingAuthorizationToken()
	}

	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}

	if userID == uuid.Nil {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}

	return userID, nil
}
