package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

// AuthService defines user signup and login operations.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
	Token   string      `json:"token"`
}

func toUserPayload(user model.User) userPayload {
	return userPayload{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}

// Signup registers a new user and returns the user with a fresh token.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierrors.NewErrValidation("Invalid request body"))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Message: "User created successfully",
		User:    toUserPayload(user),
		Token:   token,
	})
}

// Login verifies credentials and returns the user with a fresh token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierrors.NewErrValidation("Invalid request body"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Login successful",
		User:    toUserPayload(user),
		Token:   token,
	})
}
