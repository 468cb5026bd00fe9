package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

const minPasswordLength = 6

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	bcryptCost   int
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	bcryptCost int,
	logger *logger.Logger,
) *Auth {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Auth{
		userStore:    userStore,
		tokenService: NewTokenService(tokenManager, logger),
		bcryptCost:   bcryptCost,
		logger:       logger,
	}
}

// Signup registers a new user and issues an access token. The display name
// defaults to the local part of the email when not provided.
func (a *Auth) Signup(ctx context.Context, email, password, name string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user signup",
		"email", email)

	if email == "" || password == "" {
		return model.User{}, "", apierrors.NewErrValidation("Email and password are required")
	}
	if len(password) < minPasswordLength {
		return model.User{}, "", apierrors.NewErrPasswordTooShort()
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, "", apierrors.NewErrEmailIsTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now(),
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		// The unique constraint backstops the existence check above under
		// concurrent signups for the same email.
		if errors.Is(err, model.ErrDuplicate) {
			return model.User{}, "", apierrors.NewErrEmailIsTaken()
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenService.Issue(ctx, saved.ID, saved.Email)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: signup completed",
		"email", email,
		"user_id", saved.ID)

	return saved, token, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	if email == "" || password == "" {
		return model.User{}, "", apierrors.NewErrValidation("Email and password are required")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", apierrors.NewErrInvalidCredentials()
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", email)
		return model.User{}, "", apierrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenService.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"email", email,
		"user_id", user.ID)

	return user, token, nil
}
