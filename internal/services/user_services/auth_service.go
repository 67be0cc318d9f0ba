// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/docuchat/docuchat/internal/auth"
	"github.com/docuchat/docuchat/internal/domain"
	"github.com/docuchat/docuchat/internal/repository/user"
)

// Logger matches services.Logger; declared here to keep the package free of
// an upward import.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUsernameTaken = errors.New("username is already taken")

// AuthService owns registration, login and session-token validation. It is
// the single place the rest of the system resolves "who is this request".
type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	newUser := &domain.User{Username: username}
	if err := newUser.IsValid(); err != nil {
		return nil, err
	}
	if err := newUser.HashPassword(password); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		s.logger.Error("user registration failed", "error", err)
		return nil, errors.New("could not create account")
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Login authenticates a user and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_username", username != "",
			"has_password", password != "")
		return nil, "", ErrInvalidCredentials
	}

	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed - user not found", "error", "user_not_found")
		return nil, "", ErrInvalidCredentials
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(account.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "error", err, "user_id", account.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", account.ID)
	return account, token, nil
}

// ValidateJWTToken resolves a session token to a user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	return auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
}
