// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services validate, enforce the
// rules, and talk to repositories through interfaces. Services return domain
// errors (apperror), never HTTP status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/auth"
	"github.com/sathira/codewizard/internal/model"
	"github.com/sathira/codewizard/internal/repository"
)

// AuthService implements registration, login, and profile lookup.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                   ↘ TokenService (JWT) / PasswordService (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is the full set of fields collected by the signup form.
type RegisterInput struct {
	Username     string
	Email        string
	JobPosition  string
	Technologies []string
	Password     string
}

// Register hashes the password and persists a new user.
//
// Fails with ErrValidation on missing required fields and ErrDuplicateKey if
// the username or email is already taken. On success nothing sensitive is
// returned — not even the created record.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if in.Email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if in.Password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		JobPosition:  strings.TrimSpace(in.JobPosition),
		Technologies: in.Technologies,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Duplicate key is a normal outcome, not a server fault; let it
		// propagate untouched for the handler to map to 409.
		return fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// Login verifies the credentials and issues a signed token carrying the
// user's email claim.
//
// Unknown username and wrong password both return the same
// ErrInvalidCredentials — the caller must not be able to tell which it was.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperror.InvalidCredentials()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Only a missing user counts as bad credentials; a store failure
		// must surface as what it is, not as a 400.
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error("failed to issue token",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("username", username))

	return token, nil
}

// GetUserByEmail returns the public profile for an email. The password hash
// never leaves the repository response (the model hides it from JSON as
// well, but the lookup exists to serve profiles, nothing more).
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return user, nil
}
