package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type service struct {
	repo   Repository
	tokens *TokenManager
	hasher PasswordHasher
	logger *zap.Logger
}

func NewService(repo Repository, tokens *TokenManager, hasher PasswordHasher, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateRegister(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to register user", err)
	}

	u := &domain.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		if _, ok := errors.IsConflictError(err); ok {
			s.logger.Warn("registration rejected", zap.String("email", req.Email), zap.Error(err))
			return nil, err
		}
		return nil, errors.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", zap.Uint("userId", u.ID))
	return s.respond(*u)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, errors.NewInternalError("failed to log in", err)
	}

	if !s.hasher.Matches(u.PasswordHash, req.Password) {
		s.logger.Warn("login rejected", zap.Uint("userId", u.ID))
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	return s.respond(*u)
}

func (s *service) respond(u domain.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(u)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", fmt.Errorf("signing token: %w", err))
	}
	return &AuthResponse{
		Token: token,
		User:  UserDTO{ID: u.ID, Username: u.Username, Email: u.Email},
	}, nil
}

func validateRegister(req RegisterRequest) error {
	var details []errors.ValidationDetail
	if len(req.Username) < minUsernameLength {
		details = append(details, errors.ValidationDetail{
			Field:   "username",
			Message: fmt.Sprintf("username must be at least %d characters", minUsernameLength),
		})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || strings.ContainsAny(req.Email, "<> ") {
		details = append(details, errors.ValidationDetail{Field: "email", Message: "email is not valid"})
	}
	if len(req.Password) < minPasswordLength {
		details = append(details, errors.ValidationDetail{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}
	if len(details) > 0 {
		return errors.NewValidationError("invalid registration", details...)
	}
	return nil
}
