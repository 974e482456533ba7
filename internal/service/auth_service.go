package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkwell/internal/auth"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// AuthService verifies credentials and issues and validates bearer tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (token string, err error)
	Validate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	logger     *zap.SugaredLogger
}

// NewAuthService creates an authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, logger *zap.SugaredLogger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Authenticate checks email/password against the credential store and issues
// a signed token on success. ErrUserNotFound and ErrInvalidCredentials are
// kept distinct here for logging; the HTTP boundary collapses both into one
// opaque unauthorized response.
func (s *authService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Infow("login rejected", "reason", "unknown user", "email", email)
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.NewPersistenceError("find", "user", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		s.logger.Infow("login rejected", "reason", "wrong password", "email", email)
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.Infow("login succeeded", "email", email)
	return token, nil
}

// Validate verifies the token and resolves its email claim back to a stored
// user, covering users removed after issuance.
func (s *authService) Validate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		s.logger.Debugw("token rejected", "reason", err)
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Infow("token rejected", "reason", "user no longer exists", "email", claims.Email)
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewPersistenceError("find", "user", err)
	}

	return user, nil
}
