package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkwell/internal/auth"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(testSecret, "inkwell", time.Hour)
}

func TestAuthService_Authenticate(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					Email:        "alice@example.com",
					PasswordHash: hash,
				}, nil)
			},
		},
		{
			name:     "unknown user",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "letmein",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					Email:        "alice@example.com",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "empty email",
			email:         "",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "empty password",
			email:         "alice@example.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, testJWTService(), logger.NewNop())
			token, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				// Every auth failure must collapse to the same opaque 401.
				if apperrors.IsAuthError(err) {
					assert.Equal(t, 401, apperrors.MapErrorToHTTP(err).StatusCode)
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate_TokenCarriesEmail(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)

	jwtService := testJWTService()
	svc := NewAuthService(mockRepo, jwtService, logger.NewNop())

	token, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestAuthService_Validate_RoundTrip(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &model.User{
		Email:        "alice@example.com",
		PasswordHash: hash,
	}))

	svc := NewAuthService(users, testJWTService(), logger.NewNop())

	token, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	user, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthService_Validate_UserDeletedAfterIssuance(t *testing.T) {
	jwtService := testJWTService()
	token, err := jwtService.Generate("ghost@example.com")
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(mockRepo, jwtService, logger.NewNop())

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Validate_ForeignToken(t *testing.T) {
	foreign := auth.NewJWTService("ffffffffffffffffffffffffffffffff", "inkwell", time.Hour)
	token, err := foreign.Generate("alice@example.com")
	require.NoError(t, err)

	svc := NewAuthService(new(MockUserRepository), testJWTService(), logger.NewNop())

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
