package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	userRepo := &mockUserRepository{createID: 5}

	svc := NewAuthService(userRepo, newTestJWTService())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "correct-horse",
		FirstName: "Anna",
		LastName:  "Nowak",
		RoleType:  "STUDENT",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(5), resp.User.ID)
	assert.Equal(t, "STUDENT", resp.User.RoleType)
}

func TestRegister_HashesPassword(t *testing.T) {
	userRepo := &mockUserRepository{createID: 5}

	svc := NewAuthService(userRepo, newTestJWTService())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "correct-horse",
		FirstName: "Anna",
		LastName:  "Nowak",
		RoleType:  "STUDENT",
	})

	require.NoError(t, err)
	require.NotNil(t, userRepo.created)
	assert.NotEqual(t, "correct-horse", userRepo.created.Password)
	assert.True(t, auth.CheckPassword(userRepo.created.Password, "correct-horse"))
	assert.True(t, userRepo.created.IsActive)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepository{createErr: apperrors.ErrEmailAlreadyExists}

	svc := NewAuthService(userRepo, newTestJWTService())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "taken@example.com",
		Password:  "correct-horse",
		FirstName: "Anna",
		LastName:  "Nowak",
		RoleType:  "STUDENT",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	userRepo := &mockUserRepository{user: &models.User{
		ID:       4,
		Email:    "student@example.com",
		Password: hashed,
		RoleType: models.RoleStudent,
		IsActive: true,
	}}

	svc := NewAuthService(userRepo, newTestJWTService())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "student@example.com", resp.User.Email)
}

func TestLogin_UnknownEmailReadsAsInvalidCredentials(t *testing.T) {
	userRepo := &mockUserRepository{getErr: apperrors.ErrUserNotFound}

	svc := NewAuthService(userRepo, newTestJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	userRepo := &mockUserRepository{user: &models.User{
		Email:    "student@example.com",
		Password: hashed,
		IsActive: true,
	}}

	svc := NewAuthService(userRepo, newTestJWTService())

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "wrong-horse",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	userRepo := &mockUserRepository{user: &models.User{
		Email:    "student@example.com",
		Password: hashed,
		IsActive: false,
	}}

	svc := NewAuthService(userRepo, newTestJWTService())

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
