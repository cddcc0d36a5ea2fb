package service

import (
	"context"
	"testing"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/apperrors"
	"docchat-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) IAuthService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return NewAuthService(unitofwork.NewRepositoryFactory(newTestDB(t)))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "dev@example.com",
		FullName: "Dev User",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "dev@example.com", registered.User.Email)

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "dev@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, loggedIn.User.Id)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	req := &dto.RegisterRequest{
		Email:    "dup@example.com",
		FullName: "First",
		Password: "sup3rsecret",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "ab1"},
		{name: "letters only", password: "onlyletters"},
		{name: "digits only", password: "1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &dto.RegisterRequest{
				Email:    "policy@example.com",
				FullName: "Policy",
				Password: tt.password,
			})
			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "who@example.com",
		FullName: "Who",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email:    "who@example.com",
		Password: "wrongpassword1",
	})
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "sup3rsecret",
	})
	assert.ErrorAs(t, err, &validationErr)
}
