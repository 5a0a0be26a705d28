package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  2 * time.Hour,
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, testAuthConfig())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)

	stored := store.users[resp.Id]
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, testAuthConfig())

	req := &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestLogin_ReturnsTokenWithExpectedClaims(t *testing.T) {
	store := newFakeStore()
	cfg := testAuthConfig()
	svc := NewAuthService(store, cfg)

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.Id, resp.User.Id)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, reg.Id.String(), claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(cfg.TokenTTL).Unix(), int64(exp), 5)
}

func TestLogin_WrongPasswordAndUnknownEmailAnswerIdentically(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(store, testAuthConfig())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-it",
	})
	_, unknown := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.True(t, apperror.IsKind(wrongPass, apperror.KindUnauthenticated))
	assert.True(t, apperror.IsKind(unknown, apperror.KindUnauthenticated))
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}
