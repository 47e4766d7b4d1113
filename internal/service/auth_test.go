package service

import (
	"context"
	"testing"
	"time"

	"pageturn/internal/apperr"
	"pageturn/internal/config"
	"pageturn/internal/dto"
	"pageturn/internal/model"
	"pageturn/internal/repository"
	"pageturn/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager(&config.Auth{JWTSecret: "s3cret", TokenTTL: time.Hour})
	svc := NewAuthService(tokens, repository.NewUserRepository(newTestDB(t)))

	user, tok, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)

	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Sub)

	_, _, err = svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret2"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	logged, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}
