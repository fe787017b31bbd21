package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		Name:          "Test User",
		Email:         "test@example.com",
		Password:      "supersecret",
		Username:      "tester",
		Age:           30,
		Sex:           "male",
		ActivityLevel: "moderate",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Profile was created alongside the user.
	var profile models.UserProfile
	require.NoError(t, db.Where("username = ?", "tester").First(&profile).Error)
	assert.Equal(t, "moderate", profile.ActivityLevel)

	loginToken, err := svc.Login(ctx, "test@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = svc.Login(ctx, "test@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterRejectsUnknownActivityLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	req := registerRequest()
	req.ActivityLevel = "hyperactive"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tester", claims.Username)

	_, err = svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with another secret must fail.
	other := NewAuthService(db, "other-secret")
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
