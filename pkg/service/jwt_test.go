package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "maintenance-system/pkg/errors"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("secret", "maintenance-system", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens(12, "Manager")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), claims.UserID)
	assert.Equal(t, "Manager", claims.Role)
	assert.False(t, claims.IsRefreshToken)
	assert.NotEmpty(t, claims.ID)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestValidateTokenRejectsForeignSecretAndIssuer(t *testing.T) {
	ours := NewJWTService("secret", "maintenance-system", time.Hour, time.Hour, zap.NewNop())
	foreign := NewJWTService("other", "maintenance-system", time.Hour, time.Hour, zap.NewNop())
	otherIssuer := NewJWTService("secret", "someone-else", time.Hour, time.Hour, zap.NewNop())

	token, _, err := foreign.GenerateTokens(1, "Employee")
	require.NoError(t, err)
	_, err = ours.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	token, _, err = otherIssuer.GenerateTokens(1, "Employee")
	require.NoError(t, err)
	_, err = ours.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = ours.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("secret", "maintenance-system", -time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, "Employee")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
