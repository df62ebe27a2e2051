package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractorToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.SignInteractorToken(3)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.FID)
}

func TestVerifyToken_Rejects(t *testing.T) {
	svc := NewJWTService("secret")

	other, err := NewJWTService("other").SignInteractorToken(3)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &InteractorClaims{
		FID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noFID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &InteractorClaims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"no fid":       noFID,
		"garbage":      "not-a-token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

func TestVerifyMessage(t *testing.T) {
	svc := NewJWTService("secret")
	token, err := svc.SignInteractorToken(9)
	require.NoError(t, err)

	fid, err := svc.VerifyMessage(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), fid)

	_, err = svc.VerifyMessage(context.Background(), "0a4908")
	assert.ErrorIs(t, err, model.ErrInvalidMessage)
}
