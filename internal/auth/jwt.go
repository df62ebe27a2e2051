package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

const interactorTokenExpiry = 10 * time.Minute

// InteractorClaims identifies the social-network user who pressed a card button
type InteractorClaims struct {
	FID int64 `json:"fid"`
	jwt.RegisteredClaims
}

// JWTService handles interactor token operations
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// SignInteractorToken creates a short-lived token asserting fid
func (s *JWTService) SignInteractorToken(fid int64) (string, error) {
	now := time.Now()
	claims := &InteractorClaims{
		FID: fid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(interactorTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign interactor token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken verifies and parses an interactor token
func (s *JWTService) VerifyToken(tokenString string) (*InteractorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &InteractorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*InteractorClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.FID <= 0 {
		return nil, fmt.Errorf("token has no fid")
	}

	return claims, nil
}

// VerifyMessage treats messageBytes as an interactor token and returns its fid.
// Used for local development and tests, where no signed Farcaster message exists.
func (s *JWTService) VerifyMessage(_ context.Context, messageBytes string) (int64, error) {
	claims, err := s.VerifyToken(messageBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrInvalidMessage, err)
	}
	return claims.FID, nil
}
