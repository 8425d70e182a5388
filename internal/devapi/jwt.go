package devapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/equitydash/equitydash/internal/assert"
)

const tokenTTL = 24 * time.Hour

// Claims represents the JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. An empty secret is replaced by a random
// one, so tokens do not survive a restart.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		// 64 hex characters = 32 bytes of randomness
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(b)
		assert.Length(secret, 64)
	}
	return &TokenIssuer{secret: []byte(secret), now: time.Now}, nil
}

// Generate creates a new token for an account
func (t *TokenIssuer) Generate(userID, email, role string) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses a token and returns its claims
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
