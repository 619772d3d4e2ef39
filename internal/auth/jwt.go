// Package auth issues and validates the bearer tokens that guard the
// dashboard API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeDashboard grants read access to the dashboard API.
const ScopeDashboard = "dashboard:read"

// ErrInvalidToken wraps every validation failure.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and validates HS256 dashboard tokens.
type JWTManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTManager creates a manager. secret must be at least 32 characters;
// config validation enforces it.
func NewJWTManager(secret, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

type dashboardClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// GenerateToken signs a dashboard token for subject. A non-positive ttl
// yields a token without expiry.
func (m *JWTManager) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is empty")
	}

	now := m.now()
	claims := dashboardClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			Issuer:   m.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Scope: ScopeDashboard,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, issuer, expiry and scope and returns the
// token subject.
func (m *JWTManager) ValidateToken(_ context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	var claims dashboardClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Scope != ScopeDashboard {
		return "", fmt.Errorf("%w: missing %s scope", ErrInvalidToken, ScopeDashboard)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: subject is empty", ErrInvalidToken)
	}
	return claims.Subject, nil
}
