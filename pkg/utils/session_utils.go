package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

var (
	sessionSecret []byte
	sessionTTL    = 24 * time.Hour
)

// InitSessionAuth configures the signing secret and token lifetime. Call it
// once at startup, after the environment has been loaded.
func InitSessionAuth(secret string, ttl time.Duration) {
	sessionSecret = []byte(secret)
	if ttl > 0 {
		sessionTTL = ttl
	}
}

// SessionTTL returns the configured session lifetime.
func SessionTTL() time.Duration {
	return sessionTTL
}

// SessionClaims defines the session token claims.
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token for a user.
func GenerateSessionToken(userID int64, username string, role string) (string, error) {
	expirationTime := time.Now().Add(sessionTTL)
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "apartment-booking-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken parses and validates a session token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return sessionSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
