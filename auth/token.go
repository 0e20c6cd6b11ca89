package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"stockpile/models"
)

// tokenTTL bounds how long a persisted session stays valid without a fresh login.
const tokenTTL = 72 * time.Hour

// CreateToken signs a session token for username.
func CreateToken(secret, username string) (string, error) {
	claims := models.SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a session token and returns the username it was issued to.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || claims.Username == "" {
		return "", fmt.Errorf("missing username claim")
	}
	return claims.Username, nil
}

// SaveSession writes the token to the session file, readable only by the owner.
func SaveSession(path, token string) error {
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// LoadSession returns the stored token, if any.
func LoadSession(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// ClearSession removes the session file; a missing file is fine.
func ClearSession(path string) {
	os.Remove(path)
}
