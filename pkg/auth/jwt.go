package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PlayerClaims identifies a player. The subject is the opaque player id the
// game stores.
type PlayerClaims struct {
	jwt.RegisteredClaims
}

// GeneratePlayerToken signs an HS256 token for playerID valid for ttl.
func GeneratePlayerToken(secret, playerID string, ttl time.Duration) (string, error) {
	if playerID == "" {
		return "", errors.New("player id is required")
	}

	claims := &PlayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidatePlayerToken validates the token and returns its player id
func ValidatePlayerToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}
