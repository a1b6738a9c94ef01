package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that parse but fail validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the account identifier alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"aid"`
}

// GenerateToken mints an HS256 session token for the account.
func GenerateToken(accountID string, secretKey []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		AccountID: accountID,
	})

	return token.SignedString(secretKey)
}

// AccountIDFromToken validates a session token and returns its account id.
func AccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.AccountID == "" {
		return "", ErrInvalidToken
	}

	return claims.AccountID, nil
}
