// Package auth implements signing and parsing of session tokens (HS256 JWTs).
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tzetzo/task-manager-api/internal/common"
)

// Claims binds an account id to a signed token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken mints a session token for the given account id. Tokens carry
// an issued-at timestamp and a random jti (so two logins in the same second
// still produce distinct tokens) but deliberately no expiry: revocation of
// the stored token sequence is the only invalidation path.
func GenerateToken(accountID string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken verifies the signature and returns the embedded
// account id.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
