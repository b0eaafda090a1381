package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/server/models"
)

// Claims carries the identity fields embedded in an access token alongside
// the registered JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// IssueToken signs an HS256 access token for the given identity, valid for
// validityDuration from now.
func IssueToken(identity models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: identity.AccountID,
		Email:     identity.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken decodes tokenString, validates its signature and expiry
// against secretKey, and returns the embedded identity.
//
// It is total over arbitrary input: malformed encodings, altered payloads,
// and foreign-key signatures all collapse to common.ErrInvalidToken, and an
// elapsed lifetime to common.ErrTokenExpired. It never panics and never
// returns the underlying parse error to avoid leaking token internals.
func VerifyToken(tokenString string, secretKey []byte) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, common.ErrTokenExpired
		}
		return models.Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" {
		return models.Identity{}, common.ErrInvalidToken
	}

	return models.Identity{AccountID: claims.AccountID, Email: claims.Email}, nil
}
