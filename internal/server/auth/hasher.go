// Package auth implements the authentication core: password hashing,
// signed access tokens, and request identity resolution.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkropacheva/storefront/internal/common"
)

// HashPassword produces a salted bcrypt digest of password. cost is the
// bcrypt work factor; higher values make offline brute force slower.
// Infrastructure failures (invalid cost, entropy source) surface as
// common.ErrHashing.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	return string(digest), nil
}

// VerifyPassword checks password against a stored bcrypt digest.
// A mismatch is a normal (false, nil) result, not an error; only a
// malformed digest yields common.ErrHashing. bcrypt compares the derived
// keys in constant time.
func VerifyPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", common.ErrHashing, err)
}
