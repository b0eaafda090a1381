// Package common defines shared constants and sentinel errors used across
// Storefront components. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login-flow terminal failures. Kept distinct so logs can tell them
	// apart; the HTTP layer collapses both into one generic response.
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid credential")

	// Credential hashing infrastructure failure (bad digest format,
	// entropy source, invalid work factor). Never triggered by a plain
	// password mismatch.
	ErrHashing = errors.New("hashing failure")

	// Token classification errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
