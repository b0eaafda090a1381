package models

import "time"

// Account is the persisted account record. PasswordDigest holds the salted
// bcrypt hash of the account's password; the plaintext is never stored.
type Account struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	PasswordDigest string
	CreatedAt      time.Time
}
