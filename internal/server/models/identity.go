package models

// Identity is the authenticated principal attached to a request. It is a
// projection of an Account, produced only by a successful login or token
// verification, and deliberately carries no digest or other private fields.
//
// The zero value means "no valid token presented" (anonymous).
type Identity struct {
	AccountID string
	Email     string
}

// IsAnonymous reports whether the identity is the anonymous sentinel.
func (i Identity) IsAnonymous() bool {
	return i.AccountID == ""
}
