package auth

import (
	"context"
	"strings"

	"github.com/mkropacheva/storefront/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// ResolveIdentity classifies one request's Authorization header value into
// an identity. A missing header, a malformed token, a bad signature, or an
// expired token all yield the anonymous identity; resolution never fails
// and never blocks a request. Whether anonymous is acceptable is decided
// by the handler consuming the identity, not here.
//
// Both bare tokens and the "Bearer <token>" form are accepted.
func ResolveIdentity(rawHeader string, secretKey []byte) models.Identity {
	raw := strings.TrimSpace(rawHeader)
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		raw = strings.TrimSpace(after)
	}
	if raw == "" {
		return models.Identity{}
	}

	identity, err := VerifyToken(raw, secretKey)
	if err != nil {
		return models.Identity{}
	}
	return identity
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by WithIdentity, or the
// anonymous identity when none is present.
func IdentityFromContext(ctx context.Context) models.Identity {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return identity
}
