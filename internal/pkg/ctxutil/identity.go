package ctxutil

import "context"

// Identity is the authenticated caller resolved from a bearer token
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// identityKeyType is private to avoid collisions with other context keys
type identityKeyType struct{}

var identityKey = identityKeyType{}

// WithIdentity injects the authenticated identity into the context.
// The auth middleware calls this after the token has been verified:
//
//	ctx := ctxutil.WithIdentity(c.Request.Context(), ident)
//	c.Request = c.Request.WithContext(ctx)
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity resolves the authenticated identity from the context.
// The second return value reports whether a valid identity was present.
func GetIdentity(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	ident, ok := ctx.Value(identityKey).(Identity)
	if !ok || ident.UserID == "" {
		return Identity{}, false
	}
	return ident, true
}
