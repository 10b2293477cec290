package auth

import "context"

// Identity is the authenticated caller resolved by the auth gate.
type Identity struct {
	ID    uint    `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.ID != 0
}
