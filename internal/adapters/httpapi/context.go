package httpapi

import (
	"context"

	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, id tokens.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (tokens.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(tokens.Identity)
	return v, ok && v.UserID != ""
}
