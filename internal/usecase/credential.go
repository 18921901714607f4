package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

type credentialContextKey struct{}

// WithBearerToken attaches the caller's backend token to ctx. The token is
// forwarded on every backend call made with ctx.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialContextKey{}, strings.TrimSpace(token))
}

func BearerTokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(credentialContextKey{}).(string)
	return token, ok && token != ""
}

// CallerKey derives a stable, non-reversible caller key from a token.
func CallerKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}
