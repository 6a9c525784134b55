package auth

import (
	"context"
	"strings"
	"time"
)

type ctxKey int

const claimsKey ctxKey = iota

// Claims is the part of a verified access token the board API looks at.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	Scope     string
	Raw       map[string]any
}

// HasScopes reports whether every scope in required was granted.
func (c *Claims) HasScopes(required ...string) bool {
	granted := map[string]bool{}
	for _, s := range strings.Fields(c.Scope) {
		granted[s] = true
	}
	for _, s := range required {
		if s != "" && !granted[s] {
			return false
		}
	}
	return true
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
