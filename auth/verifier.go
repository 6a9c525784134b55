// Package auth guards the board routes with bearer tokens issued by an OIDC provider.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"example/analysis-board/app/config"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// clock skew tolerated on exp/nbf/iat
const leeway = 30 * time.Second

var (
	errTokenInvalid = errors.New("invalid token")
	errNoSubject    = errors.New("token missing sub")
)

// Verifier accepts RS-signed tokens for one issuer and audience.
type Verifier struct {
	keys   keyfunc.Keyfunc
	parser *jwt.Parser
}

// NewVerifierFromConfig is NewVerifier fed from the auth section of the config.
func NewVerifierFromConfig(cfg config.AuthConfig) (*Verifier, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("AUTH0_ISSUER and AUTH0_AUDIENCE must be set unless AUTH_DISABLED=true")
	}
	return NewVerifier(cfg.Issuer, cfg.Audience, cfg.JWKSURL)
}

// NewVerifier loads signing keys from jwksURL. An empty jwksURL means the
// issuer's /.well-known/jwks.json.
func NewVerifier(issuer, audience, jwksURL string) (*Verifier, error) {
	iss := withTrailingSlash(issuer)
	switch {
	case iss == "":
		return nil, errors.New("issuer must be set")
	case audience == "":
		return nil, errors.New("audience must be set")
	case jwksURL == "":
		jwksURL = iss + ".well-known/jwks.json"
	}

	keys, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("jwks %s: %w", jwksURL, err)
	}

	methods := []string{
		jwt.SigningMethodRS256.Name,
		jwt.SigningMethodRS384.Name,
		jwt.SigningMethodRS512.Name,
	}
	return &Verifier{
		keys: keys,
		parser: jwt.NewParser(
			jwt.WithIssuer(iss),
			jwt.WithAudience(audience),
			jwt.WithLeeway(leeway),
			jwt.WithExpirationRequired(),
			jwt.WithValidMethods(methods),
		),
	}, nil
}

func (v *Verifier) Verify(raw string) (*Claims, error) {
	mc := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(raw, mc, v.keys.Keyfunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errTokenInvalid
	}
	return claimsFrom(mc)
}

func claimsFrom(mc jwt.MapClaims) (*Claims, error) {
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, errNoSubject
	}
	iss, _ := mc["iss"].(string)
	scope, _ := mc["scope"].(string)
	return &Claims{
		Subject:   sub,
		Issuer:    iss,
		Audience:  audiences(mc["aud"]),
		ExpiresAt: unixTime(mc["exp"]),
		Scope:     scope,
		Raw:       mc,
	}, nil
}

func withTrailingSlash(issuer string) string {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" || strings.HasSuffix(issuer, "/") {
		return issuer
	}
	return issuer + "/"
}

// aud may be a single string or a list
func audiences(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func unixTime(raw any) time.Time {
	var secs int64
	switch v := raw.(type) {
	case float64:
		secs = int64(v)
	case int64:
		secs = v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}
		}
		secs = n
	default:
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
