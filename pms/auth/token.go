package auth

import (
	"log/slog"
	"net/http"

	"github.com/smnsjas/go-plex/pms"
)

// TokenAuth implements token authentication via the X-Plex-Token header.
type TokenAuth struct {
	token string
}

// NewTokenAuth creates a new token authentication handler.
func NewTokenAuth(token string) *TokenAuth {
	return &TokenAuth{token: token}
}

// Name returns the authentication scheme name.
func (a *TokenAuth) Name() string {
	return "token"
}

// LogValue implements slog.LogValuer so the token is never logged in
// cleartext, even when the handler is logged as a value.
func (a *TokenAuth) LogValue() slog.Value {
	return slog.StringValue("[REDACTED]")
}

// Transport wraps an http.RoundTripper with token authentication.
func (a *TokenAuth) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &tokenTransport{
		base:  base,
		token: a.token,
	}
}

// tokenTransport adds the auth token header to requests.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

// RoundTrip implements http.RoundTripper. It runs after per-request header
// merging, so a caller-supplied header under the token key cannot override
// the configured token.
func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the original
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(pms.TokenParam, t.token)
	return t.base.RoundTrip(reqCopy)
}
