// Package auth provides authentication for Plex Media Server connections.
//
// The server authenticates with a static token, accepted either as the
// X-Plex-Token header or as a query parameter of the same name. Some server
// builds only honor one of the two; the header path lives here, the query
// path in pms.BuildURL.
package auth

import "net/http"

// Authenticator defines the interface for authentication handlers.
type Authenticator interface {
	// Transport wraps an http.RoundTripper with authentication.
	Transport(base http.RoundTripper) http.RoundTripper

	// Name returns the authentication scheme name.
	Name() string
}
