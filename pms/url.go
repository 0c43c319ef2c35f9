package pms

import (
	"regexp"
	"strings"
)

// TokenParam is the query parameter and header name the server accepts the
// auth token under. Some server builds only honor one of the two, so the
// library sends both.
const TokenParam = "X-Plex-Token"

// redactedValue replaces the token wherever it would otherwise appear in
// error messages or logs.
const redactedValue = "xxxxxxxxxx"

var tokenPattern = regexp.MustCompile(regexp.QuoteMeta(TokenParam) + `=[^&]*`)

// BuildURL composes a full request URL from the server base URL, a request
// path, and an optional auth token.
//
// The token, when non-empty, is appended as a query parameter: with "&" if
// the path already carries a query string, otherwise with "?". The path is
// used verbatim; callers must pre-encode path segments such as search
// queries, and BuildURL never re-encodes them.
func BuildURL(baseURL, path, token string) string {
	if token == "" {
		return baseURL + path
	}
	delim := "?"
	if strings.Contains(path, "?") {
		delim = "&"
	}
	return baseURL + path + delim + TokenParam + "=" + token
}

// RedactURL returns url with any token query value replaced. Every URL that
// ends up in an error message or a log line goes through here first.
func RedactURL(url string) string {
	return tokenPattern.ReplaceAllString(url, TokenParam+"="+redactedValue)
}
