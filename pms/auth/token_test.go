package auth

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smnsjas/go-plex/pms"
)

func TestTokenAuth_InjectsHeader(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(pms.TokenParam)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTokenAuth("abc123").Transport(nil)}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if gotToken != "abc123" {
		t.Errorf("got token header %q, want abc123", gotToken)
	}
}

func TestTokenAuth_CallerHeaderCannotOverride(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(pms.TokenParam)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTokenAuth("real-token").Transport(nil)}
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	// A caller trying to smuggle its own value under the auth header key.
	req.Header.Set(pms.TokenParam, "spoofed")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if gotToken != "real-token" {
		t.Errorf("configured token must win, got %q", gotToken)
	}
}

func TestTokenAuth_DoesNotMutateOriginalRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := &http.Client{Transport: NewTokenAuth("abc123").Transport(nil)}
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if req.Header.Get(pms.TokenParam) != "" {
		t.Error("original request was mutated with the token header")
	}
}

func TestTokenAuth_LogValueRedacts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a := NewTokenAuth("supersecrettoken")
	logger.Info("configured auth", "scheme", a.Name(), "handler", a)

	out := buf.String()
	if strings.Contains(out, "supersecrettoken") {
		t.Fatalf("log output leaks the token: %s", out)
	}
	if !strings.Contains(out, "REDACTED") {
		t.Errorf("log output should carry the redaction marker: %s", out)
	}
}

func TestDefaultIdentity_Headers(t *testing.T) {
	id := DefaultIdentity()
	h := id.Headers()

	if h["X-Plex-Product"] != "go-plex" {
		t.Errorf("product header: got %q", h["X-Plex-Product"])
	}
	if h["X-Plex-Client-Identifier"] == "" {
		t.Error("client identifier must be generated")
	}

	other := DefaultIdentity()
	if other.ClientIdentifier == id.ClientIdentifier {
		t.Error("client identifiers should be unique per identity")
	}
}

func TestIdentity_Headers_OmitsEmptyFields(t *testing.T) {
	id := Identity{Product: "go-plex"}
	h := id.Headers()
	if _, ok := h["X-Plex-Device"]; ok {
		t.Error("empty field must be omitted from headers")
	}
	if len(h) != 1 {
		t.Errorf("got %d headers, want 1: %v", len(h), h)
	}
}
