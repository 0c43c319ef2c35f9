// Package transport handles HTTP/HTTPS communication with a Plex Media
// Server: one fixed timeout per call, base header injection, and status
// classification. It performs no retries and no backoff.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/smnsjas/go-plex/pms"
)

// DefaultTimeout is the default HTTP request timeout. Every call is bounded
// by this single timeout; a timeout surfaces as a transport failure.
const DefaultTimeout = 30 * time.Second

// defaultBufferSize is the initial size for pooled buffers.
const defaultBufferSize = 32 * 1024 // 32KB

// bufferPool is a pool of reusable bytes.Buffer to reduce allocations.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// readAllPooled reads from r using a pooled buffer and returns a copy of
// the data.
func readAllPooled(r io.Reader) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, err
	}

	// Return a copy since buf will be reused
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// HTTPTransport handles HTTP/HTTPS communication with the server.
type HTTPTransport struct {
	client      *http.Client
	baseHeaders map[string]string
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// NewHTTPTransport creates a new HTTP transport with the given options.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseHeaders: make(map[string]string),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Use this to share a
// caller-managed session, e.g. one with a caching transport. The fixed
// timeout is still applied to the provided client.
func WithHTTPClient(c *http.Client) HTTPTransportOption {
	return func(t *HTTPTransport) {
		timeout := t.client.Timeout
		t.client = c
		if t.client.Timeout == 0 {
			t.client.Timeout = timeout
		}
	}
}

// WithBaseHeaders sets headers sent on every request. Caller-supplied
// per-request headers override these; the auth header does not live here
// and cannot be overridden (see pms/auth).
func WithBaseHeaders(h map[string]string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		for k, v := range h {
			t.baseHeaders[k] = v
		}
	}
}

// WithInsecureSkipVerify configures TLS to skip certificate verification.
// WARNING: Only use this for testing. Never use in production.
func WithInsecureSkipVerify(skip bool) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if skip {
			fmt.Fprintf(os.Stderr, "WARNING: TLS certificate verification disabled. This is insecure and should only be used for testing.\n")
		}
		transport := t.ensureHTTPTransport()
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
		transport.TLSClientConfig.InsecureSkipVerify = skip
	}
}

// WithTLSConfig sets a custom TLS configuration.
// NOTE: MinVersion is enforced to be at least TLS 1.2.
func WithTLSConfig(cfg *tls.Config) HTTPTransportOption {
	return func(t *HTTPTransport) {
		transport := t.ensureHTTPTransport()
		if cfg.MinVersion < tls.VersionTLS12 {
			cfg.MinVersion = tls.VersionTLS12
		}
		transport.TLSClientConfig = cfg
	}
}

// ensureHTTPTransport ensures the client has an *http.Transport.
func (t *HTTPTransport) ensureHTTPTransport() *http.Transport {
	if t.client.Transport == nil {
		t.client.Transport = &http.Transport{}
	}
	transport, ok := t.client.Transport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
		t.client.Transport = transport
	}
	return transport
}

// Get issues a GET request. Shorthand for Do with the default method.
func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	return t.Do(ctx, http.MethodGet, url, nil, nil)
}

// Do sends a request and returns the response body.
//
// An empty method defaults to GET; mutating endpoints (playlist and play
// queue creation) pass PUT/POST/DELETE. Base headers are applied first,
// then caller headers. Only 200 and 201 count as success; any other status
// returns a *pms.BadRequestError carrying the status code, the server's
// reason phrase, and the redacted request URL.
func (t *HTTPTransport) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, error) {
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create request: %w", err)
	}

	for k, v := range t.baseHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		// url.Error carries the full request URL; redact the token before
		// the error can reach logs or callers.
		var ue *neturl.Error
		if errors.As(err, &ue) {
			ue.URL = pms.RedactURL(ue.URL)
		}
		return nil, fmt.Errorf("transport: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readAllPooled(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &pms.BadRequestError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			URL:        pms.RedactURL(url),
		}
	}

	return respBody, nil
}

// reasonPhrase extracts the reason text from a response status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// Client returns the underlying HTTP client for advanced configuration.
func (t *HTTPTransport) Client() *http.Client {
	return t.client
}

// CloseIdleConnections closes any idle connections in the transport.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}
