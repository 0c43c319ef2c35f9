// Package plex provides the high-level client for a Plex Media Server.
//
// A Server is created with Connect, which performs a synchronous handshake
// against the server root and populates the server's identity fields. All
// calls are blocking and bounded by the configured timeout; the library
// performs no retries and spawns no background goroutines. A Server is safe
// for sequential use; callers needing concurrency should serialize access
// or use one Server per worker.
package plex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/smnsjas/go-plex/media"
	"github.com/smnsjas/go-plex/pms"
	"github.com/smnsjas/go-plex/pms/auth"
	"github.com/smnsjas/go-plex/pms/transport"
)

// Server is a connection to one Plex Media Server. The identity fields are
// populated from the handshake response and stay fixed for the connection's
// lifetime.
type Server struct {
	mu sync.Mutex

	baseURL   string
	token     string
	transport *transport.HTTPTransport
	identity  auth.Identity
	log       *slog.Logger

	// library is fetched once and cached for the connection's lifetime.
	library *media.Library

	FriendlyName                  string
	MachineIdentifier             string
	Version                       string
	Platform                      string
	PlatformVersion               string
	MyPlex                        bool
	MyPlexMappingState            string
	MyPlexSigninState             string
	MyPlexSubscription            string
	MyPlexUsername                string
	TranscoderActiveVideoSessions int
	UpdatedAt                     int64
}

// Option configures a Server before the handshake.
type Option func(*serverOptions)

type serverOptions struct {
	httpClient *http.Client
	identity   *auth.Identity
	logger     *slog.Logger
}

// WithHTTPClient supplies a caller-managed HTTP client, e.g. one with a
// caching transport. The configured timeout still applies.
func WithHTTPClient(c *http.Client) Option {
	return func(o *serverOptions) { o.httpClient = c }
}

// WithIdentity overrides the X-Plex-* identity headers sent to the server.
func WithIdentity(id auth.Identity) Option {
	return func(o *serverOptions) { o.identity = &id }
}

// WithLogger sets the logger used for per-request log lines. URLs are
// redacted before logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *serverOptions) { o.logger = l }
}

// Connect creates a Server and performs the mandatory handshake: a GET of
// the server root whose attributes populate the identity fields. Any
// failure during this step, whatever the underlying cause, is reported as
// a *pms.ConnectionError for the attempted base URL.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	identity := auth.DefaultIdentity()
	if o.identity != nil {
		identity = *o.identity
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	trOpts := []transport.HTTPTransportOption{
		transport.WithBaseHeaders(identity.Headers()),
	}
	if cfg.Timeout > 0 {
		trOpts = append(trOpts, transport.WithTimeout(cfg.Timeout))
	}
	if o.httpClient != nil {
		trOpts = append(trOpts, transport.WithHTTPClient(o.httpClient))
	}
	if cfg.InsecureSkipVerify {
		trOpts = append(trOpts, transport.WithInsecureSkipVerify(true))
	}
	tr := transport.NewHTTPTransport(trOpts...)

	if cfg.Token != "" {
		// Header-path auth; the query-param path is handled by URL().
		authn := auth.NewTokenAuth(cfg.Token)
		tr.Client().Transport = authn.Transport(tr.Client().Transport)
	}

	s := &Server{
		baseURL:   cfg.BaseURL,
		token:     cfg.Token,
		transport: tr,
		identity:  identity,
		log:       logger,
	}

	root, err := s.Query(ctx, "/")
	if err != nil || root == nil {
		if err == nil {
			err = errors.New("empty handshake response")
		}
		s.log.Error("connect failed", "baseurl", cfg.BaseURL, "err", err)
		return nil, &pms.ConnectionError{BaseURL: cfg.BaseURL, Err: err}
	}

	s.FriendlyName = root.Attr("friendlyName")
	s.MachineIdentifier = root.Attr("machineIdentifier")
	s.Version = root.Attr("version")
	s.Platform = root.Attr("platform")
	s.PlatformVersion = root.Attr("platformVersion")
	s.MyPlex = root.BoolAttr("myPlex")
	s.MyPlexMappingState = root.Attr("myPlexMappingState")
	s.MyPlexSigninState = root.Attr("myPlexSigninState")
	s.MyPlexSubscription = root.Attr("myPlexSubscription")
	s.MyPlexUsername = root.Attr("myPlexUsername")
	s.TranscoderActiveVideoSessions = root.IntAttr("transcoderActiveVideoSessions")
	s.UpdatedAt = root.Int64Attr("updatedAt")

	return s, nil
}

// BaseURL returns the server address this connection was built for.
func (s *Server) BaseURL() string {
	return s.baseURL
}

// URL returns the full URL for a server path, with the auth token appended
// as a query parameter when one is configured.
func (s *Server) URL(path string) string {
	return pms.BuildURL(s.baseURL, path, s.token)
}

// Headers returns the header set sent to the server: the identity headers
// plus the token header when a token is configured.
func (s *Server) Headers() map[string]string {
	h := s.identity.Headers()
	if s.token != "" {
		h[pms.TokenParam] = s.token
	}
	return h
}

// Query issues a GET for the given path and parses the XML response.
// Returns (nil, nil) for an empty body.
func (s *Server) Query(ctx context.Context, path string) (*pms.Node, error) {
	return s.QueryWith(ctx, http.MethodGet, path, nil, nil)
}

// QueryWith is Query with an explicit method, extra headers, and body, for
// mutating endpoints. Extra headers cannot override the auth header.
func (s *Server) QueryWith(ctx context.Context, method, path string, headers map[string]string, body io.Reader) (*pms.Node, error) {
	u := s.URL(path)
	s.log.Info("request", "method", method, "url", pms.RedactURL(u))

	data, err := s.transport.Do(ctx, method, u, headers, body)
	if err != nil {
		return nil, err
	}
	return pms.Parse(data)
}

// Library returns the server's media library. The first call fetches and
// caches it; later calls return the same reference without a request.
// There is no invalidation: reconnect for fresh data.
func (s *Server) Library(ctx context.Context) (*media.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.library != nil {
		return s.library, nil
	}
	node, err := s.Query(ctx, "/library/")
	if err != nil {
		return nil, err
	}
	s.library = media.NewLibrary(s, node)
	return s.library, nil
}

// Search queries the server-wide search endpoint. mediatype, when
// non-empty, filters the results client-side by exact type match without
// touching the server's ranking order.
func (s *Server) Search(ctx context.Context, query, mediatype string) ([]media.Entity, error) {
	items, err := s.listItems(ctx, "/search?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	if mediatype == "" {
		return items, nil
	}
	var filtered []media.Entity
	for _, item := range items {
		if item.EntityType() == mediatype {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Sessions lists the currently active playback sessions.
func (s *Server) Sessions(ctx context.Context) ([]media.Entity, error) {
	return s.listItems(ctx, "/status/sessions")
}

// History lists the watched history.
func (s *Server) History(ctx context.Context) ([]media.Entity, error) {
	return s.listItems(ctx, "/status/sessions/history/all")
}

// TranscodeImage returns the transcoding URL for a media reference at the
// given dimensions, or "" when mediaRef is empty. No request is performed;
// opacity and saturation conventionally default to 100.
func (s *Server) TranscodeImage(mediaRef string, height, width, opacity, saturation int) string {
	if mediaRef == "" {
		return ""
	}
	path := fmt.Sprintf("/photo/:/transcode?height=%d&width=%d&opacity=%d&saturation=%d&url=%s",
		height, width, opacity, saturation, url.QueryEscape(mediaRef))
	return s.URL(path)
}

// listItems fetches a container path and maps its children to entities,
// preserving server order.
func (s *Server) listItems(ctx context.Context, path string) ([]media.Entity, error) {
	node, err := s.Query(ctx, path)
	if err != nil {
		return nil, err
	}
	return media.Children(s, node), nil
}
