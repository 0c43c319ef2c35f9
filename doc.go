// Package goplex provides a client library for the Plex Media Server
// HTTP API.
//
// The library speaks the server's XML wire format and exposes its entities
// (server identity, account, connected clients, playlists, sessions) as
// typed Go values.
//
// # Architecture
//
// The library is organized into layers:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  plex/          High-level server facade                │
//	├─────────────────────────────────────────────────────────┤
//	│  media/         Entity variants + node-to-entity mapper │
//	├─────────────────────────────────────────────────────────┤
//	│  pms/           Wire protocol (URLs, XML nodes, errors) │
//	├─────────────────────────────────────────────────────────┤
//	│  pms/transport  HTTP transport   pms/auth  token auth   │
//	└─────────────────────────────────────────────────────────┘
//
// # Quick Start
//
//	cfg := plex.DefaultConfig()
//	cfg.BaseURL = "http://10.0.0.97:32400"
//	cfg.Token = os.Getenv("PLEX_TOKEN")
//	srv, err := plex.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	clients, err := srv.Clients(ctx)
package goplex
