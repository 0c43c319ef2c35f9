package plex

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/smnsjas/go-plex/media"
	"github.com/smnsjas/go-plex/pms"
)

// Playlists lists the server's playlists. Every call issues a fresh
// request.
func (s *Server) Playlists(ctx context.Context) ([]media.Entity, error) {
	return s.listItems(ctx, "/playlists")
}

// Playlist returns the playlist with the given title, exact match over a
// fresh listing. No match returns a *pms.NotFoundError carrying the title.
func (s *Server) Playlist(ctx context.Context, title string) (*media.Playlist, error) {
	items, err := s.Playlists(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if p, ok := item.(*media.Playlist); ok && p.Title == title {
			return p, nil
		}
	}
	return nil, &pms.NotFoundError{Kind: "playlist title", Key: title}
}

// CreatePlaylist creates a playlist holding the items identified by the
// given rating keys, in order. This is one of the mutating endpoints and
// goes out as a POST.
func (s *Server) CreatePlaylist(ctx context.Context, title string, ratingKeys []string) (*media.Playlist, error) {
	if len(ratingKeys) == 0 {
		return nil, errors.New("at least one rating key is required")
	}

	args := url.Values{}
	args.Set("title", title)
	args.Set("type", "audio")
	args.Set("smart", "0")
	args.Set("uri", s.libraryURI(ratingKeys))

	node, err := s.QueryWith(ctx, http.MethodPost, "/playlists?"+args.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}
	for _, item := range media.Children(s, node) {
		if p, ok := item.(*media.Playlist); ok {
			return p, nil
		}
	}
	return nil, errors.New("server returned no playlist")
}

// PlayQueue is a transient queue of items queued for playback on a client.
type PlayQueue struct {
	ID             int
	SelectedItemID int
	Items          []media.Entity
}

// CreatePlayQueue creates a play queue seeded with the item identified by
// the given rating key.
func (s *Server) CreatePlayQueue(ctx context.Context, ratingKey string) (*PlayQueue, error) {
	args := url.Values{}
	args.Set("type", "video")
	args.Set("shuffle", "0")
	args.Set("repeat", "0")
	args.Set("continuous", "0")
	args.Set("uri", s.libraryURI([]string{ratingKey}))

	node, err := s.QueryWith(ctx, http.MethodPost, "/playQueues?"+args.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.New("empty play queue response")
	}
	return &PlayQueue{
		ID:             node.IntAttr("playQueueID"),
		SelectedItemID: node.IntAttr("playQueueSelectedItemID"),
		Items:          media.Children(s, node),
	}, nil
}

// libraryURI builds the server-scoped library URI the playlist and play
// queue endpoints expect for a set of items.
func (s *Server) libraryURI(ratingKeys []string) string {
	return "server://" + s.MachineIdentifier +
		"/com.plexapp.plugins.library/library/metadata/" + strings.Join(ratingKeys, ",")
}
