// Package media defines the typed entities a Plex Media Server returns and
// the mapping from parsed response nodes onto them.
//
// Entities are lossy, best-effort projections of the server's schema: the
// attribute set varies by library type and server version, so a missing
// attribute yields the field's zero value, never an error.
package media

import (
	"context"
	"errors"

	"github.com/smnsjas/go-plex/pms"
)

// Querier issues follow-up requests on behalf of an entity. The server
// facade satisfies it. Entities hold it as a non-owning reference; an
// entity never keeps a connection alive.
type Querier interface {
	// Query fetches the given server path and parses the response.
	Query(ctx context.Context, path string) (*pms.Node, error)

	// URL returns the full, authenticated URL for a server path.
	URL(path string) string
}

// Entity is any typed object built from a response node.
type Entity interface {
	// EntityType returns the server's type attribute for the item, e.g.
	// "track" or "movie". Unknown types map to *Item with the raw value.
	EntityType() string

	// EntityTitle returns the item title.
	EntityTitle() string
}

// Item holds the attributes common to every listed entity. It doubles as
// the generic fallback for types this library does not know: the list
// returned to callers stays the same length as the server's response, and
// the raw attributes remain readable through Attrib.
type Item struct {
	q Querier

	// Tag is the XML element name the item was parsed from.
	Tag string

	// Type is the server's type attribute, or the lowercased tag when the
	// attribute is absent.
	Type string

	Key       string
	RatingKey string
	Title     string
	Summary   string
	Thumb     string
	AddedAt   int64
	UpdatedAt int64

	// Attrib is the raw attribute map of the source node.
	Attrib map[string]string
}

// EntityType implements Entity.
func (i *Item) EntityType() string { return i.Type }

// EntityTitle implements Entity.
func (i *Item) EntityTitle() string { return i.Title }

// Track is an audio track.
type Track struct {
	Item

	// GrandparentTitle is the artist, ParentTitle the album.
	GrandparentTitle string
	ParentTitle      string
	Index            int
	ParentIndex      int
	Duration         int
	ViewCount        int
	Art              string
}

// Movie is a video item of type movie.
type Movie struct {
	Item

	Year          int
	Studio        string
	ContentRating string
	Rating        string
	Duration      int
	ViewCount     int
	Art           string
}

// Episode is a video item of type episode.
type Episode struct {
	Item

	// GrandparentTitle is the show, ParentIndex the season.
	GrandparentTitle string
	ParentIndex      int
	Index            int
	Duration         int
	ViewCount        int
}

// Photo is a photo item.
type Photo struct {
	Item

	ParentKey             string
	Index                 int
	Year                  int
	OriginallyAvailableAt string
}

// Directory is a browsable container, e.g. a library section.
type Directory struct {
	Item

	UUID       string
	Agent      string
	Scanner    string
	Language   string
	Refreshing bool
	Art        string
	Composite  string
	CreatedAt  int64
}

// Playlist is a saved playlist. Its Key points at the full item listing;
// use Items to fetch it.
type Playlist struct {
	Item

	PlaylistType string
	Smart        bool
	Duration     int
	LeafCount    int
	Composite    string
}

// Items fetches the playlist's full contents through the connection the
// playlist was listed from.
func (p *Playlist) Items(ctx context.Context) ([]Entity, error) {
	if p.q == nil {
		return nil, errors.New("playlist is not attached to a server")
	}
	node, err := p.q.Query(ctx, p.Key)
	if err != nil {
		return nil, err
	}
	return Children(p.q, node), nil
}
