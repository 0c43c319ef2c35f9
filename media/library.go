package media

import (
	"context"
	"strings"

	"github.com/smnsjas/go-plex/pms"
)

// Library is the media library of one server: the /library/ listing plus
// section lookups. The facade caches one Library per connection; there is
// no invalidation path, so callers needing fresh data reconnect.
type Library struct {
	q Querier

	// Title1 and Title2 are the container's display titles.
	Title1 string
	Title2 string

	// Directories are the top-level library entries (sections, recently
	// added, on deck) in server order.
	Directories []*Directory
}

// NewLibrary builds a Library from the /library/ container node.
func NewLibrary(q Querier, n *pms.Node) *Library {
	l := &Library{q: q}
	if n == nil {
		return l
	}
	l.Title1 = n.Attr("title1")
	l.Title2 = n.Attr("title2")
	for _, e := range Children(q, n) {
		if d, ok := e.(*Directory); ok {
			l.Directories = append(l.Directories, d)
		}
	}
	return l
}

// Sections fetches the server's library sections. Every call issues a
// fresh request.
func (l *Library) Sections(ctx context.Context) ([]*Directory, error) {
	node, err := l.q.Query(ctx, "/library/sections")
	if err != nil {
		return nil, err
	}
	var sections []*Directory
	for _, e := range Children(l.q, node) {
		if d, ok := e.(*Directory); ok {
			sections = append(sections, d)
		}
	}
	return sections, nil
}

// Section returns the library section with the given title,
// case-insensitive. Returns a *pms.NotFoundError when nothing matches.
func (l *Library) Section(ctx context.Context, title string) (*Directory, error) {
	sections, err := l.Sections(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sections {
		if strings.EqualFold(s.Title, title) {
			return s, nil
		}
	}
	return nil, &pms.NotFoundError{Kind: "library section", Key: title}
}
