package media

import (
	"strings"

	"github.com/smnsjas/go-plex/pms"
)

// FromNode builds the typed entity for one response node.
//
// Dispatch looks at the element tag first (Directory and Playlist elements
// keep their container meaning even when they carry a media type attribute,
// e.g. a movie section), then at the type attribute. A node matching
// neither maps to *Item, the generic fallback, rather than being skipped.
func FromNode(q Querier, n *pms.Node) Entity {
	base := newItem(q, n)

	switch n.Tag {
	case "Directory":
		return &Directory{
			Item:       base,
			UUID:       n.Attr("uuid"),
			Agent:      n.Attr("agent"),
			Scanner:    n.Attr("scanner"),
			Language:   n.Attr("language"),
			Refreshing: n.BoolAttr("refreshing"),
			Art:        n.Attr("art"),
			Composite:  n.Attr("composite"),
			CreatedAt:  n.Int64Attr("createdAt"),
		}
	case "Playlist":
		return &Playlist{
			Item:         base,
			PlaylistType: n.Attr("playlistType"),
			Smart:        n.BoolAttr("smart"),
			Duration:     n.IntAttr("duration"),
			LeafCount:    n.IntAttr("leafCount"),
			Composite:    n.Attr("composite"),
		}
	}

	switch base.Type {
	case "track":
		return &Track{
			Item:             base,
			GrandparentTitle: n.Attr("grandparentTitle"),
			ParentTitle:      n.Attr("parentTitle"),
			Index:            n.IntAttr("index"),
			ParentIndex:      n.IntAttr("parentIndex"),
			Duration:         n.IntAttr("duration"),
			ViewCount:        n.IntAttr("viewCount"),
			Art:              n.Attr("art"),
		}
	case "movie":
		return &Movie{
			Item:          base,
			Year:          n.IntAttr("year"),
			Studio:        n.Attr("studio"),
			ContentRating: n.Attr("contentRating"),
			Rating:        n.Attr("rating"),
			Duration:      n.IntAttr("duration"),
			ViewCount:     n.IntAttr("viewCount"),
			Art:           n.Attr("art"),
		}
	case "episode":
		return &Episode{
			Item:             base,
			GrandparentTitle: n.Attr("grandparentTitle"),
			ParentIndex:      n.IntAttr("parentIndex"),
			Index:            n.IntAttr("index"),
			Duration:         n.IntAttr("duration"),
			ViewCount:        n.IntAttr("viewCount"),
		}
	case "photo":
		return &Photo{
			Item:                  base,
			ParentKey:             n.Attr("parentKey"),
			Index:                 n.IntAttr("index"),
			Year:                  n.IntAttr("year"),
			OriginallyAvailableAt: n.Attr("originallyAvailableAt"),
		}
	case "playlist":
		return &Playlist{
			Item:         base,
			PlaylistType: n.Attr("playlistType"),
			Smart:        n.BoolAttr("smart"),
			Duration:     n.IntAttr("duration"),
			LeafCount:    n.IntAttr("leafCount"),
			Composite:    n.Attr("composite"),
		}
	}

	item := base
	return &item
}

// Children maps every child of a container node, preserving server order.
// A nil node (the empty-body sentinel) maps to an empty list.
func Children(q Querier, n *pms.Node) []Entity {
	if n == nil {
		return nil
	}
	items := make([]Entity, 0, len(n.Children))
	for _, child := range n.Children {
		items = append(items, FromNode(q, child))
	}
	return items
}

func newItem(q Querier, n *pms.Node) Item {
	typ := n.Attr("type")
	if typ == "" {
		typ = strings.ToLower(n.Tag)
	}
	return Item{
		q:         q,
		Tag:       n.Tag,
		Type:      typ,
		Key:       n.Attr("key"),
		RatingKey: n.Attr("ratingKey"),
		Title:     n.Attr("title"),
		Summary:   n.Attr("summary"),
		Thumb:     n.Attr("thumb"),
		AddedAt:   n.Int64Attr("addedAt"),
		UpdatedAt: n.Int64Attr("updatedAt"),
		Attrib:    n.Attrib,
	}
}
