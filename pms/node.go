package pms

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

// Node is one parsed XML element: its tag, attributes, and child elements
// in document order. Trees are built fresh per response and are not shared
// or mutated after Parse returns.
type Node struct {
	// Tag is the element name, e.g. "MediaContainer" or "Directory".
	Tag string

	// Attrib maps attribute names to their raw string values. No type
	// coercion happens here; use the accessor methods for that.
	Attrib map[string]string

	// Children holds the child elements in server order.
	Children []*Node
}

// Parse decodes raw response bytes into a Node tree.
//
// A zero-length body returns (nil, nil): the "no content" sentinel some
// endpoints legitimately produce. Malformed XML returns a *ParseError.
func Parse(raw []byte) (*Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Tag:    t.Name.Local,
				Attrib: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				n.Attrib[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &ParseError{Err: errors.New("multiple root elements")}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	return root, nil
}

// Attr returns the named attribute, or "" when absent. The server's
// attribute set varies by content type and version, so absence is normal.
func (n *Node) Attr(key string) string {
	return n.Attrib[key]
}

// IntAttr returns the named attribute as an int, or 0 when absent or
// not numeric.
func (n *Node) IntAttr(key string) int {
	v, err := strconv.Atoi(n.Attrib[key])
	if err != nil {
		return 0
	}
	return v
}

// Int64Attr returns the named attribute as an int64, or 0 when absent or
// not numeric. Used for epoch timestamps like updatedAt.
func (n *Node) Int64Attr(key string) int64 {
	v, err := strconv.ParseInt(n.Attrib[key], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// BoolAttr reports whether the named attribute is present and truthy.
// Server convention: an attribute is true when present and not "" or "0".
// An attribute literally present but equal to "0" is false.
func (n *Node) BoolAttr(key string) bool {
	v, ok := n.Attrib[key]
	return ok && v != "" && v != "0"
}
