package pms

import (
	"testing"
)

const sampleContainer = `<MediaContainer size="2" friendlyName="myserver">
  <Directory key="/library/sections/1" title="Movies" type="movie"/>
  <Directory key="/library/sections/2" title="Music" type="artist"/>
</MediaContainer>`

func TestParse_EmptyBodyIsSentinel(t *testing.T) {
	node, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty body must not error, got %v", err)
	}
	if node != nil {
		t.Fatalf("empty body must parse to the nil sentinel, got %+v", node)
	}

	node, err = Parse([]byte{})
	if err != nil || node != nil {
		t.Fatalf("zero-length body must parse to (nil, nil), got (%+v, %v)", node, err)
	}
}

func TestParse_SentinelDistinctFromPopulatedNode(t *testing.T) {
	empty, _ := Parse(nil)
	populated, err := Parse([]byte(`<MediaContainer size="0"/>`))
	if err != nil {
		t.Fatal(err)
	}
	if populated == nil {
		t.Fatal("a populated (if childless) document must not be the sentinel")
	}
	if empty == populated {
		t.Fatal("sentinel and populated node must be distinguishable")
	}
}

func TestParse_Tree(t *testing.T) {
	node, err := Parse([]byte(sampleContainer))
	if err != nil {
		t.Fatal(err)
	}
	if node.Tag != "MediaContainer" {
		t.Errorf("root tag: got %q", node.Tag)
	}
	if got := node.Attr("friendlyName"); got != "myserver" {
		t.Errorf("friendlyName: got %q", got)
	}
	if len(node.Children) != 2 {
		t.Fatalf("children: got %d, want 2", len(node.Children))
	}
	// Server order is preserved.
	if node.Children[0].Attr("title") != "Movies" || node.Children[1].Attr("title") != "Music" {
		t.Errorf("child order not preserved: %q, %q",
			node.Children[0].Attr("title"), node.Children[1].Attr("title"))
	}
}

func TestParse_MalformedIsParseError(t *testing.T) {
	_, err := Parse([]byte(`<MediaContainer><unclosed>`))
	if err == nil {
		t.Fatal("malformed input must fail")
	}
	if !IsParseError(err) {
		t.Fatalf("want ParseError, got %T: %v", err, err)
	}
	if IsBadRequest(err) {
		t.Fatal("ParseError must be distinct from BadRequest")
	}
}

func TestParse_NotXMLIsParseError(t *testing.T) {
	_, err := Parse([]byte(`{"not": "xml"}`))
	if !IsParseError(err) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestNode_Attr_MissingIsEmpty(t *testing.T) {
	node, _ := Parse([]byte(`<Video title="Up"/>`))
	if got := node.Attr("summary"); got != "" {
		t.Errorf("missing attr: got %q, want empty", got)
	}
}

func TestNode_IntAttr(t *testing.T) {
	node, _ := Parse([]byte(`<Server updatedAt="1466693046" bogus="abc"/>`))
	if got := node.IntAttr("updatedAt"); got != 1466693046 {
		t.Errorf("got %d", got)
	}
	if got := node.IntAttr("missing"); got != 0 {
		t.Errorf("missing numeric attr must default to 0, got %d", got)
	}
	if got := node.IntAttr("bogus"); got != 0 {
		t.Errorf("non-numeric attr must default to 0, got %d", got)
	}
	if got := node.Int64Attr("updatedAt"); got != 1466693046 {
		t.Errorf("got %d", got)
	}
}

func TestNode_BoolAttr(t *testing.T) {
	node, _ := Parse([]byte(`<Server myPlex="1" smart="0" refreshing="" secure="true"/>`))

	if !node.BoolAttr("myPlex") {
		t.Error("present non-zero attr must be true")
	}
	// The server quirk: literally present but "0" means false.
	if node.BoolAttr("smart") {
		t.Error(`attr equal to "0" must be false`)
	}
	if node.BoolAttr("refreshing") {
		t.Error("present but empty attr must be false")
	}
	if !node.BoolAttr("secure") {
		t.Error("present textual attr must be true")
	}
	if node.BoolAttr("missing") {
		t.Error("absent attr must be false")
	}
}
