package xmldoc

import "testing"

func TestNewWithMixedArgs(t *testing.T) {
	inner := New("inner")
	el := New("outer",
		A("id", 7),
		[]Attr{{Name: "class", Value: "x"}, {Name: "id", Value: 8}},
		nil,
		inner,
		[]Node{NewComment("c"), NewCData("d")},
		"trailing text",
	)

	if got := Stringify(el.Attr("id")); got != "8" {
		t.Errorf("later attr args update earlier ones, got id=%q", got)
	}
	attrs := el.Attrs()
	if len(attrs) != 2 || attrs[0].Name != "id" || attrs[1].Name != "class" {
		t.Errorf("attribute order should follow first set, got %v", attrs)
	}

	children := el.Children()
	if len(children) != 4 {
		t.Fatalf("got %d children, want 4", len(children))
	}
	if children[0] != Node(inner) {
		t.Error("node argument should be appended as-is")
	}
	text, ok := children[3].(*Text)
	if !ok || text.Data != "trailing text" {
		t.Errorf("string argument should become a text child, got %#v", children[3])
	}
}

func TestRoot(t *testing.T) {
	el := Root("catalog", V11, "ISO-8859-1", A("version", "2"))
	if !el.IncludeProlog {
		t.Error("Root should enable the prolog")
	}
	if el.Version != V11 || el.Encoding != "ISO-8859-1" {
		t.Errorf("got version=%v encoding=%q", el.Version, el.Encoding)
	}
	if !el.HasAttr("version") {
		t.Error("builder args should apply")
	}
}
