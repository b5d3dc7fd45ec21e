package xmldoc

import (
	"errors"
	"testing"
)

func childNames(e *Element) []string {
	var names []string
	for _, c := range e.Children() {
		switch n := c.(type) {
		case *Element:
			names = append(names, n.Name)
		case *Text:
			names = append(names, "#text")
		default:
			names = append(names, "#other")
		}
	}
	return names
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddChildIgnoresNil(t *testing.T) {
	e := New("root")
	e.AddChild(nil)
	if len(e.Children()) != 0 {
		t.Errorf("nil child should be ignored, got %d children", len(e.Children()))
	}
}

func TestInsertBefore(t *testing.T) {
	root := New("root")
	a, b := New("a"), New("b")
	root.AddChild(a)
	root.AddChild(b)

	mid := New("mid")
	if err := root.InsertBefore(mid, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childNames(root); !sameNames(got, []string{"a", "mid", "b"}) {
		t.Errorf("got %v, want [a mid b]", got)
	}

	stranger := New("stranger")
	if err := root.InsertBefore(New("x"), stranger); !errors.Is(err, ErrNotFound) {
		t.Errorf("insert before a non-child should fail with ErrNotFound, got %v", err)
	}
}

func TestInsertAfter(t *testing.T) {
	root := New("root")
	a, b := New("a"), New("b")
	root.AddChild(a)
	root.AddChild(b)

	if err := root.InsertAfter(New("mid"), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childNames(root); !sameNames(got, []string{"a", "mid", "b"}) {
		t.Errorf("got %v, want [a mid b]", got)
	}

	// Inserting after the last child appends.
	if err := root.InsertAfter(New("tail"), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childNames(root); !sameNames(got, []string{"a", "mid", "b", "tail"}) {
		t.Errorf("got %v, want [a mid b tail]", got)
	}

	if err := root.InsertAfter(New("x"), New("ghost")); !errors.Is(err, ErrNotFound) {
		t.Errorf("insert after a non-child should fail with ErrNotFound, got %v", err)
	}
}

func TestRemoveChild(t *testing.T) {
	root := New("root")
	a, b, c := New("a"), New("b"), New("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	if err := root.RemoveChild(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childNames(root); !sameNames(got, []string{"a", "c"}) {
		t.Errorf("sibling order should be preserved, got %v", got)
	}

	if err := root.RemoveChild(b); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing twice should fail with ErrNotFound, got %v", err)
	}

	// Identity lookup: a structurally equal but distinct node is not a child.
	twin := New("a")
	if err := root.RemoveChild(twin); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup is by identity, not structure, got %v", err)
	}
}

func TestReplaceChild(t *testing.T) {
	root := New("root")
	a, b := New("a"), New("b")
	root.AddChild(a)
	root.AddChild(b)

	swap := New("swap")
	if err := root.ReplaceChild(a, swap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childNames(root); !sameNames(got, []string{"swap", "b"}) {
		t.Errorf("replacement should keep position, got %v", got)
	}

	if err := root.ReplaceChild(a, New("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("replacing a removed node should fail with ErrNotFound, got %v", err)
	}
}

func TestAttributeOrderAndUpdate(t *testing.T) {
	e := New("e")
	e.SetAttr("first", 1)
	e.SetAttr("second", 2)
	e.SetAttr("first", 10)

	attrs := e.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("re-setting a key must not duplicate it, got %d attrs", len(attrs))
	}
	if attrs[0].Name != "first" || attrs[1].Name != "second" {
		t.Errorf("first set fixes position, got %v then %v", attrs[0].Name, attrs[1].Name)
	}
	if got := Stringify(e.Attr("first")); got != "10" {
		t.Errorf("value should update, got %q", got)
	}
}

func TestAttributeRemoval(t *testing.T) {
	e := New("e")
	e.SetAttr("id", "1")
	if !e.HasAttr("id") {
		t.Fatal("attribute should be present")
	}

	e.SetAttr("id", nil)
	if e.HasAttr("id") {
		t.Error("setting nil should remove the attribute")
	}

	e.SetAttr("name", "x")
	e.RemoveAttr("name")
	if e.HasAttr("name") {
		t.Error("RemoveAttr should remove the attribute")
	}
	if e.Attr("name") != nil {
		t.Error("absent attribute should read as nil")
	}
}

func TestNamespaces(t *testing.T) {
	e := New("e")
	e.DefaultNamespace("http://example.com/default")
	e.Namespace("x", "http://example.com/x")
	e.Namespace("", "http://example.com/changed")

	if got := Stringify(e.Attr("xmlns")); got != "http://example.com/changed" {
		t.Errorf("got %q", got)
	}
	if got := Stringify(e.Attr("xmlns:x")); got != "http://example.com/x" {
		t.Errorf("got %q", got)
	}
}

func TestDeclareDoctype(t *testing.T) {
	e := New("html")
	if err := e.DeclareDoctype("", "", "strict.dtd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.DoctypeDecl() == nil || e.DoctypeDecl().SystemID != "strict.dtd" {
		t.Errorf("doctype should be stored, got %+v", e.DoctypeDecl())
	}

	// Redeclaring replaces the previous doctype.
	if err := e.DeclareDoctype("html", "", "loose.dtd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.DoctypeDecl().SystemID; got != "loose.dtd" {
		t.Errorf("got %q, want %q", got, "loose.dtd")
	}

	err := e.DeclareDoctype("html", "-//W3C//DTD//EN", "")
	if !errors.Is(err, ErrInvalidDoctype) {
		t.Errorf("want ErrInvalidDoctype, got %v", err)
	}
	if got := e.DoctypeDecl().SystemID; got != "loose.dtd" {
		t.Errorf("failed declaration must not replace the doctype, got %q", got)
	}
}

func TestProcessingInstructions(t *testing.T) {
	e := New("root")
	e.ProcessingInstruction("php", A("echo", "1"))
	if len(e.Children()) != 1 {
		t.Fatalf("local instruction should be a child, got %d children", len(e.Children()))
	}

	e.GlobalProcessingInstruction("xml-stylesheet", A("href", "style.xsl"))
	if len(e.GlobalProcInsts()) != 1 {
		t.Fatalf("global instruction should be recorded, got %d", len(e.GlobalProcInsts()))
	}
	if len(e.Children()) != 1 {
		t.Error("global instruction must not appear in the child list")
	}
}

func TestNameQueries(t *testing.T) {
	root := New("root")
	root.AddChild(NewText("noise"))
	root.AddChild(New("item", A("id", 1)))
	root.AddChild(NewComment("noise"))
	root.AddChild(New("item", A("id", 2)))
	root.AddChild(New("other"))

	items := root.ChildrenNamed("item")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first, err := root.First("item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Stringify(first.Attr("id")); got != "1" {
		t.Errorf("First should return the first match, got id=%q", got)
	}

	if _, err := root.First("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}

	if root.FirstOrNil("missing") != nil {
		t.Error("FirstOrNil should return nil for no match")
	}
	if !root.Exists("other") || root.Exists("missing") {
		t.Error("Exists should reflect direct element children")
	}

	wide := root.Filter(func(e *Element) bool { return e.HasAttr("id") })
	if len(wide) != 2 {
		t.Errorf("Filter got %d matches, want 2", len(wide))
	}
}
