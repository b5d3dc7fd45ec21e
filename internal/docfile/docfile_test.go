package docfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

const peopleJSON = `{
  "prolog": true,
  "root": {
    "element": {
      "name": "people",
      "attributes": [{"name": "xmlns", "value": "http://example.com/people"}],
      "children": [
        {
          "element": {
            "name": "person",
            "attributes": [{"name": "id", "value": "1"}],
            "children": [
              {"element": {"name": "firstName", "children": [{"text": "John"}]}},
              {"comment": "primary contact"}
            ]
          }
        }
      ]
    }
  }
}`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(peopleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := doc.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Name != "people" || !root.IncludeProlog {
		t.Errorf("got name=%q prolog=%v", root.Name, root.IncludeProlog)
	}
	if got := xmldoc.Stringify(root.Attr("xmlns")); got != "http://example.com/people" {
		t.Errorf("got xmlns=%q", got)
	}

	person := root.FirstOrNil("person")
	if person == nil {
		t.Fatal("person child missing")
	}
	if len(person.Children()) != 2 {
		t.Fatalf("got %d children, want 2", len(person.Children()))
	}
	if _, ok := person.Children()[1].(*xmldoc.Comment); !ok {
		t.Errorf("second child should be a comment, got %#v", person.Children()[1])
	}
}

func TestBuildVersionAndDoctype(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "version": "1.1",
	  "encoding": "ISO-8859-1",
	  "doctype": {"systemId": "strict.dtd"},
	  "globalProcessingInstructions": [
	    {"target": "xml-stylesheet", "attributes": [{"name": "href", "value": "s.xsl"}]}
	  ],
	  "root": {"element": {"name": "r"}}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := doc.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Version != xmldoc.V11 || root.Encoding != "ISO-8859-1" {
		t.Errorf("got version=%v encoding=%q", root.Version, root.Encoding)
	}
	if root.DoctypeDecl() == nil || root.DoctypeDecl().SystemID != "strict.dtd" {
		t.Errorf("doctype not applied: %+v", root.DoctypeDecl())
	}
	if len(root.GlobalProcInsts()) != 1 {
		t.Errorf("got %d global instructions, want 1", len(root.GlobalProcInsts()))
	}
}

func TestBuildRenders(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "root": {
	    "element": {
	      "name": "script",
	      "children": [{"cdata": "a ]]> b"}]
	    }
	  }
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, err := doc.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := render.NewRenderer(render.Config{Pretty: false}).RenderToString(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<script><![CDATA[a ]]]]><![CDATA[> b]]></script>"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "{"},
		{"missing root", `{}`},
		{"root not element", `{"root": {"text": "x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.in)); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown version", `{"version": "2.0", "root": {"element": {"name": "r"}}}`},
		{"element without name", `{"root": {"element": {"name": "r", "children": [{"element": {}}]}}}`},
		{"ambiguous node", `{"root": {"element": {"name": "r", "children": [{"text": "a", "comment": "b"}]}}}`},
		{"empty node", `{"root": {"element": {"name": "r", "children": [{}]}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("parse should succeed, got %v", err)
			}
			if _, err := doc.Build(); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("want ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestBuildInvalidDoctype(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "doctype": {"publicId": "-//X//EN"},
	  "root": {"element": {"name": "r"}}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := doc.Build(); !errors.Is(err, xmldoc.ErrInvalidDoctype) {
		t.Errorf("want ErrInvalidDoctype, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(peopleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Root.Element.Name != "people" {
		t.Errorf("got %q", doc.Root.Element.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}
}
