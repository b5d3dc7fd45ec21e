// Package xmlbuilder provides the public API for building and rendering
// XML documents.
//
// This is the recommended import for most applications:
//
//	import "github.com/jacobtread/xmlbuilder"
//
// Usage:
//
//	doc := xmlbuilder.Root("people", xmlbuilder.V10, "UTF-8",
//	    xmlbuilder.New("person", xmlbuilder.A("id", 1),
//	        xmlbuilder.New("firstName", "John"),
//	    ),
//	)
//	out, err := xmlbuilder.Render(doc)
package xmlbuilder

import (
	"io"

	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// =============================================================================
// Node model (re-export from pkg/xmldoc)
// =============================================================================

// Node is any member of a document tree.
type Node = xmldoc.Node

// Element is an element node with attributes and ordered children.
type Element = xmldoc.Element

// Text is a character-data node.
type Text = xmldoc.Text

// CData is a CDATA section node.
type CData = xmldoc.CData

// Comment is a comment node.
type Comment = xmldoc.Comment

// ProcInst is a processing-instruction node.
type ProcInst = xmldoc.ProcInst

// Doctype is a document type declaration.
type Doctype = xmldoc.Doctype

// Attr is a named attribute with an arbitrary value.
type Attr = xmldoc.Attr

// Version selects the XML version escaping policy.
type Version = xmldoc.Version

// XML versions.
const (
	V10 = xmldoc.V10
	V11 = xmldoc.V11
)

// Sentinel errors.
var (
	ErrNotFound       = xmldoc.ErrNotFound
	ErrInvalidDoctype = xmldoc.ErrInvalidDoctype
)

// Constructors.
var (
	New         = xmldoc.New
	Root        = xmldoc.Root
	A           = xmldoc.A
	NewText     = xmldoc.NewText
	NewCData    = xmldoc.NewCData
	NewComment  = xmldoc.NewComment
	NewProcInst = xmldoc.NewProcInst
	NewDoctype  = xmldoc.NewDoctype
)

// Equal reports whether two nodes are structurally equal.
var Equal = xmldoc.Equal

// Stringify converts an attribute value to its rendered text.
var Stringify = xmldoc.Stringify

// =============================================================================
// Rendering (re-export from pkg/render)
// =============================================================================

// RenderConfig controls document rendering.
type RenderConfig = render.Config

// Renderer renders documents with a fixed configuration.
type Renderer = render.Renderer

// DefaultRenderConfig returns the default rendering configuration:
// pretty-printed, two-space indent, self-closing empty elements.
func DefaultRenderConfig() RenderConfig {
	return render.DefaultConfig()
}

// NewRenderer creates a Renderer with the given configuration.
var NewRenderer = render.NewRenderer

// Render renders the document with the default configuration.
func Render(root *Element) (string, error) {
	return render.Render(root)
}

// RenderWith renders the document with the given configuration.
func RenderWith(root *Element, config RenderConfig) (string, error) {
	return render.NewRenderer(config).RenderToString(root)
}

// RenderTo renders the document to a writer with the given configuration.
func RenderTo(w io.Writer, root *Element, config RenderConfig) error {
	return render.NewRenderer(config).RenderToWriter(w, root)
}
