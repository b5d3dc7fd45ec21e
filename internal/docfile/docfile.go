// Package docfile loads document descriptions from JSON files and builds
// element trees from them. The render, serve, and preview commands all
// consume this format.
//
// A minimal description:
//
//	{
//	  "prolog": true,
//	  "root": {
//	    "element": {
//	      "name": "people",
//	      "attributes": [{"name": "xmlns", "value": "http://example.com/people"}],
//	      "children": [
//	        {"element": {"name": "person", "children": [{"text": "John"}]}}
//	      ]
//	    }
//	  }
//	}
package docfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// ErrInvalidDocument indicates a structurally invalid document description.
var ErrInvalidDocument = errors.New("docfile: invalid document description")

// Document is the top-level document description.
type Document struct {
	// Version is "1.0" (default) or "1.1".
	Version string `json:"version,omitempty"`

	// Encoding names the document encoding. Default: "UTF-8".
	Encoding string `json:"encoding,omitempty"`

	// Prolog emits the XML declaration before the root element.
	Prolog bool `json:"prolog,omitempty"`

	// Standalone sets the standalone pseudo-attribute when Prolog is on.
	Standalone *bool `json:"standalone,omitempty"`

	// Doctype is an optional document type declaration.
	Doctype *DoctypeSpec `json:"doctype,omitempty"`

	// GlobalPIs are processing instructions emitted before the root element.
	GlobalPIs []PISpec `json:"globalProcessingInstructions,omitempty"`

	// Root is the root element.
	Root NodeSpec `json:"root"`
}

// DoctypeSpec describes a document type declaration.
type DoctypeSpec struct {
	Name     string `json:"name,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	SystemID string `json:"systemId,omitempty"`
}

// PISpec describes a processing instruction.
type PISpec struct {
	Target     string `json:"target"`
	Attributes []Pair `json:"attributes,omitempty"`
}

// Pair is an ordered attribute.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NodeSpec describes a single node. Exactly one field must be set.
type NodeSpec struct {
	Element               *ElementSpec `json:"element,omitempty"`
	Text                  *string      `json:"text,omitempty"`
	CData                 *string      `json:"cdata,omitempty"`
	Comment               *string      `json:"comment,omitempty"`
	ProcessingInstruction *PISpec      `json:"processingInstruction,omitempty"`
}

// ElementSpec describes an element node.
type ElementSpec struct {
	Name       string     `json:"name"`
	Attributes []Pair     `json:"attributes,omitempty"`
	Children   []NodeSpec `json:"children,omitempty"`
}

// Load reads and parses a document description file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docfile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a document description from JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("docfile: %w", err)
	}
	if doc.Root.Element == nil {
		return nil, fmt.Errorf("%w: root must be an element", ErrInvalidDocument)
	}
	return &doc, nil
}

// Build constructs the element tree the description denotes.
func (d *Document) Build() (*xmldoc.Element, error) {
	root, err := buildElement(d.Root.Element)
	if err != nil {
		return nil, err
	}

	root.IncludeProlog = d.Prolog
	root.Standalone = d.Standalone
	if d.Encoding != "" {
		root.Encoding = d.Encoding
	}
	switch d.Version {
	case "", "1.0":
		root.Version = xmldoc.V10
	case "1.1":
		root.Version = xmldoc.V11
	default:
		return nil, fmt.Errorf("%w: unknown version %q", ErrInvalidDocument, d.Version)
	}

	if d.Doctype != nil {
		if err := root.DeclareDoctype(d.Doctype.Name, d.Doctype.PublicID, d.Doctype.SystemID); err != nil {
			return nil, err
		}
	}
	for _, pi := range d.GlobalPIs {
		root.GlobalProcessingInstruction(pi.Target, pairsToAttrs(pi.Attributes)...)
	}
	return root, nil
}

func buildElement(spec *ElementSpec) (*xmldoc.Element, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: element requires a name", ErrInvalidDocument)
	}

	el := xmldoc.New(spec.Name)
	for _, attr := range spec.Attributes {
		el.SetAttr(attr.Name, attr.Value)
	}
	for i, child := range spec.Children {
		node, err := buildNode(child)
		if err != nil {
			return nil, fmt.Errorf("child %d of <%s>: %w", i, spec.Name, err)
		}
		el.AddChild(node)
	}
	return el, nil
}

func buildNode(spec NodeSpec) (xmldoc.Node, error) {
	set := 0
	if spec.Element != nil {
		set++
	}
	if spec.Text != nil {
		set++
	}
	if spec.CData != nil {
		set++
	}
	if spec.Comment != nil {
		set++
	}
	if spec.ProcessingInstruction != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: node must set exactly one kind, got %d", ErrInvalidDocument, set)
	}

	switch {
	case spec.Element != nil:
		return buildElement(spec.Element)
	case spec.Text != nil:
		return xmldoc.NewText(*spec.Text), nil
	case spec.CData != nil:
		return xmldoc.NewCData(*spec.CData), nil
	case spec.Comment != nil:
		return xmldoc.NewComment(*spec.Comment), nil
	default:
		return xmldoc.NewProcInst(spec.ProcessingInstruction.Target,
			pairsToAttrs(spec.ProcessingInstruction.Attributes)...), nil
	}
}

func pairsToAttrs(pairs []Pair) []xmldoc.Attr {
	attrs := make([]xmldoc.Attr, 0, len(pairs))
	for _, p := range pairs {
		attrs = append(attrs, xmldoc.A(p.Name, p.Value))
	}
	return attrs
}
