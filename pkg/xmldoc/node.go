package xmldoc

import "fmt"

// Node is anything that can appear in a document tree and be rendered
// into the output stream.
type Node interface {
	node()
}

// Version selects the XML version declared by a document's prolog and the
// character escaping policy applied when it is rendered.
type Version int

const (
	// V10 is XML 1.0.
	V10 Version = iota
	// V11 is XML 1.1.
	V11
)

// String returns the version label used in the prolog.
func (v Version) String() string {
	if v == V11 {
		return "1.1"
	}
	return "1.0"
}

// Text is a plain character data node. The payload is stored raw and
// escaped at render time.
type Text struct {
	Data string
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// CData is a character data node rendered as a CDATA section. Its payload
// is never escaped; embedded "]]>" terminators are split across adjacent
// sections when rendered. A CData and a Text holding identical payloads
// are never equal.
type CData struct {
	Data string
}

// NewCData creates a CDATA node.
func NewCData(data string) *CData {
	return &CData{Data: data}
}

// Comment is a comment node. The text renders verbatim between the
// comment delimiters; literal "--" sequences are neutralized at render
// time so the delimiter cannot appear inside the content.
type Comment struct {
	Text string
}

// NewComment creates a comment node.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// ProcInst is a processing instruction: a target plus ordered
// pseudo-attributes.
type ProcInst struct {
	Target string

	attrs attrList
}

// NewProcInst creates a processing instruction with the given
// pseudo-attributes in order.
func NewProcInst(target string, attrs ...Attr) *ProcInst {
	pi := &ProcInst{Target: target}
	for _, a := range attrs {
		pi.attrs.set(a.Name, a.Value)
	}
	return pi
}

// SetAttr sets a pseudo-attribute, with the same ordered-map semantics as
// element attributes.
func (p *ProcInst) SetAttr(name string, value any) {
	p.attrs.set(name, value)
}

// Attrs returns the pseudo-attributes in declaration order. The returned
// slice must be treated as read-only.
func (p *ProcInst) Attrs() []Attr {
	return p.attrs
}

// Doctype is a document type declaration. A public ID may be set only
// when a system ID is also set.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
}

// NewDoctype creates a doctype declaration. The name may be empty, in
// which case the owning root element's name is used at render time.
// Supplying a public ID without a system ID fails with ErrInvalidDoctype.
func NewDoctype(name, publicID, systemID string) (*Doctype, error) {
	if publicID != "" && systemID == "" {
		return nil, fmt.Errorf("xmldoc: public ID %q: %w", publicID, ErrInvalidDoctype)
	}
	return &Doctype{Name: name, PublicID: publicID, SystemID: systemID}, nil
}

func (*Element) node()  {}
func (*Text) node()     {}
func (*CData) node()    {}
func (*Comment) node()  {}
func (*ProcInst) node() {}
func (*Doctype) node()  {}

// Equal reports whether two nodes are structurally equal. Nodes of
// different concrete kinds are never equal, even when their payloads
// match. Elements compare name, encoding, version, attributes, global
// processing instructions and the full child list recursively.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *Text:
		y, ok := b.(*Text)
		return ok && x.Data == y.Data
	case *CData:
		y, ok := b.(*CData)
		return ok && x.Data == y.Data
	case *Comment:
		y, ok := b.(*Comment)
		return ok && x.Text == y.Text
	case *ProcInst:
		y, ok := b.(*ProcInst)
		return ok && x.Target == y.Target && x.attrs.equal(y.attrs)
	case *Doctype:
		y, ok := b.(*Doctype)
		return ok && *x == *y
	case *Element:
		y, ok := b.(*Element)
		return ok && elementsEqual(x, y)
	default:
		return false
	}
}

func elementsEqual(a, b *Element) bool {
	if a.Name != b.Name || a.Encoding != b.Encoding || a.Version != b.Version {
		return false
	}
	if !a.attrs.equal(b.attrs) {
		return false
	}
	if len(a.globalPIs) != len(b.globalPIs) || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.globalPIs {
		if !Equal(a.globalPIs[i], b.globalPIs[i]) {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
