package xmldoc

import "fmt"

// Element is a named tree node carrying ordered attributes and ordered
// children. An element owns its children exclusively: the tree is a tree,
// not a general graph, and a node must not be attached under two parents.
//
// The prolog, encoding, version, standalone, doctype and global
// processing-instruction fields take effect only when the element is
// rendered as the document root; they are ignored on nested elements.
type Element struct {
	// Name is the element's tag name.
	Name string

	// IncludeProlog emits the <?xml ...?> declaration when this element
	// is rendered as the root.
	IncludeProlog bool

	// Encoding is the character encoding label declared by the prolog.
	// Empty means "UTF-8".
	Encoding string

	// Version selects the declared XML version and the escaping policy.
	Version Version

	// Standalone sets the optional standalone="yes|no" prolog attribute
	// when non-nil.
	Standalone *bool

	attrs     attrList
	children  []Node
	doctype   *Doctype
	globalPIs []*ProcInst
}

// Children returns the child list in order. The returned slice must be
// treated as read-only; use the mutation methods to change it.
func (e *Element) Children() []Node {
	return e.children
}

// AddChild appends a node to the child list. Nil nodes are ignored.
func (e *Element) AddChild(n Node) {
	if n == nil {
		return
	}
	e.children = append(e.children, n)
}

// InsertBefore splices a node immediately before an existing direct
// child. It fails with ErrNotFound when before is not a direct child.
func (e *Element) InsertBefore(n, before Node) error {
	i := e.indexOf(before)
	if i < 0 {
		return fmt.Errorf("xmldoc: insert before in %q: %w", e.Name, ErrNotFound)
	}
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = n
	return nil
}

// InsertAfter splices a node immediately after an existing direct child,
// appending when after is the last child. It fails with ErrNotFound when
// after is not a direct child.
func (e *Element) InsertAfter(n, after Node) error {
	i := e.indexOf(after)
	if i < 0 {
		return fmt.Errorf("xmldoc: insert after in %q: %w", e.Name, ErrNotFound)
	}
	e.children = append(e.children, nil)
	copy(e.children[i+2:], e.children[i+1:])
	e.children[i+1] = n
	return nil
}

// RemoveChild removes a direct child, preserving the order of the
// remaining siblings. It fails with ErrNotFound when n is not a direct
// child.
func (e *Element) RemoveChild(n Node) error {
	i := e.indexOf(n)
	if i < 0 {
		return fmt.Errorf("xmldoc: remove from %q: %w", e.Name, ErrNotFound)
	}
	e.children = append(e.children[:i], e.children[i+1:]...)
	return nil
}

// ReplaceChild substitutes replacement for an existing direct child in
// place. It fails with ErrNotFound when existing is not a direct child.
func (e *Element) ReplaceChild(existing, replacement Node) error {
	i := e.indexOf(existing)
	if i < 0 {
		return fmt.Errorf("xmldoc: replace in %q: %w", e.Name, ErrNotFound)
	}
	e.children[i] = replacement
	return nil
}

// indexOf locates a direct child by node identity. All nodes are handled
// as pointers, so identity is a stable per-node key.
func (e *Element) indexOf(n Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

// SetAttr sets an attribute. The first set of a name fixes its render
// position; later sets update the value only. Setting nil removes the
// attribute.
func (e *Element) SetAttr(name string, value any) {
	e.attrs.set(name, value)
}

// Attr returns the attribute value for name, or nil when absent.
func (e *Element) Attr(name string) any {
	v, _ := e.attrs.get(name)
	return v
}

// HasAttr reports whether an attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs.get(name)
	return ok
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.attrs.remove(name)
}

// Attrs returns the attributes in insertion order. The returned slice
// must be treated as read-only.
func (e *Element) Attrs() []Attr {
	return e.attrs
}

// Namespace declares a namespace prefix, setting the xmlns:prefix
// attribute. An empty prefix declares the default namespace.
func (e *Element) Namespace(prefix, uri string) {
	if prefix == "" {
		e.DefaultNamespace(uri)
		return
	}
	e.SetAttr("xmlns:"+prefix, uri)
}

// DefaultNamespace declares the default namespace, setting the xmlns
// attribute.
func (e *Element) DefaultNamespace(uri string) {
	e.SetAttr("xmlns", uri)
}

// DeclareDoctype sets the document type declaration, replacing any
// existing one. An empty name defaults to the root element's name at
// render time. A public ID without a system ID fails with
// ErrInvalidDoctype.
func (e *Element) DeclareDoctype(name, publicID, systemID string) error {
	dt, err := NewDoctype(name, publicID, systemID)
	if err != nil {
		return err
	}
	e.doctype = dt
	return nil
}

// DoctypeDecl returns the document type declaration, or nil.
func (e *Element) DoctypeDecl() *Doctype {
	return e.doctype
}

// ProcessingInstruction appends a processing instruction to this
// element's children.
func (e *Element) ProcessingInstruction(target string, attrs ...Attr) *ProcInst {
	pi := NewProcInst(target, attrs...)
	e.AddChild(pi)
	return pi
}

// GlobalProcessingInstruction appends a document-global processing
// instruction. Global instructions render before the root's open tag,
// and only when this element is rendered as the root; on a nested
// element the declaration is a silent no-op.
func (e *Element) GlobalProcessingInstruction(target string, attrs ...Attr) *ProcInst {
	pi := NewProcInst(target, attrs...)
	e.globalPIs = append(e.globalPIs, pi)
	return pi
}

// GlobalProcInsts returns the document-global processing instructions in
// declaration order.
func (e *Element) GlobalProcInsts() []*ProcInst {
	return e.globalPIs
}

// ChildrenNamed returns the direct child elements with the given name.
// Non-element children are excluded from name-based queries.
func (e *Element) ChildrenNamed(name string) []*Element {
	return e.Filter(func(c *Element) bool { return c.Name == name })
}

// Filter returns the direct child elements matching the predicate.
func (e *Element) Filter(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok && pred(el) {
			out = append(out, el)
		}
	}
	return out
}

// First returns the first direct child element with the given name, or
// an error wrapping ErrNotFound when none matches.
func (e *Element) First(name string) (*Element, error) {
	if el := e.FirstOrNil(name); el != nil {
		return el, nil
	}
	return nil, fmt.Errorf("xmldoc: %q has no child element %q: %w", e.Name, name, ErrNotFound)
}

// FirstOrNil returns the first direct child element with the given name,
// or nil.
func (e *Element) FirstOrNil(name string) *Element {
	for _, c := range e.children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// Exists reports whether a direct child element with the given name
// exists.
func (e *Element) Exists(name string) bool {
	return e.FirstOrNil(name) != nil
}

// Equal reports whether two elements are structurally equal; see Equal.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	return elementsEqual(e, o)
}
