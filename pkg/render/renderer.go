package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// Config configures the renderer. The declared XML version and encoding
// are carried by the rendered root element, not by the configuration.
type Config struct {
	// Pretty enables pretty-printed output with line breaks and
	// indentation. Without it the whole document renders on one line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty
	// mode. Defaults to two spaces if not specified.
	Indent string

	// SingleLineTextElements renders an element whose only child is a
	// text node on a single line, instead of placing the text on its own
	// indented line.
	SingleLineTextElements bool

	// SelfClosingTags renders empty elements as <name/> instead of an
	// explicit <name></name> pair.
	SelfClosingTags bool

	// CharacterReference emits decimal character references for the five
	// special characters instead of named entities, and leaves all other
	// characters untouched.
	CharacterReference bool

	// ChildOrder optionally maps an element name to an ordered list of
	// child element names. Children of a mapped element are stably sorted
	// by the position of their name in the list; names with no entry
	// rank first. Elements without a mapping keep insertion order.
	ChildOrder map[string][]string
}

// DefaultConfig returns the default rendering configuration: pretty
// printing with two-space indentation and self-closing tags.
func DefaultConfig() Config {
	return Config{
		Pretty:          true,
		Indent:          "  ",
		SelfClosingTags: true,
	}
}

// Renderer serializes xmldoc trees to text.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Render serializes a tree with the default configuration.
func Render(root *xmldoc.Element) (string, error) {
	return NewRenderer(DefaultConfig()).RenderToString(root)
}

// RenderToString renders a tree rooted at the given element to a
// complete document string. The root's prolog flag, doctype and global
// processing instructions are honored; leading and trailing incidental
// whitespace is trimmed from the result.
func (r *Renderer) RenderToString(root *xmldoc.Element) (string, error) {
	if root == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.renderDocument(&buf, root); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// RenderToWriter renders a tree to the given writer. The output is
// byte-identical to RenderToString.
func (r *Renderer) RenderToWriter(w io.Writer, root *xmldoc.Element) error {
	out, err := r.RenderToString(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// renderDocument emits the root-only preamble (prolog, doctype, global
// processing instructions) and then the tree body.
func (r *Renderer) renderDocument(buf *bytes.Buffer, root *xmldoc.Element) error {
	ver := root.Version

	if root.IncludeProlog {
		buf.WriteString(`<?xml version="`)
		buf.WriteString(ver.String())
		buf.WriteString(`" encoding="`)
		buf.WriteString(encodingLabel(root))
		buf.WriteByte('"')
		if root.Standalone != nil {
			if *root.Standalone {
				buf.WriteString(` standalone="yes"`)
			} else {
				buf.WriteString(` standalone="no"`)
			}
		}
		buf.WriteString("?>")
		r.line(buf)
	}

	if dt := root.DoctypeDecl(); dt != nil {
		r.writeDoctype(buf, dt, root.Name)
		r.line(buf)
	}

	for _, pi := range root.GlobalProcInsts() {
		r.writeProcInst(buf, pi, ver)
		r.line(buf)
	}

	return r.renderNode(buf, root, 0, ver)
}

// renderNode dispatches rendering based on the node's concrete kind.
func (r *Renderer) renderNode(buf *bytes.Buffer, node xmldoc.Node, depth int, ver xmldoc.Version) error {
	switch n := node.(type) {
	case *xmldoc.Element:
		return r.renderElement(buf, n, depth, ver)

	case *xmldoc.Text:
		r.writeIndent(buf, depth)
		buf.WriteString(Escape(n.Data, ver, r.config.CharacterReference))
		r.line(buf)
		return nil

	case *xmldoc.CData:
		r.writeIndent(buf, depth)
		buf.WriteString("<![CDATA[")
		buf.WriteString(splitCDATA(n.Data))
		buf.WriteString("]]>")
		r.line(buf)
		return nil

	case *xmldoc.Comment:
		r.writeIndent(buf, depth)
		buf.WriteString("<!--")
		buf.WriteString(neutralizeComment(n.Text))
		buf.WriteString("-->")
		r.line(buf)
		return nil

	case *xmldoc.ProcInst:
		r.writeIndent(buf, depth)
		r.writeProcInst(buf, n, ver)
		r.line(buf)
		return nil

	case *xmldoc.Doctype:
		r.writeIndent(buf, depth)
		r.writeDoctype(buf, n, n.Name)
		r.line(buf)
		return nil

	default:
		return fmt.Errorf("render: unknown node type %T", node)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(buf *bytes.Buffer, el *xmldoc.Element, depth int, ver xmldoc.Version) error {
	r.writeIndent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(el.Name)

	for _, a := range el.Attrs() {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(Escape(xmldoc.Stringify(a.Value), ver, r.config.CharacterReference))
		buf.WriteByte('"')
	}

	children := r.orderedChildren(el)

	switch {
	case isEmptyElement(children):
		if r.config.SelfClosingTags {
			buf.WriteString("/>")
		} else {
			buf.WriteString("></")
			buf.WriteString(el.Name)
			buf.WriteByte('>')
		}
		r.line(buf)

	case r.config.Pretty && r.config.SingleLineTextElements && len(children) == 1 && isPlainText(children[0]):
		text := children[0].(*xmldoc.Text)
		buf.WriteByte('>')
		buf.WriteString(Escape(text.Data, ver, r.config.CharacterReference))
		buf.WriteString("</")
		buf.WriteString(el.Name)
		buf.WriteByte('>')
		r.line(buf)

	default:
		buf.WriteByte('>')
		r.line(buf)
		for _, child := range children {
			if err := r.renderNode(buf, child, depth+1, ver); err != nil {
				return err
			}
		}
		r.writeIndent(buf, depth)
		buf.WriteString("</")
		buf.WriteString(el.Name)
		buf.WriteByte('>')
		r.line(buf)
	}

	return nil
}

// writeProcInst renders <?target attr="value" ...?>.
func (r *Renderer) writeProcInst(buf *bytes.Buffer, pi *xmldoc.ProcInst, ver xmldoc.Version) {
	buf.WriteString("<?")
	buf.WriteString(pi.Target)
	for _, a := range pi.Attrs() {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(Escape(xmldoc.Stringify(a.Value), ver, r.config.CharacterReference))
		buf.WriteByte('"')
	}
	buf.WriteString("?>")
}

// writeDoctype renders the document type declaration. An empty doctype
// name falls back to the owning root element's name.
func (r *Renderer) writeDoctype(buf *bytes.Buffer, dt *xmldoc.Doctype, rootName string) {
	name := dt.Name
	if name == "" {
		name = rootName
	}
	buf.WriteString("<!DOCTYPE ")
	buf.WriteString(name)
	if dt.PublicID != "" {
		buf.WriteString(` PUBLIC "`)
		buf.WriteString(dt.PublicID)
		buf.WriteString(`" "`)
		buf.WriteString(dt.SystemID)
		buf.WriteByte('"')
	} else if dt.SystemID != "" {
		buf.WriteString(` SYSTEM "`)
		buf.WriteString(dt.SystemID)
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}

// orderedChildren applies the ChildOrder hint for the element's name, if
// any. The sort is stable; children whose name has no entry, and
// non-element children, rank first.
func (r *Renderer) orderedChildren(el *xmldoc.Element) []xmldoc.Node {
	order, ok := r.config.ChildOrder[el.Name]
	if !ok || len(order) == 0 {
		return el.Children()
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}

	children := el.Children()
	sorted := make([]xmldoc.Node, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return childRank(sorted[i], rank) < childRank(sorted[j], rank)
	})
	return sorted
}

func childRank(n xmldoc.Node, rank map[string]int) int {
	if el, ok := n.(*xmldoc.Element); ok {
		return rank[el.Name]
	}
	return 0
}

// isEmptyElement reports whether a child list renders as an empty
// element: no children, or exactly one plain text child with an empty
// payload.
func isEmptyElement(children []xmldoc.Node) bool {
	if len(children) == 0 {
		return true
	}
	if len(children) != 1 {
		return false
	}
	text, ok := children[0].(*xmldoc.Text)
	return ok && text.Data == ""
}

// isPlainText reports whether the node is a plain text node (not CDATA).
func isPlainText(n xmldoc.Node) bool {
	_, ok := n.(*xmldoc.Text)
	return ok
}

// line writes a line break in pretty mode and nothing otherwise.
func (r *Renderer) line(buf *bytes.Buffer) {
	if r.config.Pretty {
		buf.WriteByte('\n')
	}
}

// writeIndent writes the indentation for the given depth in pretty mode.
func (r *Renderer) writeIndent(buf *bytes.Buffer, depth int) {
	if !r.config.Pretty {
		return
	}
	for i := 0; i < depth; i++ {
		buf.WriteString(r.config.Indent)
	}
}

// encodingLabel returns the encoding declared by the prolog, defaulting
// to UTF-8.
func encodingLabel(root *xmldoc.Element) string {
	if root.Encoding == "" {
		return "UTF-8"
	}
	return root.Encoding
}
