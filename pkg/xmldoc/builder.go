package xmldoc

// New creates an element with the given name and arguments. Arguments can
// be: nil (ignored, allows conditional construction), Attr, []Attr, any
// Node, []Node, or string (shorthand for a text child). This is sugar
// over the mutation API and carries no semantics of its own.
func New(name string, args ...any) *Element {
	el := &Element{Name: name}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			el.attrs.set(v.Name, v.Value)

		case []Attr:
			for _, a := range v {
				el.attrs.set(a.Name, a.Value)
			}

		case Node:
			el.AddChild(v)

		case []Node:
			for _, child := range v {
				el.AddChild(child)
			}

		case string:
			el.AddChild(NewText(v))
		}
	}

	return el
}

// Root creates an element configured as a document root with the prolog
// enabled, using the given encoding label (empty means "UTF-8") and
// version.
func Root(name string, version Version, encoding string, args ...any) *Element {
	el := New(name, args...)
	el.IncludeProlog = true
	el.Version = version
	el.Encoding = encoding
	return el
}
