// Package xmldoc implements the document tree model: typed nodes
// (elements, text, CDATA, comments, processing instructions, a doctype)
// and the mutation operations that keep a tree consistent.
//
// Trees are built either through the mutation API:
//
//	root := xmldoc.New("people")
//	root.DefaultNamespace("http://example.com/people")
//	person := xmldoc.New("person", xmldoc.A("id", 1))
//	root.AddChild(person)
//
// or through the variadic builder shorthand:
//
//	root := xmldoc.New("people",
//	    xmldoc.A("xmlns", "http://example.com/people"),
//	    xmldoc.New("person", xmldoc.A("id", 1),
//	        xmldoc.New("firstName", "John"),
//	    ),
//	)
//
// A tree is an exclusively owned structure: a node must not appear under
// two parents, and concurrent mutation of one tree is not synchronized.
// Rendering (package render) is read-only over the tree.
package xmldoc
