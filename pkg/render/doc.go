// Package render serializes xmldoc trees to text.
//
// The renderer walks a tree depth-first and emits correctly escaped,
// correctly formatted markup under a configurable set of formatting
// rules: indentation, single-line text elements, self-closing tags,
// character-reference escaping and an optional child ordering hint.
//
//	out, err := render.Render(root)
//
//	r := render.NewRenderer(render.Config{
//	    Pretty:                 true,
//	    SingleLineTextElements: true,
//	    SelfClosingTags:        true,
//	})
//	out, err := r.RenderToString(root)
//
// Rendering is read-only over the tree; rendering the same tree with the
// same configuration twice yields byte-identical output.
package render
