package xmldoc

import "errors"

// ErrNotFound is returned when a referenced node is not a direct child of
// the element it is requested against. It applies to the relative insert,
// remove and replace operations as well as First lookups with no match.
// Match it with errors.Is.
var ErrNotFound = errors.New("xmldoc: node not found")

// ErrInvalidDoctype is returned when a doctype declares a public ID
// without a system ID.
var ErrInvalidDoctype = errors.New("xmldoc: doctype public ID requires a system ID")
