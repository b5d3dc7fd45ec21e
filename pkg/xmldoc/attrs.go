package xmldoc

import (
	"fmt"
	"strconv"
)

// Attr is a single attribute. Values may be any printable value; they are
// coerced to text with Stringify when the tree is rendered or compared.
type Attr struct {
	Name  string
	Value any
}

// A is shorthand for constructing an Attr.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// attrList is an ordered-insertion attribute map. Names are unique: the
// first set fixes the render position, later sets of the same name update
// the value in place, and setting nil removes the entry.
type attrList []Attr

func (l *attrList) set(name string, value any) {
	if value == nil {
		l.remove(name)
		return
	}
	for i := range *l {
		if (*l)[i].Name == name {
			(*l)[i].Value = value
			return
		}
	}
	*l = append(*l, Attr{Name: name, Value: value})
}

func (l attrList) get(name string) (any, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

func (l *attrList) remove(name string) {
	for i, a := range *l {
		if a.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return
		}
	}
}

// equal compares two attribute lists by name, position and coerced value.
func (l attrList) equal(o attrList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i].Name != o[i].Name || Stringify(l[i].Value) != Stringify(o[i].Value) {
			return false
		}
	}
	return true
}

// Stringify converts an attribute value to its textual form. Strings pass
// through unchanged; other values use their natural formatting.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
