package render

import (
	"strconv"
	"strings"

	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// Escape maps raw text or attribute values to escaped text under the
// policy selected by the declared XML version. When useCharRef is set,
// the five special characters are emitted as decimal character
// references and all other characters pass through untouched, bypassing
// the version-specific control-character handling.
func Escape(s string, version xmldoc.Version, useCharRef bool) string {
	if useCharRef {
		return escapeCharRef(s)
	}
	if version == xmldoc.V11 {
		return escapeXML11(s)
	}
	return escapeXML10(s)
}

// escapeXML10 escapes text for an XML 1.0 document. The five special
// characters become named entities. Control characters that are illegal
// in this version and not representable even as references are silently
// dropped; the 0x7F-0x9F ranges that are legal only as references become
// decimal character references.
func escapeXML10(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString("&quot;")
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			switch {
			case r <= 0x08, r == 0x0B, r == 0x0C,
				r >= 0x0E && r <= 0x1F,
				r >= 0xD800 && r <= 0xDFFF,
				r == 0xFFFE, r == 0xFFFF:
				// Illegal in XML 1.0 in any form: dropped.
			case r >= 0x7F && r <= 0x84, r >= 0x86 && r <= 0x9F:
				writeCharRef(&buf, r)
			default:
				buf.WriteRune(r)
			}
		}
	}

	return buf.String()
}

// escapeXML11 escapes text for an XML 1.1 document. This version permits
// referencing far more control characters than it permits as literals:
// only NUL, surrogates and the two non-characters are dropped.
func escapeXML11(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString("&quot;")
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			switch {
			case r == 0x00,
				r >= 0xD800 && r <= 0xDFFF,
				r == 0xFFFE, r == 0xFFFF:
				// Not representable in XML 1.1: dropped.
			case r >= 0x01 && r <= 0x08, r == 0x0B, r == 0x0C,
				r >= 0x0E && r <= 0x1F,
				r >= 0x7F && r <= 0x84, r >= 0x86 && r <= 0x9F:
				writeCharRef(&buf, r)
			default:
				buf.WriteRune(r)
			}
		}
	}

	return buf.String()
}

// escapeCharRef emits decimal character references for exactly the five
// special characters and passes everything else through unescaped.
func escapeCharRef(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\'', '&', '<', '>', '"':
			writeCharRef(&buf, r)
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

func writeCharRef(buf *strings.Builder, r rune) {
	buf.WriteString("&#")
	buf.WriteString(strconv.Itoa(int(r)))
	buf.WriteByte(';')
}

// neutralizeComment inserts a space between the hyphens of every literal
// "--" so the comment delimiter cannot appear inside comment content.
// Comment text is otherwise emitted verbatim, unescaped.
func neutralizeComment(s string) string {
	if !strings.Contains(s, "--") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		buf.WriteByte(s[i])
		if s[i] == '-' && i+1 < len(s) && s[i+1] == '-' {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

// splitCDATA rewrites any literal "]]>" inside a CDATA payload so the
// terminator is split across two adjacent sections. The concatenated
// logical content of the resulting sections equals the original payload.
func splitCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
