// Package markup parses "tag.class#id" selector shorthand and renders
// attribute mappings into HTML attribute strings.
package markup

import "strings"

// TagSpec is a parsed selector: the element name plus classes and ids in
// declaration order.
type TagSpec struct {
	Name    string
	Classes []string
	IDs     []string
}

// ParseTagName splits a selector such as "a.btn.btn-sm#hdr" into its parts.
//
// The first token before any "." or "#" is the element name. Classes and
// ids accumulate in the order they appear and may be interleaved:
//
//	ParseTagName("a#top.btn.btn-sm")
//	// TagSpec{Name: "a", Classes: ["btn", "btn-sm"], IDs: ["top"]}
func ParseTagName(selector string) TagSpec {
	spec := TagSpec{Classes: []string{}, IDs: []string{}}

	var (
		buf          strings.Builder
		readingClass bool
		readingID    bool
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		switch {
		case readingClass:
			spec.Classes = append(spec.Classes, buf.String())
		case readingID:
			spec.IDs = append(spec.IDs, buf.String())
		default:
			spec.Name = buf.String()
		}
		buf.Reset()
	}

	for _, ch := range selector {
		switch ch {
		case '.':
			flush()
			readingClass, readingID = true, false
		case '#':
			flush()
			readingClass, readingID = false, true
		default:
			buf.WriteRune(ch)
		}
	}
	flush()

	return spec
}

// Attrs returns the class and id attributes implied by the selector. Either
// is omitted when the selector declares none.
func (s TagSpec) Attrs() Attrs {
	var attrs Attrs
	if len(s.Classes) != 0 {
		attrs = append(attrs, Attr{Name: "class", Value: s.Classes})
	}
	if len(s.IDs) != 0 {
		attrs = append(attrs, Attr{Name: "id", Value: s.IDs})
	}
	return attrs
}

// Decorated reports whether the selector carries any class or id.
func (s TagSpec) Decorated() bool {
	return len(s.Classes) != 0 || len(s.IDs) != 0
}
