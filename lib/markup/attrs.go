package markup

import (
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/pthm/hxkit/lib/params"
)

// Attr is a single named attribute. Value may be a scalar, a sequence
// (space joined on output) or a nested mapping (expanded to name-key pairs).
type Attr struct {
	Name  string
	Value any
}

// Attrs is an ordered attribute mapping. Order is preserved on output.
type Attrs []Attr

// A builds Attrs from alternating name/value arguments. A trailing name
// without a value is ignored.
//
//	markup.A("href", "/", "class", []string{"btn", "btn-sm"})
func A(kv ...any) Attrs {
	attrs := make(Attrs, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Name: params.String(kv[i]), Value: kv[i+1]})
	}
	return attrs
}

// Get returns the value stored under name.
func (a Attrs) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under name in place, or appends it. The returned
// slice must be used, as with append.
func (a Attrs) Set(name string, value any) Attrs {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Name: name, Value: value})
}

// ToAttrs converts an attribute mapping into Attrs. Attrs pass through;
// any Go map with string keys is accepted and ordered by key.
func ToAttrs(v any) (Attrs, bool) {
	if a, ok := v.(Attrs); ok {
		return a, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	keys := rv.MapKeys()
	slices.SortFunc(keys, func(x, y reflect.Value) int {
		return strings.Compare(x.String(), y.String())
	})

	attrs := make(Attrs, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, Attr{Name: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return attrs, true
}

// ToSlice converts any slice (other than []byte) into []any.
func ToSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []byte, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// RenderAttrs renders an attribute mapping as space separated name="value"
// pairs. Values are not HTML escaped.
//
//	RenderAttrs(markup.A("class", []string{"btn", "btn-primary"}))
//	// class="btn btn-primary"
func RenderAttrs(v any) string {
	attrs, ok := ToAttrs(v)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		if s := FormatAttr(attr.Name, attr.Value); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// FormatAttr renders one attribute. The first matching rule applies:
//
//	{data: {entryId: 4}}                  data-entry-id="4"
//	{href: ["https://x.com", {q: "a b"}]} href="https://x.com?q=a%20b"
//	{class: ["btn", "btn-sm"]}            class="btn btn-sm"
//	{title: "hi"}                         title="hi"
func FormatAttr(name string, value any) string {
	if nested, ok := ToAttrs(value); ok {
		prefix := FormatAttrName(name)
		parts := make([]string, 0, len(nested))
		for _, child := range nested {
			parts = append(parts, prefix+"-"+FormatAttrName(child.Name)+`="`+params.String(child.Value)+`"`)
		}
		return strings.Join(parts, " ")
	}

	seq, isSeq := ToSlice(value)
	if isSeq && (name == "href" || name == "src") {
		return name + `="` + urlWithQuery(seq) + `"`
	}
	if isSeq {
		parts := make([]string, len(seq))
		for i, e := range seq {
			parts[i] = params.String(e)
		}
		return FormatAttrName(name) + `="` + strings.Join(parts, " ") + `"`
	}

	return FormatAttrName(name) + `="` + params.String(value) + `"`
}

// urlWithQuery renders [base, query] as "base?k=v&...". Query values are
// percent-encoded; a query that is not a mapping is appended verbatim.
func urlWithQuery(seq []any) string {
	switch len(seq) {
	case 0:
		return ""
	case 1:
		return params.String(seq[0])
	}

	base := params.String(seq[0])
	query, ok := ToAttrs(seq[1])
	if !ok {
		return base + "?" + params.String(seq[1])
	}

	pairs := make([]string, len(query))
	for i, q := range query {
		pairs[i] = q.Name + "=" + escapeQueryValue(params.String(q.Value))
	}
	return base + "?" + strings.Join(pairs, "&")
}

func escapeQueryValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatAttrName converts camelCase and snake_case names to dash-case:
// "dataId" and "data_id" both become "data-id".
func FormatAttrName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, ch := range name {
		switch {
		case ch >= 'A' && ch <= 'Z':
			if i != 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(ch + ('a' - 'A'))
		case ch == '_':
			sb.WriteByte('-')
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// MergeProperties merges b over a. Keys keep the position they first
// appeared in and later values win, except for the names in props: when
// both sides set one of them, the values are concatenated into a single
// list with a's values first.
//
//	MergeProperties(A("class", []string{"btn"}), A("class", "btn-sm", "href", "#"), "class", "id")
//	// class=["btn", "btn-sm"], href="#"
func MergeProperties(a, b Attrs, props ...string) Attrs {
	merged := make(Attrs, 0, len(a)+len(b))
	merged = append(merged, a...)
	for _, attr := range b {
		merged = merged.Set(attr.Name, attr.Value)
	}

	for _, prop := range props {
		av, aok := a.Get(prop)
		bv, bok := b.Get(prop)
		if !aok || !bok || !truthy(av) || !truthy(bv) {
			continue
		}
		merged = merged.Set(prop, append(flatten(av), flatten(bv)...))
	}
	return merged
}

func truthy(v any) bool {
	if params.IsBlank(v) {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func flatten(v any) []any {
	if seq, ok := ToSlice(v); ok {
		return slices.Clone(seq)
	}
	return []any{v}
}
