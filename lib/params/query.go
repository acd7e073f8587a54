package params

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ParseQuery decodes a query string into a Tree. The leading "?" is
// optional. Keys and values are percent-decoded before each key is folded
// through ParseKey, in the order the pairs appear.
//
//	t, err := params.ParseQuery("?entry[tags][]=a&entry[tags][]=b")
//	// {"entry": {"tags": ["a", "b"]}}
func ParseQuery(s string) (Tree, error) {
	tree := Tree{}
	s = strings.TrimPrefix(s, "?")
	if s == "" {
		return tree, nil
	}

	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return tree, fmt.Errorf("%w: key %q: %v", ErrMalformedQuery, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return tree, fmt.Errorf("%w: value for %q: %v", ErrMalformedQuery, key, err)
		}

		if _, err := ParseKey(key, value, tree); err != nil {
			return tree, err
		}
	}
	return tree, nil
}

// Encode flattens the top level of tree into "key=value" pairs joined by
// "&", sorted by key and percent-encoded.
//
// Nested trees are not flattened: Encode(ParseQuery(q)) reproduces q only
// when q has no bracketed keys. Lists are rendered comma separated.
func Encode(tree Tree) string {
	if len(tree) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, k := range tree.Keys() {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(String(tree[k])))
	}
	return sb.String()
}

// Path builds "base?query". A []string base is joined with "/"; the query
// is omitted for an empty tree.
//
//	params.Path([]string{"/users", "42"}, params.Tree{"tab": "posts"})
//	// "/users/42?tab=posts"
func Path(base any, tree Tree) string {
	var p string
	switch b := base.(type) {
	case []string:
		p = strings.Join(b, "/")
	case []any:
		parts := make([]string, len(b))
		for i, v := range b {
			parts[i] = String(v)
		}
		p = strings.Join(parts, "/")
	default:
		p = String(base)
	}

	q := Encode(tree)
	if q == "" {
		return p
	}
	return p + "?" + q
}

// String coerces v to its plain string form. nil becomes "", lists are
// joined with ",".
func String(v any) string {
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
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = String(e)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(x, ",")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}
