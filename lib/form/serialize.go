package form

import (
	"fmt"
	"io"
	"net/url"

	"github.com/pthm/hxkit/lib/params"
)

// Serialize folds each element's value into one tree, in element order.
//
// Elements whose value is blank (nil or "") are skipped. A malformed or
// conflicting name aborts the whole serialization; the error names the
// offending element.
//
//	tree, err := form.Serialize([]form.Element{
//	    {TagName: "input", Type: "checkbox", Name: "entry[active]", Value: "1", Checked: true},
//	    {TagName: "input", Type: "radio", Name: "entry[kind]", Value: "a"},
//	})
//	// {"entry": {"active": "1"}}
func Serialize(elements []Element) (params.Tree, error) {
	tree := params.Tree{}
	for _, e := range elements {
		value := Value(e)
		if params.IsBlank(value) {
			continue
		}
		if _, err := params.ParseKey(e.Name, value, tree); err != nil {
			return tree, fmt.Errorf("form: element %q: %w", e.Name, err)
		}
	}
	return tree, nil
}

// SerializeHTML reads the controls of an HTML document and serializes them.
func SerializeHTML(r io.Reader) (params.Tree, error) {
	elements, err := ParseHTML(r)
	if err != nil {
		return nil, err
	}
	return Serialize(elements)
}

// Values returns the submission a browser would make for elements: one
// name/value pair per non-blank value, multi-selects contributing one pair
// per selected option.
func Values(elements []Element) url.Values {
	values := url.Values{}
	for _, e := range elements {
		if e.Name == "" {
			continue
		}
		switch v := Value(e).(type) {
		case nil:
		case []any:
			for _, item := range v {
				values.Add(e.Name, params.String(item))
			}
		default:
			if s := params.String(v); s != "" {
				values.Add(e.Name, s)
			}
		}
	}
	return values
}
