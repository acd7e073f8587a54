package hxkit

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/pthm/hxkit/lib/params"
)

// Render evaluates form and writes it to the HTTP response.
//
// Sets Content-Type to text/html and evaluates with the request's context,
// so embedded templ components see request-scoped values:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxkit.Render(w, r, []any{"p", "Hello"}, nil)
//	}
//
// Nothing is written when evaluation fails.
func Render(w http.ResponseWriter, r *http.Request, form any, env *Env) error {
	out, err := Eval(r.Context(), form, env)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write([]byte(out))
	return err
}

// DecodeForm parses the request body and query into a tree, folding every
// submitted value through params.ParseKey:
//
//	entry[tags][]=a&entry[tags][]=b&entry[name]=x
//	// {"entry": {"tags": ["a", "b"], "name": "x"}}
//
// Keys are folded in sorted order; values of a repeated key in the order
// they were submitted.
func DecodeForm(r *http.Request) (params.Tree, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
	}
	return DecodeValues(r.Form)
}

// DecodeQuery decodes only the URL query of r.
func DecodeQuery(r *http.Request) (params.Tree, error) {
	return params.ParseQuery(r.URL.RawQuery)
}

// DecodeValues folds url.Values into a tree.
func DecodeValues(values url.Values) (params.Tree, error) {
	tree := params.Tree{}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[key] {
			if _, err := params.ParseKey(key, v, tree); err != nil {
				return tree, err
			}
		}
	}
	return tree, nil
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. Use this to render a
// fragment for HTMX and a full page otherwise.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the URL the browser is on, from HX-Current-URL.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName returns the name attribute of the element that triggered the request.
//
// Useful for form handlers that need to know which submit button was clicked.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID returns the id attribute of the element that triggered the request.
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID returns the id attribute of the target element.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// SetTrigger sets the HX-Trigger response header. See BuildTriggerHeader.
func SetTrigger(w http.ResponseWriter, event string, data params.Tree) {
	if v := BuildTriggerHeader(nil, event, data); v != "" {
		w.Header().Set("HX-Trigger", v)
	}
}
