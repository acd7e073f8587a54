// Package hxkit renders HTML from plain Go values and decodes the forms
// that HTML submits, for server-rendered HTMX applications.
//
// # Templates
//
// A template is a nested []any. The first element of a sequence decides
// what it is:
//
//	[]any{"a.btn", markup.A("href", "/"), "Home"}  // <a class="btn" href="/">Home</a>
//	[]any{"define", "title", "Inbox"}              // binds title, renders nothing
//	[]any{hxkit.Func(upper), "x"}                  // calls upper("x")
//	[]any{[]any{"li", "a"}, []any{"li", "b"}}      // <li>a</li><li>b</li>
//
// A string head is a tag selector of the form tag.class#id unless the name
// is bound in the environment, in which case the bound helper is called or
// the bound form expanded. A bare string renders the value bound to it, or
// itself when unbound. Text and Raw opt out of that lookup; Text is HTML
// escaped.
//
// Siblings evaluate strictly left to right, so a definition is visible
// only to the forms after it. Each call to HTML or Eval with a nil Env
// starts from a fresh environment holding the built-in helpers:
//
//	icon pad repeat escape path fmtDate fmtISODate fmtISOTime fmtISODateTime timeAgo
//
// # Attributes
//
// Element 1 of a tag form is taken as attributes when it is a
// markup.Attrs or a map with string keys. Nested mappings expand to
// prefixed names, sequences join with spaces, and href/src sequences build
// a query string:
//
//	markup.A("data", markup.A("entryId", 4))            // data-entry-id="4"
//	markup.A("href", []any{"/search", markup.A("q", "a b")}) // href="/search?q=a%20b"
//
// Attribute values are not escaped. Wrap untrusted text content in Text.
//
// # Parameters
//
// DecodeForm and DecodeQuery fold Rails-style keys into a params.Tree:
//
//	entry[title]=x&entry[tags][]=a&entry[tags][]=b
//	// {"entry": {"title": "x", "tags": ["a", "b"]}}
//
// The form package serializes parsed form controls to the same shape.
//
// # Security Model
//
// HiddenState seals a tree into a hidden input using one of two modes:
//   - Signed: msgpack + HMAC, visible but tamper-proof
//   - Encrypted: AES-GCM, opaque to clients
package hxkit
