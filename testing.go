package hxkit

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"

	"github.com/pthm/hxkit/lib/form"
	"github.com/pthm/hxkit/lib/params"
	"golang.org/x/net/html"
)

// TestResult holds the result of rendering a form or serving a request in
// tests.
//
// Provides convenience methods for asserting on HTML content, headers,
// status codes, events and flashes.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
	RedirectURL     string
}

// TestRender evaluates form and returns testable output.
//
//	result, err := hxkit.TestRender([]any{"p", "hi"}, nil)
//	if !result.HTMLContains("<p>hi</p>") {
//	    t.Fatal("missing expected content")
//	}
func TestRender(form any, env *Env) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), form, env)
}

// TestRenderWithContext evaluates form with a custom context, for forms
// that embed templ components reading request-scoped values.
func TestRenderWithContext(ctx context.Context, form any, env *Env) (*TestResult, error) {
	out, err := Eval(ctx, form, env)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       out,
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
		Flashes:    parseFlashesFromHTML(out),
	}, nil
}

// TestGet issues an HTMX GET request against h.
func TestGet(h http.Handler, target string) (*TestResult, error) {
	return NewTestRequest(http.MethodGet, target).Execute(h)
}

// TestPost issues an HTMX POST request against h with form values.
func TestPost(h http.Handler, target string, values url.Values) (*TestResult, error) {
	return NewTestRequest(http.MethodPost, target).WithValues(values).Execute(h)
}

// TestSubmit renders page, collects the controls it contains the way a
// browser would and posts them to h.
//
//	page := []any{"form", []any{"input", markup.A("name", "entry[title]", "value", "x")}}
//	result, err := hxkit.TestSubmit(handler, "/entries", page, nil)
func TestSubmit(h http.Handler, target string, page any, env *Env) (*TestResult, error) {
	out, err := Eval(context.Background(), page, env)
	if err != nil {
		return nil, err
	}
	elements, err := form.ParseHTML(strings.NewReader(out))
	if err != nil {
		return nil, err
	}
	return TestPost(h, target, form.Values(elements))
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// FormTree serializes the form controls found in the HTML.
func (r *TestResult) FormTree() (params.Tree, error) {
	return form.SerializeHTML(strings.NewReader(r.HTML))
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash checks if a flash message was rendered with the given level and message.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// HasFlashLevel checks if any flash message was rendered with the given level.
func (r *TestResult) HasFlashLevel(level string) bool {
	for _, f := range r.Flashes {
		if f.Level == level {
			return true
		}
	}
	return false
}

// WasRedirected checks if the response was a redirect.
func (r *TestResult) WasRedirected() bool {
	return r.RedirectURL != ""
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// parseTriggerHeader parses the HX-Trigger header value into event names.
// The header is either a comma separated list or a JSON object keyed by
// event.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &payload); err != nil {
			return nil
		}
		return slices.Sorted(maps.Keys(payload))
	}

	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// parseFlashesFromHTML extracts toasts rendered by FlashesOOB.
func parseFlashesFromHTML(doc string) []Flash {
	if !strings.Contains(doc, "toast-") {
		return nil
	}
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil
	}

	var flashes []Flash
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, class := range strings.Fields(nodeAttr(n, "class")) {
				if level, ok := strings.CutPrefix(class, "toast-"); ok && level != "container" {
					flashes = append(flashes, Flash{Level: level, Message: nodeText(n)})
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return flashes
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// TestRequestBuilder provides a fluent interface for building test requests.
//
//	result, err := hxkit.NewTestRequest("POST", "/entries").
//	    WithFormData("entry[title]", "x").
//	    WithHeader("X-Custom", "header").
//	    Execute(handler)
type TestRequestBuilder struct {
	method  string
	target  string
	values  url.Values
	headers map[string]string
	ctx     context.Context
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, target string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:  method,
		target:  target,
		values:  url.Values{},
		headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

// WithFormData adds a form value to the request. Repeated keys accumulate.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.values.Add(key, value)
	return b
}

// WithValues adds all of values to the request.
func (b *TestRequestBuilder) WithValues(values url.Values) *TestRequestBuilder {
	for k, vs := range values {
		for _, v := range vs {
			b.values.Add(k, v)
		}
	}
	return b
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute serves the request with h and records the response.
func (b *TestRequestBuilder) Execute(h http.Handler) (*TestResult, error) {
	body := strings.NewReader("")
	if len(b.values) > 0 && b.method != http.MethodGet {
		body = strings.NewReader(b.values.Encode())
	}

	target := b.target
	if len(b.values) > 0 && b.method == http.MethodGet {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + b.values.Encode()
	}

	req := httptest.NewRequest(b.method, target, body)
	req = req.WithContext(b.ctx)
	req.Header.Set("HX-Request", "true")
	if body.Len() > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents = parseTriggerHeader(trigger)
	}
	if redirect := rec.Header().Get("HX-Redirect"); redirect != "" {
		result.RedirectURL = redirect
	}
	result.Flashes = parseFlashesFromHTML(result.HTML)
	return result, nil
}
