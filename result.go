package hxkit

import (
	"maps"
	"slices"

	"github.com/pthm/hxkit/lib/params"
)

// Result is returned from a Handler to describe the response.
//
// The registry evaluates Form after the handler returns, appends any
// flashes as OOB swaps and sets the HTMX response headers:
//
//	// Render a form
//	return hxkit.OK(entryForm(tree))
//
//	// With a flash message
//	return hxkit.OK(entryForm(tree)).Flash(hxkit.FlashSuccess, "Saved!")
//
//	// Redirect via HX-Redirect header
//	return hxkit.Redirect("/entries")
//
//	// Broadcast an event with data
//	return hxkit.OK(nil).Trigger("entry:saved", params.Tree{"id": "42"})
type Result struct {
	form               any
	err                error
	redirect           string
	flashes            []Flash
	trigger            string
	triggerData        params.Tree
	triggerAfterSettle string
	callback           *Callback
	headers            map[string]string
	status             int
	skip               bool
}

// OK creates a success result rendering form.
func OK(form any) Result {
	return Result{form: form}
}

// Err creates an error result handled by the registry's OnError. form, if
// not nil, is not rendered; OnError may use it as a fallback.
func Err(form any, err error) Result {
	return Result{form: form, err: err}
}

// Skip creates a result indicating the handler wrote its own response.
func Skip() Result {
	return Result{skip: true}
}

// Redirect creates a result that redirects via the HX-Redirect header.
func Redirect(url string) Result {
	return Result{redirect: url}
}

// Flash adds a flash message (toast notification) to the result.
//
// Multiple flashes can be chained:
//
//	return hxkit.OK(form).
//	    Flash("success", "Entry saved").
//	    Flash("info", "Notification sent")
func (r Result) Flash(level, message string) Result {
	r.flashes = append(slices.Clip(r.flashes), Flash{Level: level, Message: message})
	return r
}

// Callback asks the client to follow up with another request once this
// response is swapped.
func (r Result) Callback(cb Callback) Result {
	r.callback = &cb
	return r
}

// Trigger emits an event via the HX-Trigger header. Listeners can bind to
// it with Action.OnEvent.
func (r Result) Trigger(event string, data ...params.Tree) Result {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// PushURL updates the browser URL via the HX-Push-Url header.
func (r Result) PushURL(url string) Result {
	return r.Header("HX-Push-Url", url)
}

// TriggerURLSync emits "url:sync" after the swap settles, so listeners
// read the URL pushed by PushURL.
func (r Result) TriggerURLSync() Result {
	r.triggerAfterSettle = "url:sync"
	return r
}

// Header sets a custom response header.
func (r Result) Header(key, value string) Result {
	headers := maps.Clone(r.headers)
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status sets the HTTP status code. The default is 200.
func (r Result) Status(code int) Result {
	r.status = code
	return r
}

// GetForm returns the form to render.
func (r Result) GetForm() any {
	return r.form
}

// GetErr returns the error from the result.
func (r Result) GetErr() error {
	return r.err
}

// GetRedirect returns the redirect URL.
func (r Result) GetRedirect() string {
	return r.redirect
}

// GetFlashes returns the flash messages.
func (r Result) GetFlashes() []Flash {
	return r.flashes
}

// GetTrigger returns the trigger event name.
func (r Result) GetTrigger() string {
	return r.trigger
}

// GetTriggerData returns the trigger event data.
func (r Result) GetTriggerData() params.Tree {
	return r.triggerData
}

// GetCallback returns the callback, if any.
func (r Result) GetCallback() *Callback {
	return r.callback
}

// GetHeaders returns the response headers.
func (r Result) GetHeaders() map[string]string {
	return r.headers
}

// GetStatus returns the HTTP status code (0 means not set, use default 200).
func (r Result) GetStatus() int {
	return r.status
}

// ShouldSkip returns whether the handler wrote its own response.
func (r Result) ShouldSkip() bool {
	return r.skip
}
