package hxkit

import (
	"encoding/json"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
)

// Action builds the hx-* attributes for one request. The result of Attrs
// is an attribute mapping, so it can head the children of a tag form:
//
//	[]any{"button", hxkit.NewAction("/items", "POST").Target("#list").Attrs(), "Add"}
type Action struct {
	url       string
	method    string
	target    string
	swap      SwapMode
	trigger   string
	confirm   string
	indicator string
	pushURL   bool
	vals      params.Tree
}

// NewAction returns an action for url. An empty method means GET.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method, swap: SwapOuter}
}

// URL returns the request URL. For GET actions the vals are encoded into
// the query string.
func (a *Action) URL() string {
	if a.method == http.MethodGet {
		return params.Path(a.url, a.vals)
	}
	return a.url
}

// Target sets hx-target.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element that issued the request.
func (a *Action) TargetThis() *Action { return a.Target("this") }

// TargetClosest targets the closest ancestor matching selector.
func (a *Action) TargetClosest(selector string) *Action { return a.Target("closest " + selector) }

// TargetFind targets the first descendant matching selector.
func (a *Action) TargetFind(selector string) *Action { return a.Target("find " + selector) }

// TargetNext targets the next sibling matching selector.
func (a *Action) TargetNext(selector string) *Action { return a.Target("next " + selector) }

// TargetPrevious targets the previous sibling matching selector.
func (a *Action) TargetPrevious(selector string) *Action { return a.Target("previous " + selector) }

// Swap sets hx-swap. The default is SwapOuter.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

// SwapOuter replaces the whole target.
func (a *Action) SwapOuter() *Action { return a.Swap(SwapOuter) }

// SwapInner replaces the target's children.
func (a *Action) SwapInner() *Action { return a.Swap(SwapInner) }

// SwapBeforeEnd appends inside the target.
func (a *Action) SwapBeforeEnd() *Action { return a.Swap(SwapBeforeEnd) }

// SwapAfterEnd inserts after the target.
func (a *Action) SwapAfterEnd() *Action { return a.Swap(SwapAfterEnd) }

// SwapBeforeBegin inserts before the target.
func (a *Action) SwapBeforeBegin() *Action { return a.Swap(SwapBeforeBegin) }

// SwapAfterBegin prepends inside the target.
func (a *Action) SwapAfterBegin() *Action { return a.Swap(SwapAfterBegin) }

// SwapDelete removes the target.
func (a *Action) SwapDelete() *Action { return a.Swap(SwapDelete) }

// SwapNone discards the response body.
func (a *Action) SwapNone() *Action { return a.Swap(SwapNone) }

// Trigger sets a raw hx-trigger value.
func (a *Action) Trigger(trigger string) *Action {
	a.trigger = trigger
	return a
}

// Every polls at the given interval.
func (a *Action) Every(d time.Duration) *Action {
	return a.Trigger("every " + formatDuration(d))
}

// OnEvent fires when event bubbles to the body.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

// OnLoad fires once the element is loaded.
func (a *Action) OnLoad() *Action { return a.Trigger("load") }

// OnIntersect fires the first time the element enters the viewport.
func (a *Action) OnIntersect() *Action { return a.Trigger("intersect once") }

// OnRevealed fires when the element is scrolled into view.
func (a *Action) OnRevealed() *Action { return a.Trigger("revealed") }

// Confirm asks the user before issuing the request.
func (a *Action) Confirm(msg string) *Action {
	a.confirm = msg
	return a
}

// Indicator sets the element shown while the request is in flight.
func (a *Action) Indicator(selector string) *Action {
	a.indicator = selector
	return a
}

// PushURL pushes the request URL into the browser history.
func (a *Action) PushURL() *Action {
	a.pushURL = true
	return a
}

// Vals adds parameters to the request. GET actions carry them in the
// query string, other methods in hx-vals.
func (a *Action) Vals(vals params.Tree) *Action {
	if a.vals == nil {
		a.vals = params.Tree{}
	}
	for k, v := range vals {
		a.vals[k] = v
	}
	return a
}

// Attrs returns the hx-* attributes in a stable order.
func (a *Action) Attrs() markup.Attrs {
	var attrs markup.Attrs

	switch a.method {
	case http.MethodPost:
		attrs = attrs.Set("hx-post", a.url)
	case http.MethodPut:
		attrs = attrs.Set("hx-put", a.url)
	case http.MethodPatch:
		attrs = attrs.Set("hx-patch", a.url)
	case http.MethodDelete:
		attrs = attrs.Set("hx-delete", a.url)
	default:
		attrs = attrs.Set("hx-get", a.URL())
	}

	if a.method != http.MethodGet && len(a.vals) > 0 {
		data, err := json.Marshal(a.vals)
		if err == nil {
			attrs = attrs.Set("hx-vals", html.EscapeString(string(data)))
		}
	}
	if a.target != "" {
		attrs = attrs.Set("hx-target", a.target)
	}
	if a.swap != "" {
		attrs = attrs.Set("hx-swap", string(a.swap))
	}
	if a.trigger != "" {
		attrs = attrs.Set("hx-trigger", a.trigger)
	}
	if a.confirm != "" {
		attrs = attrs.Set("hx-confirm", a.confirm)
	}
	if a.indicator != "" {
		attrs = attrs.Set("hx-indicator", a.indicator)
	}
	if a.pushURL {
		attrs = attrs.Set("hx-push-url", "true")
	}
	return attrs
}

// AsLink returns a plain href for the action's URL, for non-HTMX
// navigation such as downloads.
func (a *Action) AsLink() markup.Attrs {
	return markup.A("href", a.URL())
}

// AsCallback converts the action into a Callback for an HX-Trigger header.
func (a *Action) AsCallback() Callback {
	cb := Callback{URL: a.URL(), Target: a.target, Swap: string(a.swap)}
	if a.method != http.MethodGet {
		cb.Vals = a.vals
	}
	return cb
}

// formatDuration renders d the way hx-trigger expects: whole seconds when
// at least one second, otherwise milliseconds.
func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return strconv.Itoa(int(d/time.Second)) + "s"
	}
	return strconv.Itoa(int(d/time.Millisecond)) + "ms"
}
