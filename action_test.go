package hxkit

import (
	"encoding/json"
	"html"
	"net/http"
	"testing"
	"time"

	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
)

func attrValue(attrs markup.Attrs, name string) string {
	v, _ := attrs.Get(name)
	s, _ := v.(string)
	return s
}

func hasAttr(attrs markup.Attrs, name string) bool {
	_, ok := attrs.Get(name)
	return ok
}

func TestNewAction(t *testing.T) {
	a := NewAction("/test/url", http.MethodPost)

	if a.URL() != "/test/url" {
		t.Errorf("URL() = %q, want %q", a.URL(), "/test/url")
	}

	attrs := a.Attrs()
	if attrValue(attrs, "hx-post") != "/test/url" {
		t.Errorf("hx-post = %q, want %q", attrValue(attrs, "hx-post"), "/test/url")
	}

	// Default swap should be outerHTML
	if attrValue(attrs, "hx-swap") != "outerHTML" {
		t.Errorf("hx-swap = %q, want %q", attrValue(attrs, "hx-swap"), "outerHTML")
	}
}

func TestActionMethods(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantAttr string
	}{
		{"GET", http.MethodGet, "hx-get"},
		{"POST", http.MethodPost, "hx-post"},
		{"PUT", http.MethodPut, "hx-put"},
		{"PATCH", http.MethodPatch, "hx-patch"},
		{"DELETE", http.MethodDelete, "hx-delete"},
		{"empty defaults to GET", "", "hx-get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := NewAction("/url", tt.method).Attrs()

			if !hasAttr(attrs, tt.wantAttr) {
				t.Errorf("Expected attribute %q not found", tt.wantAttr)
			}
		})
	}
}

func TestActionTarget(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Action) *Action
		expect string
	}{
		{"Target", func(a *Action) *Action { return a.Target("#my-element") }, "#my-element"},
		{"TargetThis", func(a *Action) *Action { return a.TargetThis() }, "this"},
		{"TargetClosest", func(a *Action) *Action { return a.TargetClosest(".card") }, "closest .card"},
		{"TargetFind", func(a *Action) *Action { return a.TargetFind(".content") }, "find .content"},
		{"TargetNext", func(a *Action) *Action { return a.TargetNext(".sibling") }, "next .sibling"},
		{"TargetPrevious", func(a *Action) *Action { return a.TargetPrevious(".sibling") }, "previous .sibling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.setup(NewAction("/url", http.MethodPost)).Attrs()

			if attrValue(attrs, "hx-target") != tt.expect {
				t.Errorf("hx-target = %q, want %q", attrValue(attrs, "hx-target"), tt.expect)
			}
		})
	}
}

func TestActionSwap(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Action) *Action
		expect SwapMode
	}{
		{"Swap", func(a *Action) *Action { return a.Swap(SwapInner) }, SwapInner},
		{"SwapOuter", func(a *Action) *Action { return a.SwapOuter() }, SwapOuter},
		{"SwapInner", func(a *Action) *Action { return a.SwapInner() }, SwapInner},
		{"SwapBeforeEnd", func(a *Action) *Action { return a.SwapBeforeEnd() }, SwapBeforeEnd},
		{"SwapAfterEnd", func(a *Action) *Action { return a.SwapAfterEnd() }, SwapAfterEnd},
		{"SwapBeforeBegin", func(a *Action) *Action { return a.SwapBeforeBegin() }, SwapBeforeBegin},
		{"SwapAfterBegin", func(a *Action) *Action { return a.SwapAfterBegin() }, SwapAfterBegin},
		{"SwapDelete", func(a *Action) *Action { return a.SwapDelete() }, SwapDelete},
		{"SwapNone", func(a *Action) *Action { return a.SwapNone() }, SwapNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.setup(NewAction("/url", http.MethodPost)).Attrs()

			if attrValue(attrs, "hx-swap") != string(tt.expect) {
				t.Errorf("hx-swap = %q, want %q", attrValue(attrs, "hx-swap"), tt.expect)
			}
		})
	}
}

func TestActionTriggers(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Action) *Action
		expect string
	}{
		{"Every", func(a *Action) *Action { return a.Every(5 * time.Second) }, "every 5s"},
		{"Every milliseconds", func(a *Action) *Action { return a.Every(500 * time.Millisecond) }, "every 500ms"},
		{"OnEvent", func(a *Action) *Action { return a.OnEvent("itemAdded") }, "itemAdded from:body"},
		{"OnLoad", func(a *Action) *Action { return a.OnLoad() }, "load"},
		{"OnIntersect", func(a *Action) *Action { return a.OnIntersect() }, "intersect once"},
		{"OnRevealed", func(a *Action) *Action { return a.OnRevealed() }, "revealed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.setup(NewAction("/url", http.MethodPost)).Attrs()

			if attrValue(attrs, "hx-trigger") != tt.expect {
				t.Errorf("hx-trigger = %q, want %q", attrValue(attrs, "hx-trigger"), tt.expect)
			}
		})
	}
}

func TestActionUX(t *testing.T) {
	t.Run("Confirm", func(t *testing.T) {
		attrs := NewAction("/url", http.MethodDelete).Confirm("Are you sure?").Attrs()

		if attrValue(attrs, "hx-confirm") != "Are you sure?" {
			t.Errorf("hx-confirm = %q, want %q", attrValue(attrs, "hx-confirm"), "Are you sure?")
		}
	})

	t.Run("Indicator", func(t *testing.T) {
		attrs := NewAction("/url", http.MethodPost).Indicator("#spinner").Attrs()

		if attrValue(attrs, "hx-indicator") != "#spinner" {
			t.Errorf("hx-indicator = %q, want %q", attrValue(attrs, "hx-indicator"), "#spinner")
		}
	})

	t.Run("PushURL", func(t *testing.T) {
		attrs := NewAction("/url", http.MethodGet).PushURL().Attrs()

		if attrValue(attrs, "hx-push-url") != "true" {
			t.Errorf("hx-push-url = %q, want %q", attrValue(attrs, "hx-push-url"), "true")
		}
	})
}

func TestActionVals(t *testing.T) {
	t.Run("POST carries vals as JSON", func(t *testing.T) {
		attrs := NewAction("/url", http.MethodPost).Vals(params.Tree{"extra": "value", "count": 42}).Attrs()

		var got map[string]any
		if err := json.Unmarshal([]byte(html.UnescapeString(attrValue(attrs, "hx-vals"))), &got); err != nil {
			t.Fatalf("hx-vals is not JSON: %v", err)
		}
		if got["extra"] != "value" || got["count"] != float64(42) {
			t.Errorf("hx-vals = %v", got)
		}
	})

	t.Run("hx-vals is attribute safe", func(t *testing.T) {
		a := NewAction("/url", http.MethodPost).Vals(params.Tree{"q": "x"})
		got := MustHTML([]any{"button", a.Attrs()})
		want := `<button hx-post="/url" hx-vals="{&#34;q&#34;:&#34;x&#34;}" hx-swap="outerHTML"></button>`
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("GET carries vals in the query", func(t *testing.T) {
		a := NewAction("/items", http.MethodGet).Vals(params.Tree{"page": 2, "q": "a b"})

		if a.URL() != "/items?page=2&q=a+b" {
			t.Errorf("URL() = %q", a.URL())
		}
		if hasAttr(a.Attrs(), "hx-vals") {
			t.Error("GET should not set hx-vals")
		}
	})
}

func TestActionAsLink(t *testing.T) {
	attrs := NewAction("/download/file.pdf", http.MethodGet).AsLink()

	if attrValue(attrs, "href") != "/download/file.pdf" {
		t.Errorf("href = %q, want %q", attrValue(attrs, "href"), "/download/file.pdf")
	}

	// Should not have hx-* attributes
	if hasAttr(attrs, "hx-get") {
		t.Error("AsLink should not include hx-get")
	}
}

func TestActionAsCallback(t *testing.T) {
	cb := NewAction("/refresh", http.MethodGet).
		Target("#list").
		Swap(SwapInner).
		AsCallback()

	if cb.URL != "/refresh" {
		t.Errorf("URL = %q, want %q", cb.URL, "/refresh")
	}
	if cb.Target != "#list" {
		t.Errorf("Target = %q, want %q", cb.Target, "#list")
	}
	if cb.Swap != "innerHTML" {
		t.Errorf("Swap = %q, want %q", cb.Swap, "innerHTML")
	}
}

func TestActionAttrsRenderInTag(t *testing.T) {
	a := NewAction("/api/items", http.MethodPost).
		Target("#items-list").
		SwapBeforeEnd().
		Confirm("Add item?")

	got, err := HTML([]any{"button.btn", a.Attrs(), "Add"})
	if err != nil {
		t.Fatal(err)
	}
	want := `<button class="btn" hx-post="/api/items" hx-target="#items-list" hx-swap="beforeend" hx-confirm="Add item?">Add</button>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d      time.Duration
		expect string
	}{
		{5 * time.Second, "5s"},
		{30 * time.Second, "30s"},
		{500 * time.Millisecond, "500ms"},
		{100 * time.Millisecond, "100ms"},
		{1 * time.Second, "1s"},
		{1500 * time.Millisecond, "1s"}, // Rounds down to seconds
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			result := formatDuration(tt.d)
			if result != tt.expect {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, result, tt.expect)
			}
		})
	}
}
