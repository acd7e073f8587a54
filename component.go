package hxkit

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/hxkit/lib/markup"
)

// Component wraps a template form as a templ.Component, so forms can be
// used from .templ files:
//
//	@hxkit.Component(nav, nil)
//
// The form is evaluated on every render with the render context. A nil env
// evaluates each render in a fresh NewEnv.
func Component(form any, env *Env) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Eval(ctx, form, env)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// Lazy returns a form that loads url when it scrolls into view,
// showing placeholder until then.
//
//	hxkit.Lazy("/feed", []any{"p.muted", "Loading…"})
//
// Uses HTMX's "intersect once" trigger.
func Lazy(url string, placeholder any) []any {
	return deferred(url, placeholder, "intersect once")
}

// Defer returns a form that loads url once the page has loaded.
//
// Uses HTMX's "load" trigger.
func Defer(url string, placeholder any) []any {
	return deferred(url, placeholder, "load")
}

func deferred(url string, placeholder any, trigger string) []any {
	return []any{
		"div",
		markup.A("hx-get", url, "hx-trigger", trigger, "hx-swap", string(SwapOuter)),
		placeholder,
	}
}
