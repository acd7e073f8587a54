// Package hxkitecho provides Echo framework integration for hxkit.
//
// Mount a registry onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hxkitecho.Mount(e)
//	reg.Handle("POST /_c/entries", saveEntry)
//
// Or bind and render directly from Echo handlers:
//
//	func save(c echo.Context) error {
//	    in, err := hxkitecho.Bind(c)
//	    if err != nil {
//	        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
//	    }
//	    return hxkitecho.Render(c, entryView(in), nil)
//	}
package hxkitecho

import (
	"crypto/rand"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxkit"
	"github.com/pthm/hxkit/lib/params"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key  []byte
	path string
}

// WithKey sets the key used to seal hidden state.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path prefix routed to the registry.
// Defaults to "/_c/". Registry patterns include the prefix.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Mount creates a registry and routes path* on e to it.
func Mount(e *echo.Echo, opts ...Option) *hxkit.Registry {
	reg, path := newRegistry(opts)
	e.Any(path+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and routes path* on g to it, so routes
// share the group's middleware (auth, logging, etc.).
func MountGroup(g *echo.Group, opts ...Option) *hxkit.Registry {
	reg, path := newRegistry(opts)
	g.Any(path+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(opts []Option) (*hxkit.Registry, string) {
	o := &options{path: "/_c/"}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxkitecho: failed to generate random key: %v", err))
		}
	}

	return hxkit.NewRegistry(key), o.path
}

// Bind decodes the request's query and form values into a tree.
func Bind(c echo.Context) (params.Tree, error) {
	return hxkit.DecodeForm(c.Request())
}

// Render evaluates form and writes it to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxkitecho.Render(c, []any{"h1", "Hello"}, nil)
//	}
func Render(c echo.Context, form any, env *hxkit.Env) error {
	return hxkit.Render(c.Response(), c.Request(), form, env)
}

// RenderComponent writes a templ component to the Echo response.
func RenderComponent(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
