package hxkit

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry([]byte("test-key"))

	reg.Handle("GET /entries/new", func(w http.ResponseWriter, r *http.Request, in params.Tree) Result {
		return OK([]any{"form",
			markup.A("hx-post", "/entries"),
			[]any{"input", markup.A("name", "entry[title]", "value", "Draft")},
			[]any{"input", markup.A("type", "checkbox", "name", "entry[published]", "value", "1", "checked", "checked")},
			[]any{"select", markup.A("name", "entry[tags][]", "multiple", "multiple"),
				[]any{"option", markup.A("selected", "selected"), "go"},
				[]any{"option", "rust"},
				[]any{"option", markup.A("selected", "selected"), "web"},
			},
		})
	})

	reg.Handle("POST /entries", func(w http.ResponseWriter, r *http.Request, in params.Tree) Result {
		entry, ok := params.AsTree(in["entry"])
		if !ok {
			return Err(nil, errors.New("missing entry"))
		}
		return OK([]any{"p#saved", Text(params.String(entry["title"]))}).
			Flash(FlashSuccess, "Saved").
			Trigger("entry:saved", params.Tree{"title": entry["title"]})
	})

	reg.Handle("GET /go", func(w http.ResponseWriter, r *http.Request, in params.Tree) Result {
		return Redirect("/entries/new")
	})

	return reg
}

func TestRegistryRendersForm(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := TestGet(reg.Handler(), "/entries/new")
	require.NoError(t, err)
	assert.True(t, result.IsOK())
	assert.True(t, result.HasHeader("Content-Type", "text/html; charset=utf-8"))

	tree, err := result.FormTree()
	require.NoError(t, err)
	assert.Equal(t, params.Tree{"entry": params.Tree{
		"title":     "Draft",
		"published": "1",
		"tags":      []any{[]any{"go", "web"}},
	}}, tree)
}

func TestRegistrySubmitRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)

	page, err := TestGet(reg.Handler(), "/entries/new")
	require.NoError(t, err)

	result, err := TestSubmit(reg.Handler(), "/entries", Raw(page.HTML), nil)
	require.NoError(t, err)
	assert.True(t, result.IsOK())
	assert.True(t, result.HTMLContains(`<p id="saved">Draft</p>`))
	assert.True(t, result.HasFlash(FlashSuccess, "Saved"))
	assert.True(t, result.HasEvent("entry:saved"))
}

func TestRegistryHandlerError(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := TestPost(reg.Handler(), "/entries", nil)
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusInternalServerError))
}

func TestRegistryMalformedParams(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := NewTestRequest(http.MethodPost, "/entries").
		WithFormData("entry", "x").
		WithFormData("entry[title]", "y").
		Execute(reg.Handler())
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusBadRequest))
}

func TestRegistryRedirect(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := TestGet(reg.Handler(), "/go")
	require.NoError(t, err)
	assert.True(t, result.WasRedirected())
	assert.Equal(t, "/entries/new", result.RedirectURL)
}

func TestRegistryCSRF(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := NewTestRequest(http.MethodPost, "/entries").
		WithHeader("HX-Request", "false").
		Execute(reg.Handler())
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusForbidden))
}

func TestRegistryDefinitionsDoNotLeak(t *testing.T) {
	reg := NewRegistry([]byte("k"))
	reg.Env().Define("brand", "Acme")
	reg.Handle("GET /a", func(w http.ResponseWriter, r *http.Request, in params.Tree) Result {
		return OK([]any{"p", []any{"define", "brand", "Other"}, "brand"})
	})
	reg.Handle("GET /b", func(w http.ResponseWriter, r *http.Request, in params.Tree) Result {
		return OK([]any{"p", "brand"})
	})

	a, err := TestGet(reg.Handler(), "/a")
	require.NoError(t, err)
	assert.Equal(t, "<p>Other</p>", a.HTML)

	b, err := TestGet(reg.Handler(), "/b")
	require.NoError(t, err)
	assert.Equal(t, "<p>Acme</p>", b.HTML)
}

func TestRegistryRouteCollision(t *testing.T) {
	reg := NewRegistry([]byte("k"))
	h := func(w http.ResponseWriter, r *http.Request, in params.Tree) Result { return OK(nil) }
	reg.Handle("GET /x", h)

	assert.Panics(t, func() { reg.Handle("GET /x", h) })
}
