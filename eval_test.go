package hxkit

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxkit/lib/markup"
)

func TestEvalScalars(t *testing.T) {
	when := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		form any
		want string
	}{
		{"nil", nil, ""},
		{"unbound string", "hello", "hello"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"time", when, "2024-03-09T10:00:00Z"},
		{"regexp", regexp.MustCompile(`a+b`), "a+b"},
		{"text is escaped", Text("<b>&"), "&lt;b&gt;&amp;"},
		{"raw is verbatim", Raw("<b>"), "<b>"},
		{"empty list", []any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTML(tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalTags(t *testing.T) {
	tests := []struct {
		name string
		form any
		want string
	}{
		{
			name: "attributes and text",
			form: []any{"a", map[string]any{"href": "http://x.com"}, "text"},
			want: `<a href="http://x.com">text</a>`,
		},
		{
			name: "nested children",
			form: []any{"ul", []any{"li", "One"}, []any{"li", "Two"}},
			want: `<ul><li>One</li><li>Two</li></ul>`,
		},
		{
			name: "selector classes merge with attribute classes",
			form: []any{"a.btn.btn-primary", markup.A("class", "btn-sm", "href", "#")},
			want: `<a class="btn btn-primary btn-sm" href="#"></a>`,
		},
		{
			name: "selector id",
			form: []any{"section#main.wide"},
			want: `<section class="wide" id="main"></section>`,
		},
		{
			name: "empty name renders div",
			form: []any{".card", "x"},
			want: `<div class="card">x</div>`,
		},
		{
			name: "element 1 that is not a mapping is a child",
			form: []any{"p", []any{"b", "bold"}, " tail"},
			want: `<p><b>bold</b> tail</p>`,
		},
		{
			name: "nested data attributes",
			form: []any{"div", markup.A("data", markup.A("entryId", 4))},
			want: `<div data-entry-id="4"></div>`,
		},
		{
			name: "href with query",
			form: []any{"a", markup.A("href", []any{"/search", markup.A("q", "a b")}), "go"},
			want: `<a href="/search?q=a%20b">go</a>`,
		},
		{
			name: "list of siblings",
			form: []any{[]any{"li", "a"}, []any{"li", "b"}},
			want: `<li>a</li><li>b</li>`,
		},
		{
			name: "typed slice children",
			form: []any{"p", []string{"em", "hi"}},
			want: `<p><em>hi</em></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTML(tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalDefinitionsAreLeftToRight(t *testing.T) {
	got, err := HTML([]any{"p", "x", []any{"define", "x", "1"}, "x"})
	require.NoError(t, err)
	assert.Equal(t, "<p>x1</p>", got)

	got, err = HTML([]any{"seq", []any{"define", "x", 1}, []any{"define", "y", "x"}, "y"})
	require.NoError(t, err)
	assert.Equal(t, "<seq>1</seq>", got)
}

func TestEvalNamedTemplates(t *testing.T) {
	env := NewEnv()
	env.Define("card", []any{"div.card", "body"})
	env.Define("greet", Func(func(args ...any) (any, error) {
		return []any{"p", "Hi ", Text(args[0].(string))}, nil
	}))

	got, err := env.HTML([]any{"main", []any{"card"}, []any{"greet", "Ann"}})
	require.NoError(t, err)
	assert.Equal(t, `<main><div class="card">body</div><p>Hi Ann</p></main>`, got)
}

func TestEvalBoundScalarHeadRendersTag(t *testing.T) {
	env := NewEnv()
	env.Define("b", "bold")

	got, err := env.HTML([]any{"b", "x"})
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", got)
}

func TestEvalFunctionHead(t *testing.T) {
	upper := func(args ...any) any {
		return strings.ToUpper(args[0].(string))
	}
	got, err := HTML([]any{upper, "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ABC", got)
}

func TestEvalFunctionError(t *testing.T) {
	boom := errors.New("boom")
	env := NewEnv()
	env.Register("fail", func(args ...any) (any, error) { return nil, boom })

	_, err := env.HTML([]any{"fail"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fail")
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		form any
		want error
	}{
		{"define too short", []any{"define", "x"}, ErrInvalidDefinition},
		{"define too long", []any{"define", "x", 1, 2}, ErrInvalidDefinition},
		{"define non-string name", []any{"define", 1, 2}, ErrInvalidDefinition},
		{"bare mapping", map[string]any{"a": 1}, ErrUnevaluable},
		{"bare attrs", markup.A("a", 1), ErrUnevaluable},
		{"struct", struct{}{}, ErrUnevaluable},
		{"nested failure", []any{"p", []any{"define"}}, ErrInvalidDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HTML(tt.form)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsTemplateError(err))
		})
	}
}

func TestEvalRecursionLimit(t *testing.T) {
	env := NewEnv()
	env.Define("loop", "loop")

	_, err := env.HTML("loop")
	require.ErrorIs(t, err, ErrRecursionLimit)

	env.Define("self", []any{"self"})
	_, err = env.HTML([]any{"self"})
	require.ErrorIs(t, err, ErrRecursionLimit)
}

func TestEvalFreshEnvPerCall(t *testing.T) {
	_, err := HTML([]any{"define", "leak", "yes"})
	require.NoError(t, err)

	got, err := HTML("leak")
	require.NoError(t, err)
	assert.Equal(t, "leak", got)
}

func TestEvalTemplComponent(t *testing.T) {
	type ctxKey struct{}
	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<i>"+ctx.Value(ctxKey{}).(string)+"</i>")
		return err
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "from ctx")
	got, err := Eval(ctx, []any{"p", comp}, nil)
	require.NoError(t, err)
	assert.Equal(t, "<p><i>from ctx</i></p>", got)
}

func TestMustHTMLPanics(t *testing.T) {
	assert.Equal(t, "<br></br>", MustHTML([]any{"br"}))
	assert.Panics(t, func() { MustHTML([]any{"define"}) })
}

func TestCompile(t *testing.T) {
	f, err := Compile([]any{"define", "x", 1})
	require.NoError(t, err)
	assert.Equal(t, Define{Name: "x", Value: 1}, f)

	f, err = Compile([]any{"div", "a"})
	require.NoError(t, err)
	assert.Equal(t, Tag{Head: "div", Args: []any{"a"}}, f)

	f, err = Compile("x")
	require.NoError(t, err)
	assert.Equal(t, Symbol{Name: "x"}, f)

	f, err = Compile([]any{1, "a"})
	require.NoError(t, err)
	assert.Equal(t, List{Items: []Form{Literal{Value: 1}, Symbol{Name: "a"}}}, f)

	f, err = Compile(Symbol{Name: "y"})
	require.NoError(t, err)
	assert.Equal(t, Symbol{Name: "y"}, f)
}

func TestEvalHelperNamesInTextPosition(t *testing.T) {
	_, err := HTML([]any{"p", "icon"})
	assert.ErrorIs(t, err, ErrMissingDescriptor)

	out, err := HTML([]any{"p", Text("icon")})
	require.NoError(t, err)
	assert.Equal(t, "<p>icon</p>", out)
}
