package hxkit

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
)

// maxDepth bounds nested evaluation, which self-referencing definitions
// would otherwise recurse through forever.
const maxDepth = 512

// HTML evaluates form in a fresh environment.
//
// A bare string that names a binding is replaced by it, including the
// builtin helpers: ["p", "icon"] calls icon with no arguments and fails.
// Wrap prose in Text to keep it out of lookup.
//
//	hxkit.HTML([]any{"ul", []any{"li", "One"}, []any{"li", "Two"}})
//	// <ul><li>One</li><li>Two</li></ul>
func HTML(form any) (string, error) {
	return Eval(context.Background(), form, nil)
}

// MustHTML is like HTML but panics on error. Intended for static forms.
func MustHTML(form any) string {
	out, err := HTML(form)
	if err != nil {
		panic(err)
	}
	return out
}

// HTML evaluates form in e.
func (e *Env) HTML(form any) (string, error) {
	return Eval(context.Background(), form, e)
}

// Eval evaluates a template form to HTML.
//
// Sibling forms are evaluated strictly left to right, so a define is
// visible to the siblings after it and never to those before it. Bare
// strings are looked up first, so helper names such as "path" or "icon"
// are reserved in text position. A nil env
// evaluates in a fresh NewEnv. ctx is passed to embedded templ components.
func Eval(ctx context.Context, form any, env *Env) (string, error) {
	if env == nil {
		env = NewEnv()
	}
	ev := &evaluator{ctx: ctx, env: env}

	var sb strings.Builder
	if err := ev.value(&sb, form, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type evaluator struct {
	ctx context.Context
	env *Env
}

func (ev *evaluator) value(sb *strings.Builder, v any, depth int) error {
	if depth > maxDepth {
		return ErrRecursionLimit
	}
	f, err := Compile(v)
	if err != nil {
		return err
	}
	return ev.form(sb, f, depth)
}

func (ev *evaluator) form(sb *strings.Builder, f Form, depth int) error {
	switch f := f.(type) {
	case Literal:
		return ev.literal(sb, f.Value)

	case Symbol:
		bound, ok := ev.env.Lookup(f.Name)
		if !ok {
			sb.WriteString(f.Name)
			return nil
		}
		return ev.value(sb, bound, depth+1)

	case Define:
		ev.env.Define(f.Name, f.Value)
		return nil

	case Call:
		return ev.call(sb, "", f.Fn, f.Args, depth)

	case Tag:
		if bound, ok := ev.env.Lookup(f.Head); ok {
			if fn, ok := asFunc(bound); ok {
				return ev.call(sb, f.Head, fn, f.Args, depth)
			}
			if _, ok := bound.(markup.Attrs); !ok {
				if _, ok := markup.ToSlice(bound); ok {
					return ev.value(sb, bound, depth+1)
				}
			}
		}
		return ev.tag(sb, f, depth)

	case List:
		for _, item := range f.Items {
			if err := ev.form(sb, item, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnevaluable, f)
}

func (ev *evaluator) call(sb *strings.Builder, name string, fn Func, args []any, depth int) error {
	result, err := fn(args...)
	if err != nil {
		if name != "" {
			return fmt.Errorf("hxkit: %s: %w", name, err)
		}
		return err
	}
	return ev.value(sb, result, depth+1)
}

func (ev *evaluator) tag(sb *strings.Builder, f Tag, depth int) error {
	spec := markup.ParseTagName(f.Head)
	name := spec.Name
	if name == "" {
		name = "div"
	}

	children := f.Args
	var attrs markup.Attrs
	if len(children) != 0 {
		if a, ok := markup.ToAttrs(children[0]); ok {
			attrs = a
			children = children[1:]
		}
	}

	sb.WriteByte('<')
	sb.WriteString(name)
	if rendered := markup.RenderAttrs(markup.MergeProperties(spec.Attrs(), attrs, "class", "id")); rendered != "" {
		sb.WriteByte(' ')
		sb.WriteString(rendered)
	}
	sb.WriteByte('>')

	for _, child := range children {
		if err := ev.value(sb, child, depth+1); err != nil {
			return err
		}
	}

	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteByte('>')
	return nil
}

func (ev *evaluator) literal(sb *strings.Builder, v any) error {
	switch x := v.(type) {
	case nil:
	case bool:
		if x {
			sb.WriteString("Yes")
		} else {
			sb.WriteString("No")
		}
	case Text:
		sb.WriteString(html.EscapeString(string(x)))
	case Raw:
		sb.WriteString(string(x))
	case *regexp.Regexp:
		sb.WriteString(x.String())
	case templ.Component:
		return x.Render(ev.ctx, sb)
	default:
		sb.WriteString(params.String(x))
	}
	return nil
}
