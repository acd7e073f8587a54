package hxkit

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
	"github.com/pthm/hxkit/lib/timefmt"
)

// maxRepeat caps the repeat helper.
const maxRepeat = 1000

// builtins is the root of every environment chain. It is populated once
// here and never modified afterwards.
var builtins = newBuiltins()

func newBuiltins() *Env {
	env := &Env{bindings: make(map[string]any)}
	env.Register("icon", iconHelper)
	env.Register("pad", padHelper)
	env.Register("repeat", repeatHelper)
	env.Register("escape", escapeHelper)
	env.Register("path", pathHelper)
	env.Register("fmtDate", timeHelper(timefmt.Date))
	env.Register("fmtISODate", timeHelper(timefmt.ISODate))
	env.Register("fmtISOTime", timeHelper(timefmt.ISOTime))
	env.Register("fmtISODateTime", timeHelper(timefmt.ISODateTime))
	env.Register("timeAgo", timeHelper(func(t time.Time) string {
		return timefmt.Ago(t, time.Now())
	}))
	return env
}

// Icon renders a Font Awesome icon, optionally followed by text:
//
//	Icon("trash", "Delete", nil)
//	// <i class="fa fa-trash" aria-hidden="true"></i> Delete
//
// A class in opts is appended to the icon classes; other opts become
// attributes.
func Icon(desc, text string, opts markup.Attrs) (string, error) {
	if desc == "" {
		return "", ErrMissingDescriptor
	}

	class := "fa fa-" + desc
	if extra, ok := opts.Get("class"); ok && params.IsPresent(extra) {
		class += " " + params.String(extra)
	}
	attrs := append(markup.Attrs(nil), opts...).Set("class", class)

	out := `<i ` + markup.RenderAttrs(attrs) + ` aria-hidden="true"></i>`
	if text != "" {
		out += " " + text
	}
	return out, nil
}

// iconHelper is icon(desc, text?, opts?). A non-string second argument is
// taken as opts.
func iconHelper(args ...any) (any, error) {
	if len(args) == 0 || params.IsBlank(args[0]) {
		return nil, ErrMissingDescriptor
	}
	desc := params.String(args[0])

	var text string
	var optsArg any
	if len(args) > 1 {
		if s, ok := args[1].(string); ok || args[1] == nil {
			text = s
			if len(args) > 2 {
				optsArg = args[2]
			}
		} else {
			optsArg = args[1]
		}
	}

	var opts markup.Attrs
	if optsArg != nil {
		a, ok := markup.ToAttrs(optsArg)
		if !ok {
			return nil, fmt.Errorf("%w: icon options must be attributes, got %T", ErrInvalidArgument, optsArg)
		}
		opts = a
	}

	out, err := Icon(desc, text, opts)
	if err != nil {
		return nil, err
	}
	return Raw(out), nil
}

// Pad left-pads the string form of value with char up to length runes.
func Pad(value any, length int, char string) string {
	s := params.String(value)
	n := utf8.RuneCountInString(s)
	if n >= length || char == "" {
		return s
	}
	return Repeat(char, length-n) + s
}

// Repeat returns s repeated times times, capped at 1000 repetitions.
func Repeat(s string, times int) string {
	if times <= 0 {
		return ""
	}
	return strings.Repeat(s, min(times, maxRepeat))
}

func padHelper(args ...any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: pad(value, length, char)", ErrInvalidArgument)
	}
	length, err := toInt(args[1])
	if err != nil {
		return nil, err
	}
	char := " "
	if len(args) > 2 {
		char = params.String(args[2])
	}
	return Text(Pad(args[0], length, char)), nil
}

func repeatHelper(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: repeat(s, times)", ErrInvalidArgument)
	}
	times, err := toInt(args[1])
	if err != nil {
		return nil, err
	}
	return Raw(Repeat(params.String(args[0]), times)), nil
}

func escapeHelper(args ...any) (any, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = html.EscapeString(params.String(a))
	}
	return Raw(strings.Join(parts, "")), nil
}

// pathHelper is path(base, query?) where base is a string or a list of
// segments joined with "/".
func pathHelper(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: path(base, query)", ErrInvalidArgument)
	}
	base := args[0]
	if seq, ok := markup.ToSlice(base); ok {
		base = seq
	}

	var query params.Tree
	if len(args) > 1 && args[1] != nil {
		attrs, ok := markup.ToAttrs(args[1])
		if !ok {
			return nil, fmt.Errorf("%w: path query must be a mapping, got %T", ErrInvalidArgument, args[1])
		}
		query = make(params.Tree, len(attrs))
		for _, a := range attrs {
			query[a.Name] = a.Value
		}
	}
	return Raw(params.Path(base, query)), nil
}

func timeHelper(format func(time.Time) string) Func {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: expected one time argument", ErrInvalidArgument)
		}
		t, ok := args[0].(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: expected time.Time, got %T", ErrInvalidArgument, args[0])
		}
		return Text(format(t)), nil
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, x)
		}
		return n, nil
	}
	if isNumber(v) {
		n, err := strconv.Atoi(params.String(v))
		if err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %T is not a number", ErrInvalidArgument, v)
}
