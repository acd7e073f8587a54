package hxkit

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/a-h/templ"
	"github.com/pthm/hxkit/lib/markup"
)

// Func is a template helper. It receives the unevaluated remaining
// elements of the form that called it; its result is evaluated in turn.
type Func func(args ...any) (any, error)

// Text is literal text that is HTML escaped on output and never looked up
// in the environment.
type Text string

// Raw is markup emitted verbatim and never looked up in the environment.
type Raw string

// Form is a compiled template node. The concrete types are Literal,
// Symbol, Define, Call, Tag and List.
type Form interface {
	isForm()
}

// Literal renders by string coercion: nil is empty, booleans render as
// Yes/No, numbers and times in their plain form.
type Literal struct{ Value any }

// Symbol is a bare string. It renders the value bound to Name, or Name
// itself when unbound.
type Symbol struct{ Name string }

// Define is ["define", name, value]. It binds name in the environment and
// renders nothing.
type Define struct {
	Name  string
	Value any
}

// Call is a form headed by a function value.
type Call struct {
	Fn   Func
	Args []any
}

// Tag is a form headed by a string other than "define". At evaluation the
// head is resolved against the environment: a bound function is called, a
// bound sequence is expanded, anything else renders an element.
type Tag struct {
	Head string
	Args []any
}

// List is a sequence whose head is neither a string nor a function. Its
// items render one after another with no wrapper.
type List struct{ Items []Form }

func (Literal) isForm() {}
func (Symbol) isForm()  {}
func (Define) isForm()  {}
func (Call) isForm()    {}
func (Tag) isForm()     {}
func (List) isForm()    {}

// Compile classifies v as a Form. Items of a List are compiled eagerly;
// the arguments of Call and Tag forms stay raw because their meaning
// depends on the environment at evaluation time.
func Compile(v any) (Form, error) {
	switch x := v.(type) {
	case nil:
		return Literal{}, nil
	case Form:
		return x, nil
	case string:
		return Symbol{Name: x}, nil
	case Text, Raw, bool, time.Time, *regexp.Regexp, templ.Component:
		return Literal{Value: x}, nil
	case markup.Attrs:
		return nil, fmt.Errorf("%w: bare attributes", ErrUnevaluable)
	}

	if fn, ok := asFunc(v); ok {
		return Call{Fn: fn}, nil
	}
	if isNumber(v) {
		return Literal{Value: v}, nil
	}
	if seq, ok := markup.ToSlice(v); ok {
		return compileSeq(seq)
	}
	if _, ok := v.(fmt.Stringer); ok {
		return Literal{Value: v}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnevaluable, v)
}

func compileSeq(seq []any) (Form, error) {
	if len(seq) == 0 {
		return List{}, nil
	}

	head := seq[0]
	if head == "define" {
		if len(seq) != 3 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidDefinition, len(seq))
		}
		name, ok := seq[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: name must be a string, got %T", ErrInvalidDefinition, seq[1])
		}
		return Define{Name: name, Value: seq[2]}, nil
	}
	if fn, ok := asFunc(head); ok {
		return Call{Fn: fn, Args: seq[1:]}, nil
	}
	if s, ok := head.(string); ok {
		return Tag{Head: s, Args: seq[1:]}, nil
	}

	items := make([]Form, len(seq))
	for i, item := range seq {
		f, err := Compile(item)
		if err != nil {
			return nil, err
		}
		items[i] = f
	}
	return List{Items: items}, nil
}

func asFunc(v any) (Func, bool) {
	switch f := v.(type) {
	case Func:
		return f, f != nil
	case func(...any) (any, error):
		return f, f != nil
	case func(...any) any:
		if f == nil {
			return nil, false
		}
		return func(args ...any) (any, error) { return f(args...), nil }, true
	}
	return nil, false
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
