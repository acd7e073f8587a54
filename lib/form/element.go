// Package form turns form elements into nested parameter trees, the
// server-side analog of serializing a browser form with Rails-style names.
package form

import (
	"strings"
)

// Kind is the closed set of element shapes the serializer understands.
type Kind int

const (
	// Ignored elements never contribute a value: buttons, submits and
	// anything that is not a form control.
	Ignored Kind = iota
	// Checkable inputs (checkbox, radio) contribute their value when checked.
	Checkable
	// Text covers every other input type (text, hidden, email, ...).
	Text
	// SelectOne is a single-choice select.
	SelectOne
	// SelectMany is a select with the multiple attribute.
	SelectMany
	// Textarea contributes its text content.
	Textarea
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Checkable:
		return "checkable"
	case Text:
		return "text"
	case SelectOne:
		return "select-one"
	case SelectMany:
		return "select-many"
	case Textarea:
		return "textarea"
	default:
		return "ignored"
	}
}

// Option is one choice of a select element.
type Option struct {
	Selected bool
	Text     string
}

// Element is a read-only view of a form control.
//
// TagName and Type are compared case-insensitively. An input without a
// Type is a text input, as in browsers.
type Element struct {
	TagName  string
	Type     string
	Name     string
	Value    string
	Checked  bool
	Text     string
	Options  []Option
	Multiple bool
}

// Classify returns the element's Kind.
func Classify(e Element) Kind {
	switch strings.ToLower(e.TagName) {
	case "input":
		switch strings.ToLower(e.Type) {
		case "checkbox", "radio":
			return Checkable
		case "button", "submit":
			return Ignored
		default:
			return Text
		}
	case "select":
		if e.Multiple {
			return SelectMany
		}
		return SelectOne
	case "textarea":
		return Textarea
	}
	return Ignored
}

// Value returns what the element contributes to a serialized form, or nil
// when it contributes nothing.
//
// Unchecked checkables, buttons and single selects without a selection
// yield nil. Multi-selects always yield a []any of the selected options'
// text, which is empty when nothing is selected. Empty strings are
// returned as-is; the serializer treats them as blank.
func Value(e Element) any {
	switch Classify(e) {
	case Checkable:
		if e.Checked {
			return e.Value
		}
		return nil
	case Text:
		return e.Value
	case SelectOne:
		for _, o := range e.Options {
			if o.Selected {
				return o.Text
			}
		}
		return nil
	case SelectMany:
		selected := []any{}
		for _, o := range e.Options {
			if o.Selected {
				selected = append(selected, o.Text)
			}
		}
		return selected
	case Textarea:
		return e.Text
	}
	return nil
}
