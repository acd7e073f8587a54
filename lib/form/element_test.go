package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		elem   Element
		expect Kind
	}{
		{"checkbox", Element{TagName: "INPUT", Type: "checkbox"}, Checkable},
		{"radio", Element{TagName: "input", Type: "RADIO"}, Checkable},
		{"text", Element{TagName: "input", Type: "text"}, Text},
		{"hidden", Element{TagName: "input", Type: "hidden"}, Text},
		{"untyped input", Element{TagName: "input"}, Text},
		{"button", Element{TagName: "input", Type: "button"}, Ignored},
		{"submit", Element{TagName: "input", Type: "submit"}, Ignored},
		{"select", Element{TagName: "SELECT"}, SelectOne},
		{"multi select", Element{TagName: "select", Multiple: true}, SelectMany},
		{"textarea", Element{TagName: "TEXTAREA"}, Textarea},
		{"div", Element{TagName: "div"}, Ignored},
		{"empty", Element{}, Ignored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Classify(tt.elem))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "checkable", Checkable.String())
	assert.Equal(t, "select-many", SelectMany.String())
	assert.Equal(t, "ignored", Kind(99).String())
}

func TestValue(t *testing.T) {
	opts := []Option{{Text: "Red"}, {Selected: true, Text: "Green"}, {Selected: true, Text: "Blue"}}

	tests := []struct {
		name   string
		elem   Element
		expect any
	}{
		{"checked checkbox", Element{TagName: "input", Type: "checkbox", Value: "1", Checked: true}, "1"},
		{"unchecked checkbox", Element{TagName: "input", Type: "checkbox", Value: "1"}, nil},
		{"unchecked radio", Element{TagName: "input", Type: "radio", Value: "a"}, nil},
		{"text", Element{TagName: "input", Type: "text", Value: "hi"}, "hi"},
		{"empty text", Element{TagName: "input", Type: "text"}, ""},
		{"submit", Element{TagName: "input", Type: "submit", Value: "Save"}, nil},
		{"select first selected", Element{TagName: "select", Options: opts}, "Green"},
		{"select none selected", Element{TagName: "select", Options: []Option{{Text: "Red"}}}, nil},
		{"multi select", Element{TagName: "select", Multiple: true, Options: opts}, []any{"Green", "Blue"}},
		{"multi select none", Element{TagName: "select", Multiple: true, Options: []Option{{Text: "Red"}}}, []any{}},
		{"textarea", Element{TagName: "textarea", Text: "notes"}, "notes"},
		{"other", Element{TagName: "div", Value: "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Value(tt.elem))
		})
	}
}
