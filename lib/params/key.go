// Package params decodes Rails-style bracketed parameter keys into nested
// trees and encodes flat trees back into query strings.
//
// A key is a segment followed by any number of bracketed segments, with an
// optional trailing "[]" that appends to a list:
//
//	entry[user_id]      -> {"entry": {"user_id": v}}
//	entry[tags][]       -> {"entry": {"tags": [v, ...]}}
//
// ParseKey mutates and returns the tree it is given, so many keys can be
// folded into one result.
package params

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Sentinel errors for key and query parsing.
var (
	ErrMalformedKey   = errors.New("params: malformed key")
	ErrKeyConflict    = errors.New("params: path used as both value and container")
	ErrMalformedQuery = errors.New("params: malformed query string")
)

// Tree is a decoded parameter structure. Values are scalars, nested trees
// or []any lists built by "[]" keys.
type Tree map[string]any

// ParseKey parses key and stores value at the path it names inside target.
//
// A nil target allocates a fresh tree. The (possibly new) root is returned
// so callers can fold a sequence of keys:
//
//	t, _ := params.ParseKey("a[b]", 1, nil)
//	t, _ = params.ParseKey("a[c]", 2, t) // {"a": {"b": 1, "c": 2}}
//
// Objects reached by an earlier key are reused, never replaced. A path that
// is used once as a value and once as a container returns ErrKeyConflict.
func ParseKey(key string, value any, target Tree) (Tree, error) {
	root := target
	if root == nil {
		root = Tree{}
	}

	var (
		runes    = []rune(key)
		last     = len(runes) - 1
		buf      []rune
		node     = root
		owner    string
		hasOwner bool

		inObject bool
		inList   bool
	)

	peek := func(i int) rune {
		if i < len(runes) {
			return runes[i]
		}
		return 0
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '[' && inObject:
			return root, fmt.Errorf("%w: %q: nested [", ErrMalformedKey, key)

		case ch == '[' && peek(i+1) == ']':
			inList = true

		case ch == '[':
			if inList {
				return root, fmt.Errorf("%w: %q: segment after []", ErrMalformedKey, key)
			}
			inObject = true
			hasOwner = false
			if len(buf) != 0 {
				child, err := descend(node, string(buf), key)
				if err != nil {
					return root, err
				}
				node = child
				buf = buf[:0]
			}

		case ch == ']' && inObject:
			inObject = false
			owner, hasOwner = string(buf), true
			buf = buf[:0]
			if i == last {
				return root, assign(node, owner, value, key)
			}
			if peek(i+1) != '[' || peek(i+2) != ']' {
				child, err := descend(node, owner, key)
				if err != nil {
					return root, err
				}
				node = child
			}

		case ch == ']' && inList:
			if len(buf) != 0 {
				owner, hasOwner = string(buf), true
				buf = buf[:0]
			}
			if !hasOwner {
				return root, fmt.Errorf("%w: %q: [] needs a key", ErrMalformedKey, key)
			}
			if i != last {
				return root, fmt.Errorf("%w: %q: [] must end the key", ErrMalformedKey, key)
			}
			return root, push(node, owner, value, key)

		case ch == ']':
			return root, fmt.Errorf("%w: %q: unexpected ]", ErrMalformedKey, key)

		default:
			buf = append(buf, ch)
		}
	}

	if inObject {
		return root, fmt.Errorf("%w: %q: unclosed [", ErrMalformedKey, key)
	}
	if len(buf) != 0 {
		return root, assign(node, string(buf), value, key)
	}
	return root, nil
}

// descend returns the tree stored at node[name], creating it when absent.
func descend(node Tree, name, key string) (Tree, error) {
	existing, ok := node[name]
	if !ok || existing == nil {
		child := Tree{}
		node[name] = child
		return child, nil
	}
	if child, ok := AsTree(existing); ok {
		return child, nil
	}
	return nil, fmt.Errorf("%w: %q in %q", ErrKeyConflict, name, key)
}

func assign(node Tree, name string, value any, key string) error {
	existing, ok := node[name]
	if ok {
		_, oldTree := AsTree(existing)
		_, newTree := AsTree(value)
		_, oldList := existing.([]any)
		_, newList := value.([]any)
		if (oldTree && !newTree) || (oldList && !newList) {
			return fmt.Errorf("%w: %q in %q", ErrKeyConflict, name, key)
		}
	}
	node[name] = value
	return nil
}

func push(node Tree, name string, value any, key string) error {
	existing, ok := node[name]
	if !ok || existing == nil {
		node[name] = []any{value}
		return nil
	}
	list, ok := existing.([]any)
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrKeyConflict, name, key)
	}
	node[name] = append(list, value)
	return nil
}

// AsTree reports whether v is a nested tree. Plain map[string]any values,
// as produced by decoders, are accepted and share storage with the result.
func AsTree(v any) (Tree, bool) {
	switch t := v.(type) {
	case Tree:
		return t, true
	case map[string]any:
		return Tree(t), true
	}
	return nil, false
}

// IsBlank reports whether v is nil or the empty string.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// IsPresent is the negation of IsBlank.
func IsPresent(v any) bool {
	return !IsBlank(v)
}

// Keys returns the tree's keys in sorted order.
func (t Tree) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}
