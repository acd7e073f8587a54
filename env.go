package hxkit

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Env holds the named definitions and helpers visible to a template.
//
// Lookups fall through to a parent chain that ends at the built-in
// helpers; Define and Register only ever touch the receiver, so a child
// can shadow but never mutate what it inherits.
type Env struct {
	mu       sync.RWMutex
	parent   *Env
	bindings map[string]any
}

var (
	shared     *Env
	sharedOnce sync.Once
)

// NewEnv returns an empty environment on top of the built-in helpers.
//
// Eval with a nil Env uses a fresh NewEnv per call, so definitions never
// leak between top-level evaluations unless the caller shares an Env.
func NewEnv() *Env {
	return &Env{parent: builtins, bindings: make(map[string]any)}
}

// Shared returns the process-wide environment. Definitions made through it
// are visible to every later evaluation that opts into it.
func Shared() *Env {
	sharedOnce.Do(func() {
		shared = NewEnv()
	})
	return shared
}

// Child returns a new environment whose lookups fall back to e.
func (e *Env) Child() *Env {
	return &Env{parent: e, bindings: make(map[string]any)}
}

// Define binds name to a template value or helper, replacing any previous
// binding in e.
func (e *Env) Define(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[name] = value
}

// Register adds a named helper. Panics if e already binds name, the same
// way duplicate registrations fail at startup rather than during a render.
func (e *Env) Register(name string, fn Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.bindings[name]; exists {
		panic(fmt.Sprintf("hxkit: helper collision for %q", name))
	}
	e.bindings[name] = fn
}

// Lookup returns the value bound to name in e or its parents.
func (e *Env) Lookup(name string) (any, bool) {
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		v, ok := env.bindings[name]
		env.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every name visible from e, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		for k := range env.bindings {
			seen[k] = struct{}{}
		}
		env.mu.RUnlock()
	}
	return slices.Sorted(maps.Keys(seen))
}
