package hxkit

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/pthm/hxkit/lib/params"
)

// Handler serves one route. in holds the request's query and form values
// decoded into a tree.
type Handler func(w http.ResponseWriter, r *http.Request, in params.Tree) Result

// Registry manages route registration and turns handler Results into
// responses.
type Registry struct {
	mu      sync.RWMutex
	mux     *http.ServeMux
	encoder *Encoder
	env     *Env
	routes  map[string]Handler

	// OnError is called when decoding, a handler or rendering fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a new registry with the given encryption key for
// sealed state.
func NewRegistry(encryptionKey []byte) *Registry {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("hxkit: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:     http.NewServeMux(),
		encoder: enc,
		env:     NewEnv(),
		routes:  make(map[string]Handler),
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsParamError(err) || IsDecryptionError(err) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Encoder returns the registry's encoder, for HiddenState and OpenState.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Env returns the environment every response is rendered from. Helpers
// and shared definitions registered here are visible to all routes;
// definitions made while rendering one response are not.
func (reg *Registry) Env() *Env {
	return reg.env
}

// Handle registers h for pattern, using http.ServeMux pattern syntax.
// Panics on a duplicate pattern.
func (reg *Registry) Handle(pattern string, h Handler) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.routes[pattern]; exists {
		panic(fmt.Sprintf("hxkit: route collision for %q", pattern))
	}
	reg.routes[pattern] = h
	reg.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		reg.serve(w, r, h)
	})
}

func (reg *Registry) serve(w http.ResponseWriter, r *http.Request, h Handler) {
	in, err := DecodeForm(r)
	if err != nil {
		reg.OnError(w, r, err)
		return
	}

	res := h(w, r, in)
	if res.ShouldSkip() {
		return
	}
	if err := res.GetErr(); err != nil {
		reg.OnError(w, r, err)
		return
	}

	for k, v := range res.GetHeaders() {
		w.Header().Set(k, v)
	}
	if trigger := BuildTriggerHeader(res.GetCallback(), res.GetTrigger(), res.GetTriggerData()); trigger != "" {
		w.Header().Set("HX-Trigger", trigger)
	}
	if res.triggerAfterSettle != "" {
		w.Header().Set("HX-Trigger-After-Settle", res.triggerAfterSettle)
	}
	if url := res.GetRedirect(); url != "" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := Eval(r.Context(), res.GetForm(), reg.env.Child())
	if err != nil {
		reg.OnError(w, r, err)
		return
	}
	body += RenderFlashesOOB(res.GetFlashes())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	status := res.GetStatus()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Handler returns the HTTP handler for registered routes.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if r.Header.Get("HX-Request") != "true" {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		reg.mux.ServeHTTP(w, r)
	})
}
