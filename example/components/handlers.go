package components

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pthm/hxkit"
	"github.com/pthm/hxkit/lib/params"
)

// stateField names the sealed hidden input carried by the edit form.
const stateField = "_state"

var errStateMismatch = errors.New("components: sealed state does not match the route")

// Routes registers the todo endpoints on reg.
func Routes(reg *hxkit.Registry, store TodoStore) {
	Define(reg.Env())

	reg.Handle("GET /_c/todos", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		return hxkit.OK(TodoList(store.List(statusFilter(in), nil)))
	})

	reg.Handle("POST /_c/todos", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		title, description, tags := entry(in)
		if title == "" {
			return hxkit.OK(TodoList(store.List(nil, nil))).Flash(hxkit.FlashWarning, "A title is required")
		}
		store.Add(title, description, tags)
		return hxkit.OK(TodoList(store.List(nil, nil))).
			Flash(hxkit.FlashSuccess, "Todo added").
			Trigger("todo:changed")
	})

	reg.Handle("GET /_c/todos/{id}/edit", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		todo := store.Get(r.PathValue("id"))
		if todo == nil {
			return hxkit.OK(nil).Status(http.StatusNotFound)
		}
		sealed, err := hxkit.HiddenState(reg.Encoder(), stateField, params.Tree{"id": todo.ID}, false)
		if err != nil {
			return hxkit.Err(nil, err)
		}
		return hxkit.OK([]any{"li", TodoForm(todo, sealed)})
	})

	reg.Handle("POST /_c/todos/{id}", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		id := r.PathValue("id")
		state, err := hxkit.OpenState(reg.Encoder(), r, stateField, false)
		if err != nil {
			return hxkit.Err(nil, err)
		}
		if params.String(state["id"]) != id {
			return hxkit.Err(nil, fmt.Errorf("%w: %q", errStateMismatch, id))
		}
		title, description, tags := entry(in)
		if !store.Update(id, title, description, tags) {
			return hxkit.OK(nil).Status(http.StatusNotFound)
		}
		return hxkit.OK(TodoItem(store.Get(id))).
			Flash(hxkit.FlashSuccess, "Todo updated").
			Trigger("todo:changed")
	})

	reg.Handle("POST /_c/todos/{id}/toggle", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		id := r.PathValue("id")
		if !store.Toggle(id) {
			return hxkit.OK(nil).Status(http.StatusNotFound)
		}
		return hxkit.OK(TodoItem(store.Get(id))).Trigger("todo:changed")
	})

	reg.Handle("DELETE /_c/todos/{id}", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		if !store.Delete(r.PathValue("id")) {
			return hxkit.OK(nil).Status(http.StatusNotFound)
		}
		return hxkit.OK(nil).
			Flash(hxkit.FlashInfo, "Todo deleted").
			Trigger("todo:changed")
	})

	reg.Handle("GET /_c/stats", func(w http.ResponseWriter, r *http.Request, in params.Tree) hxkit.Result {
		return hxkit.OK(Stats(store.Stats()))
	})
}

// Page renders the full index page for the given status filter.
func Page(store TodoStore, filter string) []any {
	var status *Status
	if filter != "" {
		s := Status(filter)
		status = &s
	}
	return Layout("Todos", []any{
		Stats(store.Stats()),
		TodoForm(nil, nil),
		Filters(filter),
		[]any{"div#todo-list", TodoList(store.List(status, nil))},
	})
}

func statusFilter(in params.Tree) *Status {
	filter := params.String(in["filter"])
	if filter == "" {
		return nil
	}
	s := Status(filter)
	return &s
}

// entry reads the entry[...] fields posted by TodoForm.
func entry(in params.Tree) (title, description string, tags []Tag) {
	e, _ := params.AsTree(in["entry"])
	title = params.String(e["title"])
	description = params.String(e["description"])
	raw, _ := e["tags"].([]any)
	for _, v := range raw {
		tags = append(tags, Tag(params.String(v)))
	}
	return title, description, tags
}
