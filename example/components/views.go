package components

import (
	"html"
	"net/http"

	"github.com/pthm/hxkit"
	"github.com/pthm/hxkit/lib/markup"
)

// Define installs the shared page fragments into env.
func Define(env *hxkit.Env) {
	env.Define("brand", []any{"a.brand", markup.A("href", "/"), []any{"icon", "check-square"}, " Todos"})
	env.Register("tagBadge", func(args ...any) (any, error) {
		tag, _ := args[0].(Tag)
		return []any{"span.badge", markup.A("class", "badge-"+string(tag)), hxkit.Text(string(tag))}, nil
	})
}

// Layout wraps body in the full page.
func Layout(title string, body any) []any {
	return []any{"html",
		[]any{"head",
			[]any{"title", hxkit.Text(title)},
			[]any{"script", markup.A("src", "https://unpkg.com/htmx.org@2.0.4")},
		},
		[]any{"body",
			[]any{"header", "brand"},
			[]any{"main.container", body},
			hxkit.ToastContainer(),
		},
	}
}

// TodoForm renders the create form, or the edit form when todo is set.
// sealed is the hidden state field identifying the todo being edited.
func TodoForm(todo *Todo, sealed any) []any {
	action := hxkit.NewAction("/_c/todos", http.MethodPost).Target("#todo-list").SwapInner()
	title, description := "", ""
	if todo != nil {
		action = hxkit.NewAction("/_c/todos/"+todo.ID, http.MethodPost).TargetClosest("li")
		title, description = todo.Title, todo.Description
	}

	tags := []any{"select", markup.A("name", "entry[tags][]", "multiple", "multiple")}
	for _, tag := range AllTags {
		opt := []any{"option"}
		if todo != nil && todo.HasTag(tag) {
			opt = append(opt, markup.A("selected", "selected"))
		}
		tags = append(tags, append(opt, hxkit.Text(string(tag))))
	}

	return []any{"form.todo-form", action.Attrs(),
		sealed,
		[]any{"input", markup.A("name", "entry[title]", "value", html.EscapeString(title), "placeholder", "What needs doing?")},
		[]any{"textarea", markup.A("name", "entry[description]"), hxkit.Text(description)},
		tags,
		[]any{"button.btn.btn-primary", markup.A("type", "submit"), []any{"icon", "plus", "Save"}},
	}
}

// TodoItem renders one list row.
func TodoItem(t *Todo) []any {
	toggle := hxkit.NewAction("/_c/todos/"+t.ID+"/toggle", http.MethodPost).TargetClosest("li")
	remove := hxkit.NewAction("/_c/todos/"+t.ID, http.MethodDelete).
		TargetClosest("li").
		Confirm("Delete this todo?")

	check := markup.A("type", "checkbox")
	if t.Status == StatusCompleted {
		check = check.Set("checked", "checked")
	}

	badges := []any{}
	for _, tag := range t.Tags {
		badges = append(badges, []any{"tagBadge", tag})
	}

	return []any{"li.todo", markup.A("id", "todo-"+t.ID, "class", string(t.Status)),
		[]any{"input", markup.MergeProperties(check, toggle.Attrs())},
		[]any{"span.title", hxkit.Text(t.Title)},
		badges,
		[]any{"small.muted", []any{"timeAgo", t.UpdatedAt}},
		[]any{"button.btn-link", remove.Attrs(), []any{"icon", "trash", markup.A("title", "Delete")}},
	}
}

// TodoList renders the filtered list.
func TodoList(todos []*Todo) []any {
	if len(todos) == 0 {
		return []any{"p.empty", hxkit.Text("Nothing to do.")}
	}
	items := []any{}
	for _, t := range todos {
		items = append(items, TodoItem(t))
	}
	return []any{"ul", items}
}

// Stats renders the counters, refreshed whenever a todo changes.
func Stats(s TodoStats) []any {
	refresh := hxkit.NewAction("/_c/stats", http.MethodGet).OnEvent("todo:changed")
	return []any{"aside#stats", refresh.Attrs(),
		[]any{"span", "Total: ", s.Total},
		[]any{"span", "Pending: ", s.Pending},
		[]any{"span", "Done: ", s.Completed},
	}
}

// Filters renders the status filter links.
func Filters(current string) []any {
	link := func(status, label string) []any {
		a := hxkit.NewAction("/_c/todos", http.MethodGet).
			Vals(map[string]any{"filter": status}).
			Target("#todo-list").
			SwapInner()
		class := "filter"
		if status == current {
			class = "filter active"
		}
		return []any{"a", markup.MergeProperties(markup.A("class", class, "href", "#"), a.Attrs()), hxkit.Text(label)}
	}
	return []any{"nav.filters", link("", "All"), link(string(StatusPending), "Pending"), link(string(StatusCompleted), "Done")}
}
