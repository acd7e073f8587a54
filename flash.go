package hxkit

import (
	"html"

	"github.com/a-h/templ"
	"github.com/pthm/hxkit/lib/markup"
)

// Flash levels for toast notifications.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash represents a one-time notification message.
//
// Flashes render as out-of-band (OOB) swaps that append to the #toasts
// container. Client script dismisses toasts after the delay given in
// data-auto-dismiss.
type Flash struct {
	Level   string // success, error, warning, info
	Message string
}

// Form returns the toast markup for f. The message is escaped.
func (f Flash) Form() []any {
	return []any{
		"div",
		markup.A(
			"class", []string{"toast", "toast-" + html.EscapeString(f.Level)},
			"data-auto-dismiss", "3000",
		),
		Text(f.Message),
	}
}

// FlashesOOB returns the OOB swap form for flashes, or nil when there are
// none.
func FlashesOOB(flashes []Flash) any {
	if len(flashes) == 0 {
		return nil
	}
	form := []any{"div#toasts", markup.A("hx-swap-oob", "beforeend")}
	for _, f := range flashes {
		form = append(form, f.Form())
	}
	return form
}

// RenderFlashesOOB renders flashes as OOB swap HTML. Append it to any
// HTMX response body.
func RenderFlashesOOB(flashes []Flash) string {
	return MustHTML(FlashesOOB(flashes))
}

// ToastContainer returns a templ component for the toast container.
//
// Add this to your layout template (typically near the end of <body>):
//
//	@hxkit.ToastContainer()
func ToastContainer() templ.Component {
	return Component([]any{"div#toasts.toast-container"}, nil)
}
