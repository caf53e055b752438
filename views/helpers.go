package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates markup and keeps the first write error.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *writer {
	return &writer{ctx: ctx, w: w}
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (w *writer) component(c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func (w *writer) csrf(token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(`>`)
}

// component builds a templ component from a function writing to w.
func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		fn(w)
		return w.err
	})
}
