// Package display renders stored pages for site visitors. Posts, images and
// videos are rendered here; slideshows and quizzes are handed to dedicated
// renderers.
package display

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"github.com/eringen/pagedesk/page"
)

// Renderer produces the markup for one page.
type Renderer interface {
	Render(p page.Page) templ.Component
}

// RendererFunc adapts a func to Renderer.
type RendererFunc func(p page.Page) templ.Component

func (f RendererFunc) Render(p page.Page) templ.Component { return f(p) }

// Dispatcher maps a page type to its renderer.
type Dispatcher struct {
	slideshow Renderer
	quiz      Renderer
	md        goldmark.Markdown
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMarkdown renders post content as Markdown instead of plain text.
func WithMarkdown() Option {
	return func(d *Dispatcher) { d.md = goldmark.New() }
}

// New returns a dispatcher delegating slideshows and quizzes to the given
// renderers.
func New(slideshow, quiz Renderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{slideshow: slideshow, quiz: quiz}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Render returns the component for p. A nil page or unknown type renders
// NotFound.
func (d *Dispatcher) Render(p *page.Page) templ.Component {
	if p == nil {
		return NotFound()
	}
	switch p.Type {
	case page.TypePost:
		return d.post(*p)
	case page.TypeImage:
		return Image(*p)
	case page.TypeVideo:
		return Video(*p)
	case page.TypeSlideshow:
		if d.slideshow != nil {
			return d.slideshow.Render(*p)
		}
	case page.TypeQuiz:
		if d.quiz != nil {
			return d.quiz.Render(*p)
		}
	}
	return NotFound()
}

func (d *Dispatcher) post(p page.Page) templ.Component {
	if d.md == nil {
		return Post(p)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := d.md.Convert([]byte(p.Content), &body); err != nil {
			return err
		}
		var buf bytes.Buffer
		buf.WriteString(`<div class="post"><h3>`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`</h3>`)
		buf.Write(body.Bytes())
		writeCreated(&buf, p.Created)
		buf.WriteString(`</div>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Post renders a post with its content as escaped text.
func Post(p page.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<div class="post"><h3>`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`</h3><p>`)
		buf.WriteString(templ.EscapeString(p.Content))
		buf.WriteString(`</p>`)
		writeCreated(&buf, p.Created)
		buf.WriteString(`</div>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeCreated(buf *bytes.Buffer, created string) {
	if created == "" {
		return
	}
	buf.WriteString(`<p class="posted">Posted on `)
	buf.WriteString(templ.EscapeString(created))
	buf.WriteString(`</p>`)
}

// Image renders an image page.
func Image(p page.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<div class="image"><h3>`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`</h3><p><img src="`)
		buf.WriteString(SafeURL(p.Src))
		buf.WriteString(`" alt="`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`"></p></div>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Video renders a video page with a single source.
func Video(p page.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<div class="video"><h3>`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`</h3><video width="640" height="480" controls><source src="`)
		buf.WriteString(SafeURL(p.Src))
		buf.WriteString(`" type="`)
		buf.WriteString(templ.EscapeString(p.ContentType))
		buf.WriteString(`">Your browser does not support this video</video></div>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound is rendered for missing pages.
func NotFound() templ.Component {
	return templ.Raw(`<h3>Not found</h3><p>Aww, we couldn't find that page. :(</p>`)
}

// SafeURL sanitizes and attribute-escapes a user supplied URL.
func SafeURL(raw string) string {
	return templ.EscapeString(string(templ.URL(raw)))
}
