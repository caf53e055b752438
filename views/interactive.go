package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/pagedesk/display"
	"github.com/eringen/pagedesk/page"
)

// Slideshow renders a slideshow page as an ordered list of figures.
var Slideshow = display.RendererFunc(func(p page.Page) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div class="slideshow"><h3>`)
		w.text(p.Title)
		w.raw(`</h3>`)
		if len(p.Images) == 0 {
			w.raw(`<p class="empty">No slides yet.</p></div>`)
			return
		}
		w.raw(`<ol class="slides">`)
		for i, s := range p.Images {
			w.raw(`<li class="slide"`)
			w.attr("id", "slide-"+strconv.Itoa(i+1))
			w.raw(`><figure><img src="`)
			w.raw(display.SafeURL(s.Src))
			w.raw(`"`)
			w.attr("alt", s.Title)
			w.raw(`><figcaption>`)
			w.text(s.Title)
			w.raw(`</figcaption></figure></li>`)
		}
		w.raw(`</ol></div>`)
	})
})

// Quiz renders a quiz page with one radio group per question. The correct
// answer is not part of the markup.
var Quiz = display.RendererFunc(func(p page.Page) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div class="quiz"><h3>`)
		w.text(p.Title)
		w.raw(`</h3><p class="description">`)
		w.text(p.Description)
		w.raw(`</p><form class="quiz-form">`)
		for i, q := range p.Questions {
			name := "q" + strconv.Itoa(i+1)
			w.raw(`<fieldset class="question"><legend>`)
			w.text(strconv.Itoa(i+1) + ". " + q.Text)
			w.raw(`</legend>`)
			for j, opt := range q.Options {
				w.raw(`<label><input type="radio"`)
				w.attr("name", name)
				w.attr("value", strconv.Itoa(j+1))
				w.raw(`> `)
				w.text(opt)
				w.raw(`</label>`)
			}
			w.raw(`</fieldset>`)
		}
		w.raw(`</form></div>`)
	})
})
