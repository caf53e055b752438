package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pagedesk"
	"github.com/eringen/pagedesk/display"
	"github.com/eringen/pagedesk/page"
)

// Home lists the stored pages in insertion order.
func Home(site pagedesk.SiteConfig, pages []page.Summary) templ.Component {
	body := component(func(w *writer) {
		w.raw(`<section class="home"><h2>`)
		w.text(site.Name)
		w.raw(`</h2>`)
		if site.Description != "" {
			w.raw(`<p>`)
			w.text(site.Description)
			w.raw(`</p>`)
		}
		if len(pages) == 0 {
			w.raw(`<p class="empty">Nothing published yet.</p>`)
		} else {
			w.raw(`<ul class="pages">`)
			for _, p := range pages {
				w.raw(`<li><a`)
				w.attr("href", pagedesk.PagePath(p.ID))
				w.raw(`>`)
				w.text(p.Title)
				w.raw(`</a> <span class="type">`)
				w.text(p.Type.Label())
				w.raw(`</span></li>`)
			}
			w.raw(`</ul>`)
		}
		w.raw(`</section>`)
	})
	meta := PageMeta{URL: pagedesk.BuildURL(site.URL), JsonLD: pagedesk.WebsiteJsonLD(site)}
	return Layout(site, meta, pages, body)
}

// Page renders one stored page inside the site chrome. body is the output
// of the display dispatcher.
func Page(site pagedesk.SiteConfig, p page.Page, pages []page.Summary, body templ.Component) templ.Component {
	meta := PageMeta{
		Title:  p.Title,
		URL:    pagedesk.BuildURL(site.URL, "page", p.ID),
		OGType: "website",
		JsonLD: pagedesk.PageJsonLD(p, site),
	}
	switch p.Type {
	case page.TypePost:
		meta.OGType = "article"
	case page.TypeQuiz:
		meta.Description = p.Description
	}
	return Layout(site, meta, pages, body)
}

// NotFound is the 404 page.
func NotFound(site pagedesk.SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Not found"}, nil, display.NotFound())
}

// ServerError is the 5xx page.
func ServerError(site pagedesk.SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Error"}, nil,
		templ.Raw(`<h3>Something went wrong</h3><p>Please try again later.</p>`))
}
