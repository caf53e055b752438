package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pagedesk"
	"github.com/eringen/pagedesk/page"
)

// Layout wraps body in the site chrome. menu is the navigation list; a nil
// menu hides it.
func Layout(site pagedesk.SiteConfig, meta PageMeta, menu []page.Summary, body templ.Component) templ.Component {
	return component(func(w *writer) {
		title := site.Name
		if meta.Title != "" {
			title = meta.Title + " | " + site.Name
		}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(title)
		w.raw(`</title>`)
		if desc := firstNonEmpty(meta.Description, site.Description); desc != "" {
			w.raw(`<meta name="description"`)
			w.attr("content", desc)
			w.raw(`>`)
		}
		if meta.URL != "" {
			w.raw(`<link rel="canonical"`)
			w.attr("href", meta.URL)
			w.raw(`><meta property="og:url"`)
			w.attr("content", meta.URL)
			w.raw(`>`)
		}
		w.raw(`<meta property="og:title"`)
		w.attr("content", title)
		w.raw(`><meta property="og:type"`)
		w.attr("content", firstNonEmpty(meta.OGType, "website"))
		w.raw(`>`)
		w.raw(`<link rel="icon" href="/favicon.svg"><link rel="stylesheet" href="/public/styles.css">`)
		w.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		w.attr("title", site.Name)
		w.raw(`>`)
		if meta.JsonLD != "" {
			w.raw(`<script type="application/ld+json">`)
			w.raw(meta.JsonLD)
			w.raw(`</script>`)
		}
		w.raw(`</head><body><header><a class="site-name" href="/">`)
		w.text(site.Name)
		w.raw(`</a>`)
		if menu != nil {
			w.component(Menu(menu))
		}
		w.raw(`</header><main>`)
		w.component(body)
		w.raw(`</main></body></html>`)
	})
}

// Menu lists every page as a link.
func Menu(pages []page.Summary) templ.Component {
	return component(func(w *writer) {
		w.raw(`<nav class="menu"><ul>`)
		for _, p := range pages {
			w.raw(`<li`)
			w.attr("class", "menu-"+string(p.Type))
			w.raw(`><a`)
			w.attr("href", pagedesk.PagePath(p.ID))
			w.raw(`>`)
			w.text(p.Title)
			w.raw(`</a></li>`)
		}
		w.raw(`</ul></nav>`)
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
