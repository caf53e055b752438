package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/eringen/pagedesk"
	"github.com/eringen/pagedesk/editor"
)

// AdminLogin is the password form. notice is shown above the form,
// showError marks a rejected password.
func AdminLogin(site pagedesk.SiteConfig, notice string, showError bool, csrfToken string) templ.Component {
	body := component(func(w *writer) {
		w.raw(`<section class="admin-login">`)
		if notice != "" {
			w.raw(`<p class="notice">`)
			w.text(notice)
			w.raw(`</p>`)
		}
		if showError {
			w.raw(`<p class="error">Invalid password.</p>`)
		}
		w.raw(`<form method="post" action="/admin/login/">`)
		w.csrf(csrfToken)
		w.raw(`<label for="password">Password</label><input id="password" type="password" name="password" autofocus>`)
		w.raw(`<button type="submit">Log in</button></form></section>`)
	})
	return Layout(site, PageMeta{Title: "Admin"}, nil, body)
}

// AdminWorkspace renders the authoring desk for v.
func AdminWorkspace(site pagedesk.SiteConfig, v editor.View, csrfToken string) templ.Component {
	body := component(func(w *writer) {
		w.raw(`<section class="workspace"><nav class="admin-nav"><a href="/admin/images/">Images</a>`)
		w.raw(`<form method="post" action="/admin/logout/">`)
		w.csrf(csrfToken)
		w.raw(`<button type="submit">Log out</button></form></nav>`)

		if v.Message != "" {
			w.raw(`<p class="message">`)
			w.text(v.Message)
			w.raw(`</p>`)
		}

		w.component(pageSelect(v, csrfToken))
		if v.CanChangeType() {
			w.component(typeSelect(v, csrfToken))
		}

		w.raw(`<form id="page-form" method="post" action="/admin/save/">`)
		w.csrf(csrfToken)
		w.raw(`<h2>`)
		w.text(v.Form.Heading)
		w.raw(`</h2>`)
		for _, f := range v.Form.Fields {
			w.component(formField(f))
		}
		for _, l := range v.Form.Lists {
			w.component(formList(l))
		}
		w.raw(`<button type="submit">Save</button></form>`)

		if v.CanDelete() {
			w.raw(`<form method="post" action="/admin/delete/">`)
			w.csrf(csrfToken)
			w.raw(`<button type="submit" class="danger">Delete</button></form>`)
		}
		w.raw(`</section>`)
	})
	return Layout(site, PageMeta{Title: "Admin"}, nil, body)
}

// pageSelect lists every stored page as "title (type)" plus the create
// option.
func pageSelect(v editor.View, csrfToken string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="page-select" method="post" action="/admin/select/">`)
		w.csrf(csrfToken)
		w.raw(`<select name="_page"><option value=""`)
		if v.PageID == "" {
			w.raw(` selected`)
		}
		w.raw(`>Create new page</option>`)
		for _, p := range v.Pages {
			w.raw(`<option`)
			w.attr("value", p.ID)
			if p.ID == v.PageID {
				w.raw(` selected`)
			}
			w.raw(`>`)
			w.text(p.Title + " (" + string(p.Type) + ")")
			w.raw(`</option>`)
		}
		w.raw(`</select><button type="submit">Open</button></form>`)
	})
}

func typeSelect(v editor.View, csrfToken string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="type-select" method="post" action="/admin/type/">`)
		w.csrf(csrfToken)
		w.raw(`<select name="_type">`)
		for _, t := range v.Types {
			w.raw(`<option`)
			w.attr("value", string(t))
			if t == v.Type {
				w.raw(` selected`)
			}
			w.raw(`>`)
			w.text(t.Label())
			w.raw(`</option>`)
		}
		w.raw(`</select><button type="submit">Change type</button></form>`)
	})
}

func formField(f editor.Field) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div class="field`)
		if f.Error != "" {
			w.raw(` has-error`)
		}
		w.raw(`"><label`)
		w.attr("for", f.Key)
		w.raw(`>`)
		w.text(f.Label)
		w.raw(`</label>`)
		if f.Multiline {
			w.raw(`<textarea rows="8"`)
			w.attr("id", f.Key)
			w.attr("name", f.Key)
			w.raw(`>`)
			w.text(f.Value)
			w.raw(`</textarea>`)
		} else {
			w.raw(`<input type="text"`)
			w.attr("id", f.Key)
			w.attr("name", f.Key)
			w.attr("value", f.Value)
			if f.Placeholder != "" {
				w.attr("placeholder", f.Placeholder)
			}
			w.raw(`>`)
		}
		if f.Error != "" {
			w.raw(`<span class="error">`)
			w.text(f.Error)
			w.raw(`</span>`)
		}
		w.raw(`</div>`)
	})
}

// formList renders a nested list. Its buttons resubmit the page form to
// the row endpoints so values typed so far are kept.
func formList(l editor.List) templ.Component {
	return component(func(w *writer) {
		w.raw(`<fieldset class="list"`)
		w.attr("data-list", l.Name)
		w.raw(`><legend>`)
		w.text(l.Label)
		w.raw(`</legend>`)
		for _, it := range l.Items {
			w.raw(`<div class="item"`)
			w.attr("data-handle", string(it.Handle))
			w.raw(`>`)
			for _, f := range it.Fields {
				w.component(formField(f))
			}
			for _, nested := range it.Lists {
				w.component(formList(nested))
			}
			w.raw(`<button type="submit" formnovalidate`)
			w.attr("formaction", "/admin/rows/remove/?"+url.Values{"_handle": {string(it.Handle)}}.Encode())
			w.raw(`>Remove</button></div>`)
		}
		q := url.Values{"_list": {l.Name}}
		if l.Parent != "" {
			q.Set("_parent", string(l.Parent))
		}
		w.raw(`<button type="submit" formnovalidate`)
		w.attr("formaction", "/admin/rows/add/?"+q.Encode())
		w.raw(`>`)
		w.text(l.AddLabel)
		w.raw(`</button></fieldset>`)
	})
}

// AdminImages is the upload library. Each image shows the URL to paste into
// an image or slide field.
func AdminImages(site pagedesk.SiteConfig, images []pagedesk.Image, csrfToken string) templ.Component {
	body := component(func(w *writer) {
		w.raw(`<section class="images"><nav class="admin-nav"><a href="/admin/">Back to pages</a></nav>`)
		w.raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		w.csrf(csrfToken)
		w.raw(`<input type="file" name="image" accept="image/*"><button type="submit">Upload</button></form>`)
		if len(images) == 0 {
			w.raw(`<p class="empty">No images uploaded.</p>`)
		}
		w.raw(`<ul class="image-list">`)
		for _, img := range images {
			w.raw(`<li><img`)
			w.attr("src", img.URL())
			w.attr("alt", img.OriginalName)
			w.raw(` loading="lazy"><code>`)
			w.text(img.URL())
			w.raw(`</code>`)
			w.raw(`<form method="post" action="/admin/images/delete/">`)
			w.csrf(csrfToken)
			w.raw(`<input type="hidden" name="filename"`)
			w.attr("value", img.Filename)
			w.raw(`><button type="submit" class="danger">Delete</button></form></li>`)
		}
		w.raw(`</ul></section>`)
	})
	return Layout(site, PageMeta{Title: "Images"}, nil, body)
}
