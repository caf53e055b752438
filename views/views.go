// Package views holds the default templ components of a pagedesk site.
package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pagedesk"
	"github.com/eringen/pagedesk/editor"
)

// Funcs returns the default ViewFuncs for site.
func Funcs(site pagedesk.SiteConfig) pagedesk.ViewFuncs {
	return pagedesk.ViewFuncs{
		Home: Home,
		Page: Page,
		AdminLogin: func(notice string, showError bool, csrfToken string) templ.Component {
			return AdminLogin(site, notice, showError, csrfToken)
		},
		AdminWorkspace: func(v editor.View, csrfToken string) templ.Component {
			return AdminWorkspace(site, v, csrfToken)
		},
		AdminImages: func(images []pagedesk.Image, csrfToken string) templ.Component {
			return AdminImages(site, images, csrfToken)
		},
		NotFound:    func() templ.Component { return NotFound(site) },
		ServerError: func() templ.Component { return ServerError(site) },
		Slideshow:   Slideshow,
		Quiz:        Quiz,
	}
}
