package pagedesk

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagedesk/page"
)

func (a *App) handleHome(c echo.Context) error {
	pages, err := a.Menu.Pages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.Config, pages))
}

func (a *App) handlePage(c echo.Context) error {
	p, err := a.Store.FindPage(c.Param("id"))
	if errors.Is(err, page.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	pages, err := a.Menu.Pages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Page(a.Config, p, pages, a.Display.Render(&p)))
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Menu.Pages()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Store.FindPagesByType(page.TypePost)
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleStyles serves the stylesheet from the static dir, falling back to
// the embedded default.
func (a *App) handleStyles(c echo.Context) error {
	own := filepath.Join(a.staticDir, "styles.css")
	if _, err := os.Stat(own); err == nil {
		return c.File(own)
	}
	css, err := EmbeddedAssets.ReadFile("embedded/styles.css")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", css)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
