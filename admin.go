package pagedesk

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagedesk/editor"
	"github.com/eringen/pagedesk/page"
)

// Form field names that steer an action rather than carry page values.
const (
	formPage   = "_page"
	formType   = "_type"
	formList   = "_list"
	formParent = "_parent"
	formHandle = "_handle"
)

// workspace returns the authoring workspace of the request. Requests
// without an admin session get a throwaway one.
func (a *App) workspace(c echo.Context) (*Workspace, error) {
	if !IsAdmin(c) {
		return a.Workspaces.Transient(), nil
	}
	current := sessionWorkspace(c)
	id, ws := a.Workspaces.Open(current)
	if id != current {
		if err := setAdminSession(c, id); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (a *App) handleAdmin(c echo.Context) error {
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	var v editor.View
	err = ws.Do(IsAdmin(c), func(ctrl *editor.Controller) error {
		v, err = ctrl.Start()
		return err
	})
	if err != nil {
		return err
	}
	if v.Denied {
		return Render(c, a.Views.AdminLogin(v.Message, false, CsrfToken(c)))
	}
	return Render(c, a.Views.AdminWorkspace(v, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		a.Log.Warn().Str("ip", ip).Msg("login rate limited")
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		id, _ := a.Workspaces.Open(sessionWorkspace(c))
		if err := setAdminSession(c, id); err != nil {
			return err
		}
		a.loginLimiter.Reset(ip)
		a.Log.Info().Str("ip", ip).Msg("admin login")
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	left := a.loginLimiter.Record(ip)
	a.Log.Warn().Str("ip", ip).Int("attempts_left", left).Msg("failed admin login")
	return Render(c, a.Views.AdminLogin("", true, CsrfToken(c)))
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if id := sessionWorkspace(c); id != "" {
		a.Workspaces.Drop(id)
	}
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSelect(c echo.Context) error {
	id := strings.TrimSpace(c.FormValue(formPage))
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		if id == "" {
			return ctrl.SelectCreateNew()
		}
		return ctrl.SelectExistingPage(id)
	})
}

func (a *App) handleAdminType(c echo.Context) error {
	t := page.Type(c.FormValue(formType))
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		return ctrl.ChangeType(t)
	})
}

func (a *App) handleAdminAddRow(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	list := c.FormValue(formList)
	parent := editor.Handle(c.FormValue(formParent))
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		if err := ctrl.Bind(values); err != nil {
			return err
		}
		_, err := ctrl.AddItem(list, parent)
		return err
	})
}

func (a *App) handleAdminRemoveRow(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	h := editor.Handle(c.FormValue(formHandle))
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		if err := ctrl.Bind(values); err != nil {
			return err
		}
		return ctrl.RemoveItem(h)
	})
}

func (a *App) handleAdminSave(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		if err := ctrl.Bind(values); err != nil {
			return err
		}
		_, err := ctrl.Save()
		return err
	})
}

func (a *App) handleAdminDelete(c echo.Context) error {
	return a.adminAction(c, func(ctrl *editor.Controller) error {
		return ctrl.DeletePage()
	})
}

// adminAction runs fn on the session workspace and renders the resulting
// workspace view.
func (a *App) adminAction(c echo.Context, fn func(ctrl *editor.Controller) error) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	var v editor.View
	err = ws.Do(true, func(ctrl *editor.Controller) error {
		if _, err := ctrl.Start(); err != nil {
			return err
		}
		if err := fn(ctrl); err != nil {
			return err
		}
		v, err = ctrl.View()
		return err
	})
	if err != nil {
		return a.adminError(err)
	}
	return Render(c, a.Views.AdminWorkspace(v, CsrfToken(c)))
}

// adminError maps workspace errors onto HTTP errors. Anything unrecognized
// is a server error.
func (a *App) adminError(err error) error {
	switch {
	case errors.Is(err, page.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "page not found").SetInternal(err)
	case errors.Is(err, editor.ErrUnknownType),
		errors.Is(err, editor.ErrTypeLocked),
		errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, editor.ErrNotStarted),
		errors.Is(err, editor.ErrNoCollections),
		errors.Is(err, editor.ErrUnknownList),
		errors.Is(err, editor.ErrUnknownHandle):
		a.Log.Warn().Err(err).Msg("rejected workspace action")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return err
}

// formValues collects the submitted page values, one per key, leaving out
// the action fields.
func formValues(c echo.Context) (map[string]string, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(params))
	for k, vs := range params {
		if strings.HasPrefix(k, "_") || len(vs) == 0 {
			continue
		}
		values[k] = vs[0]
	}
	return values, nil
}
