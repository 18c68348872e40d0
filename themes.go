package portfolio

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/theme"
)

// themeTriggerHeader tells the client script which theme class to apply
// after it swaps in a re-rendered picker.
const themeTriggerHeader = "X-Theme"

// chrome assembles the data every full page shares.
func (a *App) chrome(c echo.Context, meta PageMeta) Chrome {
	current, unlocked := a.readPrefs(c)
	if meta.Title == "" {
		meta.Title = a.Config.Name
	} else {
		meta.Title += " | " + a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	return Chrome{
		Site:   a.Config,
		Meta:   meta,
		Theme:  current,
		Picker: a.pickerView(c, current, unlocked),
	}
}

func (a *App) pickerView(c echo.Context, current string, unlocked []string) ThemePickerView {
	return ThemePickerView{
		Current:  current,
		Controls: theme.Picker(current, unlocked),
		CSRF:     CsrfToken(c),
	}
}

// handleSetTheme switches the visitor's theme. HTMX-style requests get the
// re-rendered picker; plain form posts are redirected back.
func (a *App) handleSetTheme(c echo.Context) error {
	_, unlocked := a.readPrefs(c)
	value := strings.TrimSpace(c.FormValue("theme"))
	if !theme.Allowed(value, unlocked) {
		return c.String(http.StatusBadRequest, "Unknown or locked theme")
	}
	if err := a.savePrefs(c, value, unlocked); err != nil {
		return err
	}
	return a.themeResponse(c, value, unlocked)
}

// handleUnlockTheme unlocks a bonus theme by name and selects it.
func (a *App) handleUnlockTheme(c echo.Context) error {
	_, unlocked := a.readPrefs(c)
	name := strings.TrimSpace(c.FormValue("name"))
	unlocked, ok := theme.Unlock(unlocked, name)
	if !ok {
		return c.String(http.StatusBadRequest, "Unknown theme")
	}
	value := theme.Value(name)
	if err := a.savePrefs(c, value, unlocked); err != nil {
		return err
	}
	return a.themeResponse(c, value, unlocked)
}

func (a *App) themeResponse(c echo.Context, current string, unlocked []string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set(themeTriggerHeader, current)
		c.Response().Header().Set("Cache-Control", "no-store")
		view := a.pickerView(c, current, unlocked)
		view.Small = c.FormValue("small") == "true"
		return Render(c, a.Views.ThemePicker(view))
	}
	return c.Redirect(http.StatusSeeOther, safeReferer(c))
}

// safeReferer returns the path of the Referer header when it points at this
// host, otherwise "/".
func safeReferer(c echo.Context) string {
	ref := c.Request().Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return "/"
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

func (a *App) handleThemesCSS(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(theme.Stylesheet()))
}
