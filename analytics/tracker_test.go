package analytics

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

const browserUA = "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/121.0"

func setupTracker(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	tr := NewTracker(s, time.Hour)
	t.Cleanup(tr.Close)

	e := echo.New()
	e.Use(tr.Middleware)
	e.GET("/articles/:slug/", func(c echo.Context) error { return c.HTML(http.StatusOK, "ok") })
	e.GET("/missing/", func(c echo.Context) error { return c.HTML(http.StatusNotFound, "nope") })
	return e, s
}

func get(e *echo.Echo, path, ua string, headers ...string) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("User-Agent", ua)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	e.ServeHTTP(httptest.NewRecorder(), req)
}

func TestTrackerCountsOncePerVisitor(t *testing.T) {
	e, s := setupTracker(t)

	get(e, "/articles/go/", browserUA)
	get(e, "/articles/go/", browserUA)
	get(e, "/articles/go/", browserUA+" other")

	if n, _ := s.Views("/articles/go/"); n != 2 {
		t.Errorf("views = %d, want 2 (two distinct visitors)", n)
	}
}

func TestTrackerSkips(t *testing.T) {
	e, s := setupTracker(t)

	get(e, "/articles/bot/", "Googlebot/2.1")
	get(e, "/articles/dnt/", browserUA, "DNT", "1")
	get(e, "/articles/htmx/", browserUA, "HX-Request", "true")
	get(e, "/missing/", browserUA)

	for _, p := range []string{"/articles/bot/", "/articles/dnt/", "/articles/htmx/", "/missing/"} {
		if n, _ := s.Views(p); n != 0 {
			t.Errorf("%s counted %d views, want 0", p, n)
		}
	}
}
