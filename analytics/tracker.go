package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Tracker is echo middleware that counts successful page views.
type Tracker struct {
	store   *Store
	limiter *rateLimiter
	now     func() time.Time
}

// NewTracker creates a Tracker recording into store. A visitor counts at
// most once per path within window.
func NewTracker(store *Store, window time.Duration) *Tracker {
	return &Tracker{
		store:   store,
		limiter: newRateLimiter(1, window),
		now:     time.Now,
	}
}

// Close stops the limiter's background cleanup.
func (t *Tracker) Close() {
	t.limiter.stop()
}

// Middleware counts GET requests for HTML pages that completed with 200 OK.
// Bots, Do Not Track requests, HTMX partial swaps and static files are not
// counted. Recording errors are logged and never fail the request.
func (t *Tracker) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil || !t.countable(c) {
			return err
		}
		path := NormalizePath(c.Request().URL.Path)
		key := VisitorID(c.RealIP(), c.Request().UserAgent()) + "|" + path
		if !t.limiter.allow(key) {
			return nil
		}
		if rerr := t.store.RecordView(path, t.now()); rerr != nil {
			c.Logger().Errorf("analytics: record view %s: %v", path, rerr)
		}
		return nil
	}
}

func (t *Tracker) countable(c echo.Context) bool {
	req := c.Request()
	if req.Method != http.MethodGet || c.Response().Status != http.StatusOK {
		return false
	}
	if strings.HasPrefix(req.URL.Path, "/public/") || strings.Contains(req.URL.Path, ".") {
		return false
	}
	if req.Header.Get("HX-Request") == "true" || req.Header.Get("DNT") == "1" {
		return false
	}
	return !IsBot(req.UserAgent())
}
