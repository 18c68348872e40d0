// Package portfolio is a server-rendered portfolio and blog built with Go,
// Echo and templ. It serves a hero landing page, a paginated article
// listing with tag pages, a theme picker with unlockable bonus themes, and
// a 404 page that suggests the closest existing path.
//
// Templates are supplied through ViewFuncs; package views provides the
// default set.
package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/analytics"
)

// ViewFuncs holds the templ components the app calls when rendering pages.
// This is the inversion-of-control mechanism that lets callers own and
// customize every template.
type ViewFuncs struct {
	Home        func(p HomePage) templ.Component
	Articles    func(p ArticlesPage) templ.Component
	Article     func(p ArticlePage) templ.Component
	Tag         func(p TagPage) templ.Component
	ThemePicker func(p ThemePickerView) templ.Component
	NotFound    func(p NotFoundPage) templ.Component
	ServerError func(c Chrome) templ.Component
}

// App is the central application. It wires together the store, cache,
// handlers, middleware and templates.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Cache     *ArticleCache
	Views     ViewFuncs
	Images    *ImagePipeline
	Analytics *analytics.Store

	tracker      *analytics.Tracker
	stopCleanup  func()
	hero         HeroView
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the databases and registers middleware and routes. Start
// calls it; tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return errors.New("portfolio: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portfolio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewArticleCache(a.Store, a.Config.ArticleCacheTTL)
	a.Images = NewImagePipeline(a.staticDir)
	a.hero = a.buildHero()

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("portfolio: init analytics: %w", err)
		}
		a.Analytics = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("portfolio: init analytics salt: %w", err)
		}
		a.tracker = analytics.NewTracker(analyticsStore, 30*time.Minute)
		a.stopCleanup = analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server. It returns nil after a
// graceful shutdown.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Refresh drops cached articles so the next request reads the store, and
// forgets view counts of article pages that no longer exist. Call it after
// importing content.
func (a *App) Refresh() {
	if a.Cache == nil {
		return
	}
	a.Cache.Invalidate()
	if a.Analytics == nil {
		return
	}
	paths, err := a.SitePaths()
	if err != nil {
		a.Echo.Logger.Errorf("refresh: site paths: %v", err)
		return
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	n, err := a.Analytics.Forget(func(p string) bool {
		if !strings.HasPrefix(p, "/articles/") {
			return true
		}
		_, ok := known[p]
		return ok
	})
	if err != nil {
		a.Echo.Logger.Errorf("refresh: forget stale views: %v", err)
		return
	}
	if n > 0 {
		a.Echo.Logger.Infof("analytics: forgot %d removed article paths", n)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	for _, name := range EmbeddedAssetNames() {
		e.GET("/public/"+name, embeddedHandler)
	}
	e.GET("/public/themes.css", a.handleThemesCSS)

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/articles/", a.handleArticles)
	e.GET("/articles/:param/", a.handleArticlesParam)
	e.GET("/tags/:tag/", a.handleTag)

	e.POST("/theme/", a.handleSetTheme)
	e.POST("/theme/unlock/", a.handleUnlockTheme)
}

// buildHero resolves the hero illustration variants. Missing images are
// logged and left out.
func (a *App) buildHero() HeroView {
	h := a.Config.Hero
	hero := HeroView{
		Name:     h.Name,
		Intro:    h.Intro,
		AboutURL: h.AboutURL,
		Socials:  h.Socials,
	}
	variant := func(src string, width int) ImageVariant {
		if src == "" {
			return ImageVariant{}
		}
		if !filepath.IsAbs(src) {
			if _, err := os.Stat(src); err != nil {
				src = filepath.Join(a.staticDir, src)
			}
		}
		v, err := a.Images.Variant(src, width)
		if err != nil {
			a.Echo.Logger.Warnf("hero image: %v", err)
			return ImageVariant{}
		}
		return v
	}
	hero.Body = variant(h.BodyImage, HeroWidth)
	hero.Torso = variant(h.TorsoImage, HeroWidth)
	hero.Bulb = variant(h.BulbImage, BulbWidth)
	return hero
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.tracker != nil {
		a.tracker.Close()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Analytics != nil {
		a.Analytics.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("portfolio: required environment variable %s is not set", key)
	}
	return v
}
