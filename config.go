package portfolio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/portfolio/suggest"
	"github.com/eringen/portfolio/theme"
)

// SiteConfig holds all configuration for a portfolio site.
type SiteConfig struct {
	Name        string `koanf:"name"`        // Site name (default "Portfolio")
	URL         string `koanf:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description"` // Site description for RSS and meta tags
	Author      string `koanf:"author"`      // Author name for JSON-LD

	Addr         string `koanf:"addr"`          // Listen address (default ":3000")
	DatabasePath string `koanf:"database_path"` // SQLite path (default "data/portfolio.db")
	ContentDir   string `koanf:"content_dir"`   // Markdown articles (default "content/articles")

	AnalyticsEnabled      bool   `koanf:"analytics_enabled"`       // Count page views for "popular content"
	AnalyticsDatabasePath string `koanf:"analytics_database_path"` // default "data/analytics.db"

	SessionSecret string `koanf:"session_secret"` // Required: signs the theme preference cookie
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	ArticleCacheTTL time.Duration `koanf:"article_cache_ttl"` // default 5m
	ArticlesPerPage int           `koanf:"articles_per_page"` // default 6
	RecentArticles  int           `koanf:"recent_articles"`   // Home page cards (default 4)
	TopTags         int           `koanf:"top_tags"`          // default 10
	PopularLimit    int           `koanf:"popular_limit"`     // default 8

	SuggestThreshold float64 `koanf:"suggest_threshold"` // 404 suggestion cutoff (default 0.7)
	DefaultTheme     string  `koanf:"default_theme"`     // default "theme-blue"

	// ExtraPaths are hand-written pages (about, projects, ...) that exist
	// outside the article store. They appear in the sitemap and are 404
	// suggestion candidates.
	ExtraPaths []string `koanf:"extra_paths"`

	NotFoundImage string `koanf:"not_found_image"`

	Hero HeroConfig `koanf:"hero"`
}

// HeroConfig describes the home page banner.
type HeroConfig struct {
	Name       string       `koanf:"name"`
	Intro      string       `koanf:"intro"` // markdown
	AboutURL   string       `koanf:"about_url"`
	Socials    []SocialLink `koanf:"socials"`
	BodyImage  string       `koanf:"body_image"`  // wide layouts
	TorsoImage string       `koanf:"torso_image"` // narrow layouts
	BulbImage  string       `koanf:"bulb_image"`
}

// SocialLink is an outbound profile link shown in the hero.
type SocialLink struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
	Icon string `koanf:"icon"` // line-awesome class, e.g. "la-twitter"
}

// DefaultSiteConfig returns the configuration used when nothing is set.
func DefaultSiteConfig() SiteConfig {
	cfg := SiteConfig{AnalyticsEnabled: true}
	cfg.setDefaults()
	return cfg
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/articles"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.ArticleCacheTTL == 0 {
		c.ArticleCacheTTL = 5 * time.Minute
	}
	if c.ArticlesPerPage <= 0 {
		c.ArticlesPerPage = 6
	}
	if c.RecentArticles <= 0 {
		c.RecentArticles = 4
	}
	if c.TopTags <= 0 {
		c.TopTags = 10
	}
	if c.PopularLimit <= 0 {
		c.PopularLimit = 8
	}
	if c.SuggestThreshold <= 0 {
		c.SuggestThreshold = suggest.Threshold
	}
	if !theme.Allowed(c.DefaultTheme, nil) {
		c.DefaultTheme = theme.Default
	}
	if c.Hero.Name == "" {
		c.Hero.Name = c.Author
	}
}

// LoadConfig reads configuration from the YAML file at path, if it exists,
// then overlays PORTFOLIO_* environment variables. A double underscore
// descends into nested keys: PORTFOLIO_HERO__NAME sets hero.name.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")
	cfg := DefaultSiteConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("portfolio: reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("portfolio: accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return cfg, fmt.Errorf("portfolio: loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("portfolio: unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
