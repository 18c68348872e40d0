package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
)

var (
	cfgFile   string
	staticDir string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A portfolio and blog built with Go, Echo and templ",
	Long: `portfolio serves a personal site: a hero landing page, a paginated
article listing with tag pages, a theme picker with unlockable bonus themes
and a 404 page that suggests the closest existing path.

Articles are markdown files with YAML frontmatter, imported into SQLite.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&staticDir, "static", "public", "static assets directory")
}

func loadConfig() (portfolio.SiteConfig, error) {
	cfg, err := portfolio.LoadConfig(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openReadOnlyApp builds an App backed by the article store without
// registering routes or opening analytics. Used by commands that only
// inspect content.
func openReadOnlyApp(cfg portfolio.SiteConfig) (*portfolio.App, error) {
	store, err := portfolio.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	app := portfolio.New(cfg, portfolio.ViewFuncs{}, portfolio.WithStaticDir(staticDir))
	app.Store = store
	app.Cache = portfolio.NewArticleCache(store, cfg.ArticleCacheTTL)
	return app, nil
}
