package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/content"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Sync markdown articles into the database",
	Long: `Reads every markdown file under the content directory, saves the articles
and deletes stored articles whose file is gone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir := cfg.ContentDir
		if len(args) == 1 {
			dir = args[0]
		}

		store, err := portfolio.NewStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		res, err := content.Sync(dir, store, content.Options{Images: portfolio.NewImagePipeline(staticDir)})
		if err != nil {
			return err
		}
		total, err := store.CountArticles()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d articles from %s (%d removed, %d published)\n",
			res.Saved, dir, res.Deleted, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
