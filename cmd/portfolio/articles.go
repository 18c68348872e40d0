package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List stored articles, drafts included",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := portfolio.NewStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		articles, err := store.ListAllArticles()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSLUG\tSTATUS\tTAGS")
		for _, a := range articles {
			status := "published"
			if !a.Published {
				status = "draft"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Date, a.Slug, status, portfolio.JoinTags(a.Tags))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(articlesCmd)
}
