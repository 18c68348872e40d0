package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio/suggest"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List every path the site serves",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := openReadOnlyApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		paths, err := app.SitePaths()
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <path>",
	Short: "Show what the 404 page would suggest for a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := openReadOnlyApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		paths, err := app.SitePaths()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		m, ok := suggest.BestMatch(args[0], paths)
		if !ok {
			fmt.Fprintln(out, "no candidates")
			return nil
		}
		verdict := "suggested"
		if m.Rating <= cfg.SuggestThreshold {
			verdict = "below threshold"
		}
		fmt.Fprintf(out, "%s  %.3f  (%s, threshold %.2f)\n", m.Target, m.Rating, verdict, cfg.SuggestThreshold)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd, suggestCmd)
}
