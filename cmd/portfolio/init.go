package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/scaffold"
)

var (
	initAuthor string
	initURL    string
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter config, sample article and static files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}

		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generating session secret: %w", err)
		}
		author := initAuthor
		if author == "" {
			author = portfolio.PathToTitle("/" + filepath.Base(abs) + "/")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Creating portfolio site in %s\n\n", dir)
		if _, err := scaffold.Write(dir, scaffold.Data{
			SiteName:      author,
			Author:        author,
			URL:           initURL,
			SessionSecret: hex.EncodeToString(secret),
			Date:          time.Now().Format("2006-01-02"),
		}, out); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		if dir != "." {
			fmt.Fprintf(out, "  cd %s\n", dir)
		}
		fmt.Fprintln(out, "  portfolio serve --watch")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initAuthor, "author", "", "author name (default: directory name)")
	initCmd.Flags().StringVar(&initURL, "url", "http://localhost:3000", "canonical site URL")
	rootCmd.AddCommand(initCmd)
}
