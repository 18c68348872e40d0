package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

var watchContent bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Import content and start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app := portfolio.New(cfg, views.Default(), portfolio.WithStaticDir(staticDir))
		if err := app.Setup(); err != nil {
			return err
		}
		defer app.Close()

		opts := content.Options{Images: app.Images}
		sync := func() {
			res, err := content.Sync(cfg.ContentDir, app.Store, opts)
			if err != nil {
				app.Echo.Logger.Errorf("content sync: %v", err)
				return
			}
			app.Refresh()
			app.Echo.Logger.Infof("content: %d saved, %d deleted", res.Saved, res.Deleted)
		}
		sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if watchContent {
			go func() {
				if err := content.Watch(ctx, cfg.ContentDir, content.DefaultDebounce, sync); err != nil {
					app.Echo.Logger.Errorf("content watch: %v", err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			app.Echo.Logger.Infof("listening on %s", cfg.Addr)
			if err := app.Echo.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&watchContent, "watch", false, "re-import content when files change")
	rootCmd.AddCommand(serveCmd)
}
