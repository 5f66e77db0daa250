package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/inajphotography/visionboard/internal/board"
	"github.com/inajphotography/visionboard/internal/config"
	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/handlers"
	"github.com/inajphotography/visionboard/internal/images"
	"github.com/inajphotography/visionboard/internal/metrics"
	"github.com/inajphotography/visionboard/internal/submission"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var layoutName string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the vision board API server",
		Long: `Starts the vision board API on the specified port.

Endpoints:
  POST /api/vision-board/submit   accept a finished board (also /submit)
  GET  /api/gallery               gallery catalog, filterable by mood, setting, style
  GET  /api/health                health check (also /healthcheck)
  GET  /metrics                   Prometheus metrics

Email goes through SendGrid or Brevo depending on EMAIL_PROVIDER and the
configured API keys. Without keys, notifications are logged and skipped.`,
		Example: `  # Start server on default port 3000
  visionboard serve

  # Start server on custom port with the landscape board layout
  visionboard serve --port 8080 --layout landscape`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("layout") {
				cfg.BoardLayout = layoutName
			}

			service, catalog, err := buildService(cfg)
			if err != nil {
				return err
			}

			metrics.Register()
			handler := handlers.New(service, catalog)

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Vision board API available",
					"addr", addr,
					"url", "http://localhost"+addr,
					"email_provider", cfg.EmailProvider,
					"email_enabled", cfg.EmailAPIKey() != "",
					"crm_enabled", cfg.BrevoAPIKey != "",
					"layout", cfg.BoardLayout)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// in-flight submissions wait on rendering and email delivery
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", config.DefaultPort, "Port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&layoutName, "layout", config.DefaultBoardLayout, "Board layout: classic or landscape (overrides BOARD_LAYOUT)")

	return cmd
}

// buildService wires rendering and notification dispatch from configuration
func buildService(cfg config.Config) (*submission.Service, *gallery.Catalog, error) {
	layout, err := board.LayoutByName(cfg.BoardLayout)
	if err != nil {
		return nil, nil, err
	}

	notifier, err := cfg.Notifier()
	if err != nil {
		return nil, nil, err
	}

	catalog, err := gallery.Default()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load gallery: %w", err)
	}

	renderer := board.NewRenderer(images.NewFetcher(cfg.ImageFetchTimeout), layout)
	return submission.NewService(renderer, notifier), catalog, nil
}
