package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/imagepair/internal/compositor"
	"github.com/lehigh-university-libraries/imagepair/internal/handlers"
	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for pairing and combining images",
		Long: `Starts a JSON API that a front end drives to pick two images and combine them.

Each session holds one image pair. Paths refer to files on the machine running
the server; combined images are written beside the first image.`,
		Example: `  # Start server on default port 8888
  imagepair serve

  # Start server on custom port
  imagepair serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.cfg.Port
			}

			comp := compositor.New(compositor.WithQuality(opts.cfg.JPEGQuality))
			handler := handlers.New(func() *pairing.State {
				return pairing.New(pairing.WithCombiner(comp))
			})

			// Set up routes
			mux := http.NewServeMux()
			handler.Routes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Imagepair API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give in-flight combines 5 seconds to finish
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
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

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on (default from IMAGEPAIR_PORT)")

	return cmd
}
