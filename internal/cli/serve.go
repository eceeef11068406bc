package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dfryer1193/blogify/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := getConfig(cmd)
			if err != nil {
				return err
			}
			config.WatchLogLevel(v)
			gin.SetMode(v.GetString("http.mode"))

			app, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					log.Error().Err(err).Msg("Failed to gracefully close services")
				}
			}()

			if app.Sync != nil {
				app.Sync.Start()
			}

			srv := &http.Server{
				Addr:    v.GetString("http_addr"),
				Handler: app.Router(),
			}

			serveErr := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("store", app.Store).Msg("Starting server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-serveErr:
				return err
			case <-quit:
			}

			log.Info().Msg("Shutting down server...")
			ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("shutdown_timeout"))
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return err
			}

			log.Info().Msg("Server stopped")
			return nil
		},
	}
}
