package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FlorianRuen/sclng-languages-card/controller"
	"github.com/FlorianRuen/sclng-languages-card/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(global *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the languages card over http, rendered on each request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, token, err := setup(global)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				cfg.API.ListenPort = port
			}

			source, err := service.NewRepositorySource(cmd.Context(), cfg.Github, token)
			if err != nil {
				return fmt.Errorf("setup github client: %w", err)
			}

			// setup handlers and services, the card is streamed so nothing is written on disk
			reportService := service.NewReportService(*cfg, source, nil)
			renderLimiter := rate.NewLimiter(rate.Every(cfg.API.MinRenderInterval), 1)
			apiController := controller.NewAPIController(*cfg, reportService, renderLimiter)

			// setup server and define all routes
			gin.SetMode(gin.ReleaseMode)

			server := &http.Server{
				Addr:              ":" + cfg.API.ListenPort,
				Handler:           controller.NewRouter(apiController),
				ReadHeaderTimeout: 10 * time.Second,
			}

			return run(cmd.Context(), server)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides API.ListenPort")

	return cmd
}

// run serves until ctx is cancelled (SIGINT, SIGTERM) then shuts down gracefully
func run(ctx context.Context, server *http.Server) error {
	errs := make(chan error, 1)

	go func() {
		log.Info("server listening on " + server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil

	case <-ctx.Done():
	}

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	// context is used to inform the server it has 15 seconds to finish the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Application stopped gracefully !")
	return nil
}
