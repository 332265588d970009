package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rentaldesk/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	Addr       string
	StaticRoot string
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve car image lookups and media files over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&opts.StaticRoot, "static-root", "", "Directory served under the static URL prefix")
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("static_root", cmd.Flags().Lookup("static-root"))
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	media := mediaFromConfig()
	if media.MediaRoot == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("media root is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if viper.GetString("log_level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpapi.NewRouter(httpapi.Handler{
		Service:     newAppService(),
		Media:       media,
		CatalogPath: viper.GetString("catalog"),
		StaticRoot:  resolveString(cmd, opts.StaticRoot, "static_root", "static-root"),
	})
	srv := &http.Server{
		Addr:    resolveString(cmd, opts.Addr, "addr", "addr"),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to start server").
				WithCause(err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to shutdown server").
			WithCause(err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
