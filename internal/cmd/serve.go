package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/mailer"
	"github.com/formrelay/formrelay/internal/observability"
	"github.com/formrelay/formrelay/internal/ratelimit"
	"github.com/formrelay/formrelay/internal/server"
	"github.com/formrelay/formrelay/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

SIGINT or SIGTERM triggers a graceful shutdown: the listener stops
accepting requests and in-flight submissions (including mail sends)
are allowed to finish within the shutdown timeout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logLevel := cfg.Logging.Level
		if verbose {
			logLevel = "debug"
		}
		observability.InitServerLogger("formrelay", logLevel)
		logger := observability.ServerLogger
		defer func() { _ = logger.Sync() }()

		sites := cfg.Sites()
		if sites.Len() == 0 {
			logger.Warn("allowlist is empty, every submission will be rejected with 403")
		}
		if !cfg.Mail.Complete() {
			logger.Warn("mail configuration incomplete, admitted submissions will fail with 500")
		}

		limiter := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.Quota)
		notifier := mailer.New(cfg.Mail, mailer.NewResendTransport(cfg.Mail.APIKey), logger)

		health := handlers.NewHealthManager(versionInfo.Version)
		health.RegisterChecker("mail_config", handlers.HealthCheckFunc(func(ctx context.Context) error {
			if !cfg.Mail.Complete() {
				return errors.New("mail configuration incomplete")
			}
			return nil
		}))

		srv := server.New(*cfg, server.Deps{
			Limiter:  limiter,
			Notifier: notifier,
			Health:   health,
		}, logger)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			logger.Error("server failed", zap.Error(err))
			return err
		case sig := <-stop:
			logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
