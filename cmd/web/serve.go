package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/config"
	"office-asset-web/internal/database"
	"office-asset-web/internal/fetch"
	"office-asset-web/internal/handler"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/metrics"
	"office-asset-web/internal/middleware"
	"office-asset-web/internal/router"
	"office-asset-web/internal/secret"
	"office-asset-web/internal/session"
	"office-asset-web/internal/view"
)

// sweepInterval is how often expired sessions are purged.
const sweepInterval = 15 * time.Minute

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.envFiles...)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	checks := map[string]handler.HealthCheck{}

	var sessions session.Store
	if cfg.UsesDatabase() {
		db, err := database.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		sessions = session.NewPostgresStore(db)
		checks["sessions"] = db.PingContext
	} else {
		logger.Warn("sessions are kept in memory and end when the console restarts")
		sessions = session.NewMemoryStore()
	}

	var vault secret.Vault
	switch cfg.Secrets.Store {
	case "redis":
		redisVault, client := secret.NewRedisVaultFromURL(cfg.Secrets.RedisURL, cfg.Secrets.TTL)
		defer client.Close()
		checks["secrets"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		vault = redisVault
	default:
		vault = secret.NewMemoryVault(cfg.Secrets.TTL)
	}

	m := metrics.New()
	api := apiclient.New(apiclient.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RetryAttempts:  cfg.API.RetryAttempts,
		RetryDelay:     cfg.API.RetryDelay,
		MaxPayloadSize: cfg.API.MaxPayloadSize,
	}, logger, apiclient.WithObserver(m))

	renderer, err := view.New(logger)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	h := handler.New(handler.Dependencies{
		Auth:        api,
		Assets:      api,
		Users:       api,
		Assignments: api,
		Returning:   api,
		Sessions:    sessions,
		Vault:       vault,
		Fetch:       fetch.NewGroup(),
		View:        renderer,
		Logger:      logger,
		Observer:    m,
		Options: handler.Options{
			PageSize:     cfg.PageSize,
			CookieName:   cfg.Session.CookieName,
			SessionTTL:   cfg.Session.Duration,
			SecureCookie: cfg.Session.Secure,
		},
	})

	r := router.NewRouter(h, cfg, router.Options{
		Sessions:   sessions,
		Health:     checks,
		Instrument: m.Middleware,
	})

	loggingMW := middleware.NewLoggingMiddleware(logger)
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        loggingMW.LogRequests(loggingMW.Recover(r)),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, m.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions, logger)

	errCh := make(chan error, 2)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":             cfg.Port,
			"rate_limit_rps":   cfg.Security.RateLimitRPS,
			"rate_limit_burst": cfg.Security.RateLimitBurst,
			"cors":             cfg.Security.EnableCORS,
			"request_timeout":  cfg.Security.RequestTimeout,
			"secrets_store":    cfg.Secrets.Store,
			"session_store":    cfg.Session.Store,
		}).Info("starting web console")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web server: %w", err)
		}
	}()
	if metricsServer != nil {
		go func() {
			logger.WithField("port", cfg.Metrics.Port).Info("starting metrics server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("web console is shutting down")
	case runErr = <-errCh:
		logger.WithError(runErr).Error("server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("web console forced to shut down")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("metrics server forced to shut down")
		}
	}
	if runErr == nil {
		logger.Info("web console exited gracefully")
	}
	return runErr
}

func sweepSessions(ctx context.Context, store session.Store, logger *logrus.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.DeleteExpired(ctx, now)
			if err != nil {
				logger.WithError(err).Warn("failed to sweep expired sessions")
				continue
			}
			if n > 0 {
				logger.WithField("deleted", n).Debug("swept expired sessions")
			}
		}
	}
}
