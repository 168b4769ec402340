package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lingogate/lingogate/internal/admission"
	"github.com/lingogate/lingogate/internal/config"
	"github.com/lingogate/lingogate/internal/observability"
	"github.com/lingogate/lingogate/internal/server"
	"github.com/lingogate/lingogate/internal/server/handlers"
	"github.com/lingogate/lingogate/internal/translate"
	"github.com/lingogate/lingogate/internal/translate/libre"
)

var (
	serverPort int
	serverHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the HTTP gateway with graceful shutdown support.

Ctrl+C (SIGINT) or SIGTERM triggers a graceful shutdown: in-flight
requests finish within the configured shutdown timeout, then logs are
flushed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serverHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		observability.InitServerLogger("lingogate", cfg.Logging.Level)
		logger := observability.ServerLogger
		defer observability.Sync()

		logger.Info("Initializing gateway",
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("rate_limit", cfg.RateLimit.Enabled),
			zap.Bool("throttling", cfg.Throttling.Enabled))

		limiter, err := admission.NewRateLimiter(admission.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			Enabled:           cfg.RateLimit.Enabled,
		})
		if err != nil {
			return err
		}

		throttler, err := admission.NewThrottler(admission.ThrottlerConfig{
			MaxConcurrent: cfg.Throttling.ConcurrentRequests,
			Enabled:       cfg.Throttling.Enabled,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		var registry *prometheus.Registry
		var admissionMetrics *admission.Metrics
		if cfg.Metrics.Enabled {
			registry = prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			admissionMetrics = admission.NewMetrics(registry)
		}

		pipeline := admission.NewPipeline(limiter, throttler, admissionMetrics)

		catalog, err := translate.NewCatalog(cfg.Translation.AvailablePackages)
		if err != nil {
			return err
		}

		var engine translate.Engine
		if cfg.Translation.EngineURL != "" {
			client := libre.NewClient(cfg.Translation.EngineURL, cfg.Translation.EngineAPIKey)
			client.Timeout = cfg.Translation.EngineTimeout
			engine = client
			logger.Info("Using translation engine", zap.String("url", cfg.Translation.EngineURL))
		} else {
			engine = &translate.EchoEngine{}
			logger.Warn("No translation engine configured, echoing input text")
		}

		translator := translate.NewService(engine, catalog, logger)

		handlers.SetVersionInfo(versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)

		srv := server.New(server.Options{
			Config:     cfg,
			Pipeline:   pipeline,
			Translator: translator,
			Registry:   registry,
			Logger:     logger,
		})

		errChan := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			return err
		case sig := <-stop:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("HTTP server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "0.0.0.0", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")
}
