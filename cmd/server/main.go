// Package main provides the entry point for the cfb-edge API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/cfb-edge/internal/api"
	"github.com/yourusername/cfb-edge/internal/config"
	"github.com/yourusername/cfb-edge/internal/datasource"
	"github.com/yourusername/cfb-edge/internal/engine"
	"github.com/yourusername/cfb-edge/internal/health"
	"github.com/yourusername/cfb-edge/internal/logger"
	"github.com/yourusername/cfb-edge/internal/metrics"
	"github.com/yourusername/cfb-edge/internal/scheduler"
	"github.com/yourusername/cfb-edge/internal/validation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "cfb-edge-server",
	Short: "College football spread prediction and betting edge API",
	Long:  `Serves the cfb_spread_model_v2 prediction pipeline over HTTP, together with pass-through endpoints for the CFBD, Massey, and Open-Meteo data providers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return fmt.Errorf("failed to set up service: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("cfb-edge starting")

	return nil
}

func runServer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.InitRegistry()

	httpClient := buildHTTPClient()
	defer func() {
		if err := httpClient.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close HTTP client")
		}
	}()

	cache := buildCache()
	providers, checks, masseyClient := buildProviders(httpClient, cache)

	model := engine.New()
	apiServer := api.NewServer(cfg, appLog, model, validation.NewRangeValidator(), providers)

	opsServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Metrics.Port),
		MetricsPath: cfg.Metrics.Path,
		Metrics:     metrics.Handler(),
		Logger:      appLog,
		Checks:      checks,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled && masseyClient != nil {
		sched = scheduler.NewScheduler(masseyClient, appLog)
		if err := sched.ScheduleRatingsRefresh(cfg.Scheduler.RatingsRefreshCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule ratings refresh")
		}
		sched.Start()
		appLog.WithField("cron", cfg.Scheduler.RatingsRefreshCron).Info("Ratings refresh scheduled")
	}

	errChan := make(chan error, 2)
	go func() {
		errChan <- apiServer.Start()
	}()
	if cfg.Metrics.Enabled {
		go func() {
			errChan <- opsServer.Start(ctx)
		}()
	}
	opsServer.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			appLog.WithError(err).Error("Server failed")
		}
	}

	opsServer.SetReady(false)
	if sched != nil {
		sched.Stop()
	}
	if err := apiServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("API server shutdown failed")
	}
	if cfg.Metrics.Enabled {
		if err := opsServer.Shutdown(); err != nil {
			appLog.WithError(err).Error("Ops server shutdown failed")
		}
	}
	appLog.Info("cfb-edge stopped")
}

func buildHTTPClient() *datasource.Client {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.ProviderTimeout()
	httpCfg.MaxRetries = cfg.Providers.HTTP.MaxRetries
	httpCfg.RateLimit = cfg.Providers.HTTP.RateLimitPerSecond
	return datasource.NewClient(httpCfg, appLog)
}

func buildCache() datasource.Cache {
	if cfg.Providers.Cache.Enabled {
		return datasource.NewMemoryCache(cfg.CacheTTL())
	}
	return datasource.NoopCache{}
}

// buildProviders wires the enabled data sources. Disabled providers stay nil
// and their endpoints answer 503.
func buildProviders(httpClient *datasource.Client, cache datasource.Cache) (api.Providers, map[string]health.Pinger, *datasource.MasseyClient) {
	var providers api.Providers
	checks := make(map[string]health.Pinger)
	var massey *datasource.MasseyClient

	if cfg.Providers.CFBD.Enabled {
		cfbd := datasource.NewCFBDClient(cfg.Providers.CFBD.BaseURL, cfg.Providers.CFBD.APIKey, httpClient, cache, appLog)
		providers.Team = cfbd
		providers.Lines = cfbd
		providers.Matchup = cfbd
		checks["cfbd"] = cfbd
		appLog.Info("CFBD provider enabled")
	}

	if cfg.Providers.Massey.Enabled {
		massey = datasource.NewMasseyClient(cfg.Providers.Massey.URL, httpClient, cache, appLog)
		providers.Ratings = massey
		checks["massey"] = massey
		appLog.Info("Massey ratings provider enabled")
	}

	if cfg.Providers.Weather.Enabled {
		weather := datasource.NewOpenMeteoClient(cfg.Providers.Weather.BaseURL, httpClient, cache, appLog)
		providers.Weather = weather
		checks["weather"] = weather
		appLog.Info("Open-Meteo weather provider enabled")
	}

	return providers, checks, massey
}
