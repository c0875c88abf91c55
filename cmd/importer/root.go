package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/itjobhub/importer/internal/config"
	"github.com/itjobhub/importer/internal/enrich"
	"github.com/itjobhub/importer/internal/model"
	"github.com/itjobhub/importer/internal/ratelimit"
	"github.com/itjobhub/importer/internal/retry"
	"github.com/itjobhub/importer/internal/source"
	"github.com/itjobhub/importer/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Job board importer",
	Long:  "Imports job postings from external sources, enriches them and stores them in the job board database.",
	// Default to `run` so cron entries can invoke the binary directly.
	RunE: runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: IMPORTER_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > IMPORTER_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("IMPORTER_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// openStore picks the backend from the URI scheme: sqlite:// for a local
// file, anything else is treated as a MongoDB connection string.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if path, ok := strings.CutPrefix(cfg.Store.URI, "sqlite://"); ok {
		logger.Info("using sqlite store", "path", path)
		return store.NewSQLiteStore(path)
	}
	return store.NewMongoStore(ctx, cfg.Store.URI, cfg.Store.Database, logger)
}

// createSource instantiates the adapter named by the config entry, or
// (nil, false) when the entry is unknown or missing required credentials.
func createSource(sc config.SourceConfig, httpClient *http.Client, logger *slog.Logger) (model.SourceFetcher, bool) {
	switch sc.Name {
	case "adzuna":
		if sc.AppID == "" || sc.AppKey == "" {
			logger.Warn("adzuna credentials missing, skipping source")
			return nil, false
		}
		return source.NewAdzuna(sc.AppID, sc.AppKey, httpClient), true
	case "jooble":
		if sc.APIKey == "" {
			logger.Warn("jooble api key missing, skipping source")
			return nil, false
		}
		return source.NewJooble(sc.APIKey, sc.Query, httpClient), true
	case "arbeitnow":
		return source.NewArbeitnow(httpClient), true
	case "jobicy":
		return source.NewJobicy(httpClient), true
	case "remoteok":
		return source.NewRemoteOK(httpClient), true
	case "rss":
		if len(sc.Feeds) == 0 {
			logger.Warn("rss source has no feeds, skipping source")
			return nil, false
		}
		return source.NewRSS(sc.Feeds, logger), true
	default:
		logger.Warn("unknown source, skipping", "source", sc.Name)
		return nil, false
	}
}

// buildSources wires all enabled sources in config order, each wrapped with
// the retry decorator.
func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.SourceFetcher {
	var sources []model.SourceFetcher
	for _, sc := range cfg.Sources {
		if !sc.IsEnabled() {
			continue
		}
		src, ok := createSource(sc, httpClient, logger)
		if !ok {
			continue
		}
		sources = append(sources, retry.NewFetcher(src, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger))
		logger.Info("registered source", "name", src.Name())
	}
	return sources
}

// buildEnricher wires the enrichment coordinator. Either service may be
// absent; the coordinator degrades accordingly.
func buildEnricher(cfg *config.Config, logger *slog.Logger) *enrich.Coordinator {
	var categorizer enrich.Categorizer
	if cfg.AI.Enabled {
		aiClient := &http.Client{Timeout: cfg.AI.Timeout}
		provider := enrich.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, aiClient)
		categorizer = enrich.NewLLMCategorizer(provider)
		logger.Info("ai categorization enabled", "model", cfg.AI.Model)
	} else {
		logger.Info("ai categorization disabled, jobs will be stored degraded")
	}

	var geocoder enrich.Geocoder
	if cfg.Geocoder.Enabled {
		geocoder = enrich.NewGoogleGeocoder(cfg.Geocoder.APIKey, &http.Client{Timeout: 15 * time.Second})
		logger.Info("geocoding enabled")
	} else {
		logger.Info("geocoding disabled")
	}

	limiter := ratelimit.NewServiceLimiter(1, 1)
	return enrich.NewCoordinator(categorizer, geocoder, limiter, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
}
