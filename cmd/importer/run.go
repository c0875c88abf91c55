package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/itjobhub/importer/internal/filter"
	"github.com/itjobhub/importer/internal/pipeline"
	"github.com/itjobhub/importer/internal/report"
	"github.com/itjobhub/importer/internal/scheduler"
	"github.com/itjobhub/importer/internal/store"
)

var (
	runLanguages []string
	runLimit     int
	runDays      int
	runDryRun    bool
	runEvery     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one import across all configured sources",
	Long:  "Fetches, filters, deduplicates, enriches and stores postings for every configured language, then prints a summary.",
	RunE:  runImport,
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, rootCmd} {
		cmd.Flags().StringSliceVar(&runLanguages, "languages", nil, "languages to import (default: from config)")
		cmd.Flags().IntVar(&runLimit, "limit", -1, "max newly stored jobs per language, 0 for unlimited (default: from config)")
		cmd.Flags().IntVar(&runDays, "days", -1, "lookback window in days, 0 for today only (default: from config)")
		cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "run the full pipeline but store nothing")
		cmd.Flags().DurationVar(&runEvery, "every", 0, "repeat the import on this interval instead of exiting")
	}
	rootCmd.AddCommand(runCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flags override the file.
	if len(runLanguages) > 0 {
		cfg.Languages = runLanguages
	}
	if runLimit >= 0 {
		cfg.Limit = runLimit
	}
	if runDays >= 0 {
		cfg.Days = runDays
	}

	logger.Info("config loaded",
		"languages", cfg.Languages,
		"limit", cfg.Limit,
		"days", cfg.Days,
		"sources", len(cfg.Sources),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	if runDryRun {
		logger.Info("dry-run mode enabled, nothing will be stored")
		st = store.NewNopStore()
	} else {
		st, err = openStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
	}
	defer st.Close(context.Background())

	httpClient := &http.Client{Timeout: 30 * time.Second}
	sources := buildSources(cfg, httpClient, logger)
	if len(sources) == 0 {
		return fmt.Errorf("no usable sources configured")
	}

	runner := pipeline.NewRunner(
		sources,
		st,
		filter.NewKeywordFilter(cfg.Keywords),
		buildEnricher(cfg, logger),
		pipeline.Options{Languages: cfg.Languages, Limit: cfg.Limit, Days: cfg.Days},
		logger,
	)

	if runEvery > 0 {
		sched := scheduler.New(runner, runEvery, logger)
		sched.Report = func(summary string) { fmt.Println(summary) }
		return sched.Run(ctx)
	}

	stats, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("import run: %w", err)
	}

	fmt.Println(report.Render(stats))
	return nil
}
