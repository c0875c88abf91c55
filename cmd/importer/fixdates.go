package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itjobhub/importer/internal/maintenance"
	"github.com/itjobhub/importer/internal/store"
)

var fixdatesCmd = &cobra.Command{
	Use:   "fixdates",
	Short: "Convert string published_at values to proper dates",
	Long:  "Repairs jobs whose published_at was stored as a string by older importer versions. Safe to run repeatedly.",
	RunE:  runFixDates,
}

func init() {
	rootCmd.AddCommand(fixdatesCmd)
}

func runFixDates(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(ctx)

	mongoStore, ok := st.(*store.MongoStore)
	if !ok {
		return fmt.Errorf("fixdates only applies to the MongoDB store")
	}

	result, err := maintenance.FixDates(ctx, mongoStore.Jobs(), logger)
	if err != nil {
		return fmt.Errorf("fix dates: %w", err)
	}

	fmt.Printf("scanned %d, fixed %d, unparsable %d\n", result.Scanned, result.Fixed, result.Unparsable)
	return nil
}
