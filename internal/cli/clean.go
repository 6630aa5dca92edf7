package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/internal/silver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the Bronze feeds into the Silver unified_sales table",
	Long: `Apply the cleaning rules to the raw POS and web-order feeds:
exact duplicates are dropped; rows with quantity below 1, negative unit
prices, or future dates are quarantined into rejected_rows; missing
customer ids become the UNKNOWN sentinel; total amounts are recomputed.
The survivors are merged into unified_sales ordered by transaction date.

Example:
  goldflow clean --data-dir ./data`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cleaner := silver.NewCleaner(lake.NewLayout(cfg.DataDir))
	res, err := cleaner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}

	logging.Info().
		Int("pos_clean", res.POSClean).
		Int("web_clean", res.WebClean).
		Int("unified", res.Unified).
		Int("rejected", res.Rejected).
		Msg("Clean complete")
	return nil
}
