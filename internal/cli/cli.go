//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Portions copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for goldflow.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/retailpulse/goldflow/internal/config"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	dataDir  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "goldflow",
		Short: "Retail lakehouse pipeline: Bronze cleaning, Gold star schema, warehouse publication",
		Long: `goldflow runs the transformation stages of a retail analytics lakehouse.

Raw point-of-sale and web-order feeds land in the Bronze layer as parquet.
The clean stage quarantines bad rows and merges the feeds into the Silver
unified_sales table. The build stage turns Silver into the Gold star
schema: a date spine, product and store dimensions, an SCD Type 2 customer
dimension with full version history, and a fact table whose foreign keys
are resolved as of each sale's transaction date. The publish stage loads
the Gold snapshot into PostgreSQL for the dashboard layer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./goldflow.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"lakehouse data directory (default: ./data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(tablesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Describe the Gold star schema tables",
	Long: `Describe the five tables the build stage produces. Downstream
consumers join fact_sales to the dimensions on the surrogate keys; an
unresolvable key is carried as -1, never null.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Gold star schema:")
		cmd.Println()
		cmd.Println("Dimensions:")
		cmd.Println("  dim_date      - one row per calendar day across the observed range")
		cmd.Println("  dim_product   - distinct (product_id, name, category) combinations")
		cmd.Println("  dim_store     - physical store universe plus the WEB-ONLINE row")
		cmd.Println("  dim_customer  - SCD Type 2: one row per customer version, with")
		cmd.Println("                  valid_from/valid_to intervals and is_current flag")
		cmd.Println()
		cmd.Println("Facts:")
		cmd.Println("  fact_sales    - one row per cleaned sale; customer_sk references the")
		cmd.Println("                  version valid on the transaction date")
		cmd.Println()
		cmd.Println("Surrogate keys are run-scoped; a rebuild reassigns them.")
	},
}
