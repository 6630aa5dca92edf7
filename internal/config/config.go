//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Portions copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for goldflow.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for goldflow.
type Config struct {
	// DataDir is the root of the lakehouse directory tree
	// (bronze/, silver/, gold/ live beneath it).
	DataDir string `mapstructure:"data_dir"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Build holds configuration for the build subcommand.
	Build BuildConfig `mapstructure:"build"`

	// Publish holds configuration for the publish subcommand.
	Publish PublishConfig `mapstructure:"publish"`
}

// SeedConfig holds configuration for synthetic data generation.
type SeedConfig struct {
	// Customers is the synthetic customer-master size.
	Customers int `mapstructure:"customers"`

	// POSSales is the raw point-of-sale row count to generate.
	POSSales int `mapstructure:"pos_sales"`

	// WebOrders is the raw web-order row count to generate.
	WebOrders int `mapstructure:"web_orders"`

	// StartDate/EndDate bound the transaction range (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// ChangeDate is the cutoff for customer city moves (YYYY-MM-DD).
	ChangeDate string `mapstructure:"change_date"`

	// ChangeRatio is the share of customers given a city move.
	ChangeRatio float64 `mapstructure:"change_ratio"`

	// DirtyRatio is the share of rows given a cleaning-rule violation.
	DirtyRatio float64 `mapstructure:"dirty_ratio"`

	// UnknownRatio is the share of rows with a missing customer id.
	UnknownRatio float64 `mapstructure:"unknown_ratio"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// BuildConfig holds configuration for the Silver-to-Gold build.
type BuildConfig struct {
	// Workers bounds fact-resolution parallelism (0 = all CPUs).
	Workers int `mapstructure:"workers"`

	// StoresFile overrides the store universe path.
	StoresFile string `mapstructure:"stores_file"`

	// CustomersFile overrides the customer master path.
	CustomersFile string `mapstructure:"customers_file"`
}

// PublishConfig holds configuration for warehouse publication.
type PublishConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// DropExisting drops the published schema before recreating it.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "data",
		LogLevel: "info",
		Seed: SeedConfig{
			Customers:    4000,
			POSSales:     60000,
			WebOrders:    20000,
			StartDate:    "2023-01-01",
			EndDate:      "2025-01-31",
			ChangeDate:   "2024-07-01",
			ChangeRatio:  0.10,
			DirtyRatio:   0.005,
			UnknownRatio: 0.01,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./goldflow.yaml
// 3. ~/.config/goldflow/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("goldflow")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "goldflow"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// StoresPath resolves the store universe file, defaulting to
// <data_dir>/refdata/stores.yaml.
func (c *Config) StoresPath() string {
	if c.Build.StoresFile != "" {
		return c.Build.StoresFile
	}
	return filepath.Join(c.DataDir, "refdata", "stores.yaml")
}

// CustomersPath resolves the customer master file, defaulting to
// <data_dir>/refdata/customers.yaml.
func (c *Config) CustomersPath() string {
	if c.Build.CustomersFile != "" {
		return c.Build.CustomersFile
	}
	return filepath.Join(c.DataDir, "refdata", "customers.yaml")
}

// Validate checks configuration required by every command.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Customers < 1 {
		return fmt.Errorf("seed customer count must be at least 1")
	}
	if c.Seed.POSSales < 0 || c.Seed.WebOrders < 0 {
		return fmt.Errorf("seed row counts must be non-negative")
	}
	if c.Seed.ChangeRatio < 0 || c.Seed.ChangeRatio > 1 {
		return fmt.Errorf("change_ratio must be between 0 and 1")
	}
	if c.Seed.DirtyRatio < 0 || c.Seed.DirtyRatio > 1 {
		return fmt.Errorf("dirty_ratio must be between 0 and 1")
	}
	if c.Seed.UnknownRatio < 0 || c.Seed.UnknownRatio > 1 {
		return fmt.Errorf("unknown_ratio must be between 0 and 1")
	}
	start, end, change, err := c.Seed.Dates()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date must not precede start_date")
	}
	if change.Before(start) || change.After(end) {
		return fmt.Errorf("change_date must fall within the date range")
	}
	return nil
}

// ValidateBuild checks configuration required for the build command.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	return nil
}

// ValidatePublish checks configuration required for the publish command.
func (c *Config) ValidatePublish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Publish.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// Dates parses the seed date bounds.
func (s SeedConfig) Dates() (start, end, change time.Time, err error) {
	start, err = time.Parse(time.DateOnly, s.StartDate)
	if err != nil {
		return start, end, change, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err = time.Parse(time.DateOnly, s.EndDate)
	if err != nil {
		return start, end, change, fmt.Errorf("invalid end_date: %w", err)
	}
	change, err = time.Parse(time.DateOnly, s.ChangeDate)
	if err != nil {
		return start, end, change, fmt.Errorf("invalid change_date: %w", err)
	}
	return start, end, change, nil
}
