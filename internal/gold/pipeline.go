//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package gold

import (
	"context"
	"fmt"
	"time"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

// Config holds the inputs of a Gold build.
type Config struct {
	// Layout locates the Silver input and Gold output tables.
	Layout lake.Layout

	// Stores is the externally supplied physical store universe.
	Stores []refdata.Store

	// Customers is the customer master baseline.
	Customers []refdata.Customer

	// Changes holds at most one recorded city change per customer.
	Changes []refdata.ChangeEvent

	// Workers bounds fact-resolution parallelism; <= 0 means GOMAXPROCS.
	Workers int
}

// TableCount reports the row count of one persisted table.
type TableCount struct {
	Table string
	Rows  int
}

// Coverage counts fact rows whose foreign keys could not be resolved and
// carry the -1 sentinel. Non-zero buckets mean degraded joins downstream,
// not a failed run.
type Coverage struct {
	UnresolvedDates     int
	UnresolvedProducts  int
	UnresolvedStores    int
	UnresolvedCustomers int
}

// Summary is the per-run report: row counts for the five Gold tables in
// persist order, foreign-key coverage, and wall time.
type Summary struct {
	Tables   []TableCount
	Coverage Coverage
	Elapsed  time.Duration
}

// Pipeline builds the Gold star schema from the Silver layer. Every run is
// a full refresh: all five tables are rebuilt and overwritten wholesale,
// with surrogate keys reassigned for the new snapshot.
type Pipeline struct {
	cfg Config
}

// NewPipeline creates a pipeline for the given inputs.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes the full Silver-to-Gold transformation: load unified sales,
// build the four dimensions, build the fact table, persist everything.
// Dimensions are persisted first and the fact table last, since it depends
// on all of them. A persistence failure aborts the run but does not roll
// back tables already written; the log records which tables succeeded so a
// retry can be scoped.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	sales, err := lake.ReadTable[model.SaleRecord](p.cfg.Layout.SilverPath(model.SaleRecord{}.TableName()))
	if err != nil {
		return nil, fmt.Errorf("failed to load unified sales: %w", err)
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("unified sales table is empty; no star schema produced")
	}
	logging.Info().Int("rows", len(sales)).Msg("Loaded unified sales")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(sales)
	dimDate := BuildDimDate(minDate, maxDate)
	logging.Info().
		Int("rows", len(dimDate)).
		Time("min_date", minDate).
		Time("max_date", maxDate).
		Msg("Built dim_date")

	dimProduct := BuildDimProduct(sales)
	logging.Info().Int("rows", len(dimProduct)).Msg("Built dim_product")

	dimStore := BuildDimStore(p.cfg.Stores)
	logging.Info().Int("rows", len(dimStore)).Msg("Built dim_store")

	dimCustomer := BuildDimCustomer(p.cfg.Customers, p.cfg.Changes, minDate)
	logging.Info().
		Int("rows", len(dimCustomer)).
		Int("customers", len(p.cfg.Customers)).
		Int("change_events", len(p.cfg.Changes)).
		Msg("Built dim_customer")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolver := NewResolver(dimCustomer)
	facts := BuildFactSales(sales, dimDate, dimProduct, dimStore, resolver, p.cfg.Workers)

	coverage := measureCoverage(facts)
	logging.Info().
		Int("rows", len(facts)).
		Int("unresolved_dates", coverage.UnresolvedDates).
		Int("unresolved_products", coverage.UnresolvedProducts).
		Int("unresolved_stores", coverage.UnresolvedStores).
		Int("unresolved_customers", coverage.UnresolvedCustomers).
		Msg("Built fact_sales")

	summary := &Summary{Coverage: coverage}

	// Fact table last: it depends on every dimension.
	if err := persist(p.cfg.Layout, dimDate, summary); err != nil {
		return nil, err
	}
	if err := persist(p.cfg.Layout, dimProduct, summary); err != nil {
		return nil, err
	}
	if err := persist(p.cfg.Layout, dimStore, summary); err != nil {
		return nil, err
	}
	if err := persist(p.cfg.Layout, dimCustomer, summary); err != nil {
		return nil, err
	}
	if err := persist(p.cfg.Layout, facts, summary); err != nil {
		return nil, err
	}

	summary.Elapsed = time.Since(start)
	logging.Info().
		Dur("elapsed", summary.Elapsed).
		Msg("Silver to Gold transformation complete")

	return summary, nil
}

// table is anything persistable as a named Gold table.
type table interface {
	TableName() string
}

func persist[T table](layout lake.Layout, rows []T, summary *Summary) error {
	var zero T
	name := zero.TableName()

	if err := lake.WriteTable(layout.GoldPath(name), rows); err != nil {
		logging.Error().
			Err(err).
			Str("table", name).
			Int("tables_written", len(summary.Tables)).
			Msg("Persist failed; previously written tables remain on disk")
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}

	summary.Tables = append(summary.Tables, TableCount{Table: name, Rows: len(rows)})
	logging.Info().Str("table", name).Int("rows", len(rows)).Msg("Persisted table")
	return nil
}

func dateRange(sales []model.SaleRecord) (time.Time, time.Time) {
	minDate := sales[0].TransactionDate
	maxDate := sales[0].TransactionDate
	for _, s := range sales[1:] {
		if s.TransactionDate.Before(minDate) {
			minDate = s.TransactionDate
		}
		if s.TransactionDate.After(maxDate) {
			maxDate = s.TransactionDate
		}
	}
	return minDate, maxDate
}

func measureCoverage(facts []model.FactSale) Coverage {
	var c Coverage
	for _, f := range facts {
		if f.DateKey == model.SentinelKey {
			c.UnresolvedDates++
		}
		if f.ProductSK == model.SentinelKey {
			c.UnresolvedProducts++
		}
		if f.StoreSK == model.SentinelKey {
			c.UnresolvedStores++
		}
		if f.CustomerSK == model.SentinelKey {
			c.UnresolvedCustomers++
		}
	}
	return c
}
