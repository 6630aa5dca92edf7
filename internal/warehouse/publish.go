//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/pkg/version"
)

// Publisher bulk-loads the Gold parquet snapshot into PostgreSQL. Each
// table is truncated and reloaded with COPY; dimensions load before the
// fact table so referential joins are valid the moment fact_sales lands.
type Publisher struct {
	layout lake.Layout
}

// NewPublisher creates a publisher over the given lake layout.
func NewPublisher(layout lake.Layout) *Publisher {
	return &Publisher{layout: layout}
}

// Publish loads all five Gold tables and records build metadata. It
// returns per-table row counts in load order.
func (p *Publisher) Publish(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	counts := make(map[string]int64, 5)

	if err := publishTable(ctx, pool, p.layout, counts,
		[]string{"date_key", "full_date", "year", "quarter", "month", "month_name",
			"week_of_year", "day_of_month", "day_of_week", "day_name",
			"is_weekend", "is_festive_season", "year_month"},
		func(d model.DimDate) []any {
			return []any{d.DateKey, d.FullDate, d.Year, d.Quarter, d.Month, d.MonthName,
				d.WeekOfYear, d.DayOfMonth, d.DayOfWeek, d.DayName,
				d.IsWeekend, d.IsFestiveSeason, d.YearMonth}
		}); err != nil {
		return counts, err
	}

	if err := publishTable(ctx, pool, p.layout, counts,
		[]string{"product_sk", "product_id", "product_name", "category"},
		func(d model.DimProduct) []any {
			return []any{d.ProductSK, d.ProductID, d.ProductName, d.Category}
		}); err != nil {
		return counts, err
	}

	if err := publishTable(ctx, pool, p.layout, counts,
		[]string{"store_sk", "store_id", "city", "state", "region"},
		func(d model.DimStore) []any {
			return []any{d.StoreSK, d.StoreID, d.City, d.State, d.Region}
		}); err != nil {
		return counts, err
	}

	if err := publishTable(ctx, pool, p.layout, counts,
		[]string{"customer_sk", "customer_id", "customer_name", "city", "state",
			"valid_from", "valid_to", "is_current", "version"},
		func(d model.DimCustomer) []any {
			return []any{d.CustomerSK, d.CustomerID, d.CustomerName, d.City, d.State,
				d.ValidFrom, d.ValidTo, d.IsCurrent, d.Version}
		}); err != nil {
		return counts, err
	}

	if err := publishTable(ctx, pool, p.layout, counts,
		[]string{"sale_id", "transaction_id", "transaction_date", "date_key",
			"product_sk", "store_sk", "customer_sk", "quantity", "unit_price",
			"total_amount", "channel", "year", "month"},
		func(f model.FactSale) []any {
			return []any{f.SaleID, f.TransactionID, f.TransactionDate, f.DateKey,
				f.ProductSK, f.StoreSK, f.CustomerSK, f.Quantity, f.UnitPrice,
				f.TotalAmount, f.Channel, f.Year, f.Month}
		}); err != nil {
		return counts, err
	}

	if err := saveBuildMetadata(ctx, pool, counts); err != nil {
		return counts, err
	}
	return counts, nil
}

// namedRow ties a row type to its table name for generic publication.
type namedRow interface {
	TableName() string
}

func publishTable[T namedRow](ctx context.Context, pool *pgxpool.Pool, layout lake.Layout,
	counts map[string]int64, columns []string, values func(T) []any) error {

	var zero T
	name := zero.TableName()

	rows, err := lake.ReadTable[T](layout.GoldPath(name))
	if err != nil {
		return fmt.Errorf("failed to load gold table %s: %w", name, err)
	}

	if _, err := pool.Exec(ctx, "TRUNCATE "+name); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", name, err)
	}

	n, err := pool.CopyFrom(ctx, pgx.Identifier{name}, columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return values(rows[i]), nil
		}))
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", name, err)
	}

	counts[name] = n
	logging.Info().Str("table", name).Int64("rows", n).Msg("Published table")
	return nil
}

const createMetadataSQL = `
CREATE TABLE IF NOT EXISTS goldflow_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// saveBuildMetadata records what this publication loaded, so the
// dashboard layer can show snapshot provenance.
func saveBuildMetadata(ctx context.Context, pool *pgxpool.Pool, counts map[string]int64) error {
	if _, err := pool.Exec(ctx, createMetadataSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"version":      version.Short(),
		"published_at": time.Now().UTC().Format(time.RFC3339),
	}
	for table, n := range counts {
		metadata["rows_"+table] = fmt.Sprintf("%d", n)
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO goldflow_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}
	return nil
}
