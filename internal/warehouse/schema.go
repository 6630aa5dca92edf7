//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse publishes the Gold star schema into PostgreSQL for
// the dashboard and KPI layer to query.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Star schema DDL for the published Gold tables. Surrogate keys are
// run-scoped: every publication truncates and reloads, so no identity
// columns are used.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS dim_date (
    date_key          INTEGER PRIMARY KEY,
    full_date         DATE NOT NULL UNIQUE,
    year              INTEGER NOT NULL,
    quarter           INTEGER NOT NULL,
    month             INTEGER NOT NULL,
    month_name        VARCHAR(9) NOT NULL,
    week_of_year      INTEGER NOT NULL,
    day_of_month      INTEGER NOT NULL,
    day_of_week       INTEGER NOT NULL,
    day_name          VARCHAR(9) NOT NULL,
    is_weekend        BOOLEAN NOT NULL,
    is_festive_season BOOLEAN NOT NULL,
    year_month        CHAR(7) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_product (
    product_sk   INTEGER PRIMARY KEY,
    product_id   VARCHAR(16) NOT NULL,
    product_name VARCHAR(100) NOT NULL,
    category     VARCHAR(50) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_store (
    store_sk INTEGER PRIMARY KEY,
    store_id VARCHAR(16) NOT NULL UNIQUE,
    city     VARCHAR(60) NOT NULL,
    state    VARCHAR(60) NOT NULL,
    region   VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_customer (
    customer_sk   INTEGER PRIMARY KEY,
    customer_id   VARCHAR(16) NOT NULL,
    customer_name VARCHAR(100) NOT NULL,
    city          VARCHAR(60) NOT NULL,
    state         VARCHAR(60) NOT NULL,
    valid_from    DATE NOT NULL,
    valid_to      DATE,
    is_current    BOOLEAN NOT NULL,
    version       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_sales (
    sale_id          BIGINT PRIMARY KEY,
    transaction_id   VARCHAR(20) NOT NULL,
    transaction_date TIMESTAMP NOT NULL,
    date_key         INTEGER NOT NULL,
    product_sk       INTEGER NOT NULL,
    store_sk         INTEGER NOT NULL,
    customer_sk      INTEGER NOT NULL,
    quantity         INTEGER NOT NULL,
    unit_price       NUMERIC(12,2) NOT NULL,
    total_amount     NUMERIC(14,2) NOT NULL,
    channel          VARCHAR(8) NOT NULL,
    year             INTEGER NOT NULL,
    month            INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(date_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_sk);
CREATE INDEX IF NOT EXISTS idx_fact_sales_store ON fact_sales(store_sk);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_sk);
CREATE INDEX IF NOT EXISTS idx_fact_sales_year_month ON fact_sales(year, month);
CREATE INDEX IF NOT EXISTS idx_dim_customer_id ON dim_customer(customer_id);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_customer CASCADE;
DROP TABLE IF EXISTS dim_store CASCADE;
DROP TABLE IF EXISTS dim_product CASCADE;
DROP TABLE IF EXISTS dim_date CASCADE;
DROP TABLE IF EXISTS goldflow_metadata CASCADE;
`

// CreateSchema creates the published star schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the published star schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
