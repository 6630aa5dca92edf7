//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

import "time"

// SentinelKey is the reserved foreign-key value meaning "no matching
// dimension row". Fact rows are never dropped over a failed lookup; they
// carry this value instead so joins stay explicit and filterable.
const SentinelKey int32 = -1

// DimDate is one calendar day in the date spine. The spine covers the
// observed transaction range with no gaps, so time-series rollups never
// silently lose empty days.
type DimDate struct {
	DateKey         int32     `parquet:"date_key"`
	FullDate        time.Time `parquet:"full_date,timestamp(millisecond)"`
	Year            int32     `parquet:"year"`
	Quarter         int32     `parquet:"quarter"`
	Month           int32     `parquet:"month"`
	MonthName       string    `parquet:"month_name"`
	WeekOfYear      int32     `parquet:"week_of_year"`
	DayOfMonth      int32     `parquet:"day_of_month"`
	DayOfWeek       int32     `parquet:"day_of_week"` // Monday = 0
	DayName         string    `parquet:"day_name"`
	IsWeekend       bool      `parquet:"is_weekend"`
	IsFestiveSeason bool      `parquet:"is_festive_season"`
	YearMonth       string    `parquet:"year_month"`
}

// TableName returns the canonical table name.
func (DimDate) TableName() string { return "dim_date" }

// DimProduct is one distinct (product_id, name, category) combination
// observed in the unified sales input.
type DimProduct struct {
	ProductSK   int32  `parquet:"product_sk"`
	ProductID   string `parquet:"product_id"`
	ProductName string `parquet:"product_name"`
	Category    string `parquet:"category"`
}

// TableName returns the canonical table name.
func (DimProduct) TableName() string { return "dim_product" }

// DimStore is one physical store from the store universe, plus the single
// synthetic WEB-ONLINE row that all online sales resolve to.
type DimStore struct {
	StoreSK int32  `parquet:"store_sk"`
	StoreID string `parquet:"store_id"`
	City    string `parquet:"city"`
	State   string `parquet:"state"`
	Region  string `parquet:"region"`
}

// TableName returns the canonical table name.
func (DimStore) TableName() string { return "dim_store" }

// DimCustomer is one SCD Type 2 version of a customer. A customer whose
// tracked attributes (city, state) never changed has exactly one row; a
// customer with a recorded change has one row per version. ValidTo is nil
// on the open-ended current version.
type DimCustomer struct {
	CustomerSK   int32      `parquet:"customer_sk"`
	CustomerID   string     `parquet:"customer_id"`
	CustomerName string     `parquet:"customer_name"`
	City         string     `parquet:"city"`
	State        string     `parquet:"state"`
	ValidFrom    time.Time  `parquet:"valid_from,timestamp(millisecond)"`
	ValidTo      *time.Time `parquet:"valid_to,optional"`
	IsCurrent    bool       `parquet:"is_current"`
	Version      int32      `parquet:"version"`
}

// TableName returns the canonical table name.
func (DimCustomer) TableName() string { return "dim_customer" }

// FactSale is one row per cleaned sale record with all four dimension keys
// resolved. Every key is either a real dimension key or SentinelKey, never
// null. CustomerSK references the version valid on the transaction date.
type FactSale struct {
	SaleID          int64     `parquet:"sale_id"`
	TransactionID   string    `parquet:"transaction_id"`
	TransactionDate time.Time `parquet:"transaction_date,timestamp(millisecond)"`
	DateKey         int32     `parquet:"date_key"`
	ProductSK       int32     `parquet:"product_sk"`
	StoreSK         int32     `parquet:"store_sk"`
	CustomerSK      int32     `parquet:"customer_sk"`
	Quantity        int32     `parquet:"quantity"`
	UnitPrice       float64   `parquet:"unit_price"`
	TotalAmount     float64   `parquet:"total_amount"`
	Channel         string    `parquet:"channel"`
	Year            int32     `parquet:"year"`  // denormalized for partition pruning
	Month           int32     `parquet:"month"` // denormalized for partition pruning
}

// TableName returns the canonical table name.
func (FactSale) TableName() string { return "fact_sales" }
