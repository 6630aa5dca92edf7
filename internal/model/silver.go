//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model defines the row types for every table in the lakehouse:
// raw Bronze inputs, the cleaned Silver layer, and the Gold star schema.
// Parquet column names follow the upstream pipeline contract.
package model

import "time"

// Sales channels carried on every unified sale record.
const (
	ChannelPOS = "POS"
	ChannelWeb = "Web"
)

// UnknownCustomerID is the sentinel the cleaning stage writes for sales
// that arrived without a customer identifier.
const UnknownCustomerID = "UNKNOWN"

// WebStoreID is the synthetic store identifier assigned to online sales.
const WebStoreID = "WEB-ONLINE"

// SaleRecord is one cleaned line item in silver/unified_sales. It is the
// sole transactional input to the Gold build and is immutable once the
// cleaning stage has produced it.
type SaleRecord struct {
	SaleID          int64     `parquet:"sale_id"`
	TransactionID   string    `parquet:"transaction_id"`
	TransactionDate time.Time `parquet:"transaction_date,timestamp(millisecond)"`
	StoreID         string    `parquet:"store_id"`
	City            string    `parquet:"city"`
	CustomerID      string    `parquet:"customer_id"`
	ProductID       string    `parquet:"product_id"`
	ProductName     string    `parquet:"product_name"`
	Category        string    `parquet:"category"`
	Quantity        int32     `parquet:"quantity"`
	UnitPrice       float64   `parquet:"unit_price"`
	TotalAmount     float64   `parquet:"total_amount"`
	Channel         string    `parquet:"channel"`
}

// TableName returns the canonical table name.
func (SaleRecord) TableName() string { return "unified_sales" }

// RejectedRecord is a quarantined Bronze row that failed a cleaning rule.
// The original row is kept verbatim in the shared sale columns so that
// upstream issues can be replayed and diagnosed.
type RejectedRecord struct {
	TransactionID   string    `parquet:"transaction_id"`
	TransactionDate time.Time `parquet:"transaction_date,timestamp(millisecond)"`
	StoreID         string    `parquet:"store_id"`
	CustomerID      string    `parquet:"customer_id"`
	ProductID       string    `parquet:"product_id"`
	Quantity        int32     `parquet:"quantity"`
	UnitPrice       float64   `parquet:"unit_price"`
	Source          string    `parquet:"source"`
	RejectionReason string    `parquet:"rejection_reason"`
}

// TableName returns the canonical table name.
func (RejectedRecord) TableName() string { return "rejected_rows" }
