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

// POSSale is one raw point-of-sale line item as landed in the Bronze layer.
// Field types are already enforced by ingestion; values are not. The
// cleaning stage rejects out-of-range rows.
type POSSale struct {
	InvoiceNo   string    `parquet:"invoice_no"`
	InvoiceDate time.Time `parquet:"invoice_date,timestamp(millisecond)"`
	StoreID     string    `parquet:"store_id"`
	StoreCity   string    `parquet:"store_city"`
	CustomerID  *string   `parquet:"customer_id,optional"`
	ProductID   string    `parquet:"product_id"`
	ProductName string    `parquet:"product_name"`
	Category    string    `parquet:"category"`
	Quantity    int32     `parquet:"quantity"`
	UnitPrice   float64   `parquet:"unit_price"`
	TotalAmount float64   `parquet:"total_amount"`
}

// TableName returns the canonical table name.
func (POSSale) TableName() string { return "pos_sales" }

// WebOrder is one raw e-commerce order line as landed in the Bronze layer.
// Web orders have no physical store; the cleaning stage assigns WebStoreID.
type WebOrder struct {
	OrderID         string    `parquet:"order_id"`
	OrderDate       time.Time `parquet:"order_date,timestamp(millisecond)"`
	CustomerID      *string   `parquet:"customer_id,optional"`
	CustomerName    string    `parquet:"customer_name"`
	CustomerCity    string    `parquet:"customer_city"`
	ProductID       string    `parquet:"product_id"`
	ProductName     string    `parquet:"product_name"`
	Category        string    `parquet:"category"`
	Quantity        int32     `parquet:"quantity"`
	UnitPrice       float64   `parquet:"unit_price"`
	TotalAmount     float64   `parquet:"total_amount"`
	PaymentMethod   string    `parquet:"payment_method"`
	DeliveryAddress string    `parquet:"delivery_address"`
}

// TableName returns the canonical table name.
func (WebOrder) TableName() string { return "web_orders" }
