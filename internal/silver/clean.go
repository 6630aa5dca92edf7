//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package silver cleans the raw Bronze sales feeds and merges them into
// the unified_sales table the Gold build consumes. Row-level failures are
// quarantined, never silently dropped: every rejected row lands in the
// rejected_rows table with its reason.
package silver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/internal/model"
)

// Rejection reasons recorded in the quarantine table.
const (
	ReasonNegativePrice = "negative_unit_price"
	ReasonBadQuantity   = "quantity_below_1"
	ReasonFutureDate    = "future_date"
	ReasonInvalidDate   = "invalid_date"
)

// Cleaner transforms Bronze POS sales and web orders into Silver.
type Cleaner struct {
	layout lake.Layout

	// now bounds the future-date rejection rule; tests pin it.
	now time.Time
}

// NewCleaner creates a cleaner over the given lake layout.
func NewCleaner(layout lake.Layout) *Cleaner {
	return &Cleaner{layout: layout, now: time.Now()}
}

// Result summarizes one cleaning run.
type Result struct {
	POSClean int
	WebClean int
	Unified  int
	Rejected int
	DupesPOS int
	DupesWeb int
}

// Run loads both Bronze feeds, applies the cleaning rules, merges the
// survivors into unified_sales ordered by transaction date with a dense
// sale_id, and persists the quarantine table alongside. Missing Bronze
// input is fatal.
func (c *Cleaner) Run(ctx context.Context) (*Result, error) {
	pos, err := lake.ReadTable[model.POSSale](c.layout.BronzePath(model.POSSale{}.TableName()))
	if err != nil {
		return nil, fmt.Errorf("failed to load POS sales: %w", err)
	}
	web, err := lake.ReadTable[model.WebOrder](c.layout.BronzePath(model.WebOrder{}.TableName()))
	if err != nil {
		return nil, fmt.Errorf("failed to load web orders: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	var unified []model.SaleRecord
	var rejected []model.RejectedRecord

	posClean, posRejected, posDupes := c.cleanPOS(pos)
	unified = append(unified, posClean...)
	rejected = append(rejected, posRejected...)
	res.POSClean = len(posClean)
	res.DupesPOS = posDupes
	logging.Info().
		Int("raw", len(pos)).
		Int("clean", len(posClean)).
		Int("duplicates", posDupes).
		Int("rejected", len(posRejected)).
		Msg("Cleaned POS sales")

	webClean, webRejected, webDupes := c.cleanWeb(web)
	unified = append(unified, webClean...)
	rejected = append(rejected, webRejected...)
	res.WebClean = len(webClean)
	res.DupesWeb = webDupes
	logging.Info().
		Int("raw", len(web)).
		Int("clean", len(webClean)).
		Int("duplicates", webDupes).
		Int("rejected", len(webRejected)).
		Msg("Cleaned web orders")

	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].TransactionDate.Before(unified[j].TransactionDate)
	})
	for i := range unified {
		unified[i].SaleID = int64(i + 1)
	}
	res.Unified = len(unified)
	res.Rejected = len(rejected)

	if err := lake.WriteTable(c.layout.SilverPath(model.SaleRecord{}.TableName()), unified); err != nil {
		return nil, fmt.Errorf("failed to persist unified sales: %w", err)
	}
	if err := lake.WriteTable(c.layout.SilverPath(model.RejectedRecord{}.TableName()), rejected); err != nil {
		return nil, fmt.Errorf("failed to persist quarantine: %w", err)
	}

	logging.Info().
		Int("unified", res.Unified).
		Int("rejected", res.Rejected).
		Msg("Bronze to Silver complete")
	return res, nil
}

// dedupeKey is the comparable projection of a Bronze row used for exact
// duplicate detection; pointer fields are flattened to their values.
type dedupeKey struct {
	txn      string
	date     time.Time
	store    string
	customer string
	product  string
	quantity int32
	price    float64
}

func (c *Cleaner) cleanPOS(rows []model.POSSale) ([]model.SaleRecord, []model.RejectedRecord, int) {
	seen := make(map[dedupeKey]bool, len(rows))
	clean := make([]model.SaleRecord, 0, len(rows))
	var rejected []model.RejectedRecord
	dupes := 0

	for _, r := range rows {
		key := dedupeKey{
			txn:      r.InvoiceNo,
			date:     r.InvoiceDate,
			store:    r.StoreID,
			customer: customerOrUnknown(r.CustomerID),
			product:  r.ProductID,
			quantity: r.Quantity,
			price:    r.UnitPrice,
		}
		if seen[key] {
			dupes++
			continue
		}
		seen[key] = true

		if reason := c.rejectReason(r.InvoiceDate, r.Quantity, r.UnitPrice); reason != "" {
			rejected = append(rejected, model.RejectedRecord{
				TransactionID:   r.InvoiceNo,
				TransactionDate: r.InvoiceDate,
				StoreID:         r.StoreID,
				CustomerID:      customerOrUnknown(r.CustomerID),
				ProductID:       r.ProductID,
				Quantity:        r.Quantity,
				UnitPrice:       r.UnitPrice,
				Source:          model.POSSale{}.TableName(),
				RejectionReason: reason,
			})
			continue
		}

		clean = append(clean, model.SaleRecord{
			TransactionID:   r.InvoiceNo,
			TransactionDate: r.InvoiceDate,
			StoreID:         r.StoreID,
			City:            r.StoreCity,
			CustomerID:      customerOrUnknown(r.CustomerID),
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			Category:        r.Category,
			Quantity:        r.Quantity,
			UnitPrice:       r.UnitPrice,
			TotalAmount:     recomputeTotal(r.Quantity, r.UnitPrice),
			Channel:         model.ChannelPOS,
		})
	}
	return clean, rejected, dupes
}

func (c *Cleaner) cleanWeb(rows []model.WebOrder) ([]model.SaleRecord, []model.RejectedRecord, int) {
	seen := make(map[dedupeKey]bool, len(rows))
	clean := make([]model.SaleRecord, 0, len(rows))
	var rejected []model.RejectedRecord
	dupes := 0

	for _, r := range rows {
		key := dedupeKey{
			txn:      r.OrderID,
			date:     r.OrderDate,
			customer: customerOrUnknown(r.CustomerID),
			product:  r.ProductID,
			quantity: r.Quantity,
			price:    r.UnitPrice,
		}
		if seen[key] {
			dupes++
			continue
		}
		seen[key] = true

		if reason := c.rejectReason(r.OrderDate, r.Quantity, r.UnitPrice); reason != "" {
			rejected = append(rejected, model.RejectedRecord{
				TransactionID:   r.OrderID,
				TransactionDate: r.OrderDate,
				StoreID:         model.WebStoreID,
				CustomerID:      customerOrUnknown(r.CustomerID),
				ProductID:       r.ProductID,
				Quantity:        r.Quantity,
				UnitPrice:       r.UnitPrice,
				Source:          model.WebOrder{}.TableName(),
				RejectionReason: reason,
			})
			continue
		}

		clean = append(clean, model.SaleRecord{
			TransactionID:   r.OrderID,
			TransactionDate: r.OrderDate,
			StoreID:         model.WebStoreID,
			City:            r.CustomerCity,
			CustomerID:      customerOrUnknown(r.CustomerID),
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			Category:        r.Category,
			Quantity:        r.Quantity,
			UnitPrice:       r.UnitPrice,
			TotalAmount:     recomputeTotal(r.Quantity, r.UnitPrice),
			Channel:         model.ChannelWeb,
		})
	}
	return clean, rejected, dupes
}

func (c *Cleaner) rejectReason(date time.Time, quantity int32, unitPrice float64) string {
	switch {
	case unitPrice < 0:
		return ReasonNegativePrice
	case quantity < 1:
		return ReasonBadQuantity
	case date.IsZero():
		return ReasonInvalidDate
	case date.After(c.now):
		return ReasonFutureDate
	}
	return ""
}

func customerOrUnknown(id *string) string {
	if id == nil || *id == "" {
		return model.UnknownCustomerID
	}
	return *id
}

func recomputeTotal(quantity int32, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}
