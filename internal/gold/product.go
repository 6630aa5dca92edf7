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
	"sort"

	"github.com/retailpulse/goldflow/internal/model"
)

// BuildDimProduct extracts the distinct (product_id, product_name,
// category) combinations observed in the sales input, ordered by natural
// product id (then name and category so the order is fully determined),
// with dense surrogate keys assigned from 1 in that order.
//
// A natural id that appears with more than one name or category is an
// upstream inconsistency; each distinct combination passes through as its
// own dimension row rather than being rejected here.
func BuildDimProduct(sales []model.SaleRecord) []model.DimProduct {
	type productKey struct {
		id, name, category string
	}

	seen := make(map[productKey]bool)
	rows := make([]model.DimProduct, 0, 256)
	for _, s := range sales {
		k := productKey{s.ProductID, s.ProductName, s.Category}
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, model.DimProduct{
			ProductID:   k.id,
			ProductName: k.name,
			Category:    k.category,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].Category < rows[j].Category
	})

	for i := range rows {
		rows[i].ProductSK = int32(i + 1)
	}
	return rows
}
