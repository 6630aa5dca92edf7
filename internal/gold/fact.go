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
	"runtime"
	"sync"
	"time"

	"github.com/retailpulse/goldflow/internal/model"
)

// factIndex holds the prebuilt lookup state for fact construction. It is
// immutable once built, so worker goroutines share it without locking.
type factIndex struct {
	dateKeys    map[time.Time]int32
	productKeys map[string]int32
	storeKeys   map[string]int32
	customers   *Resolver
}

func newFactIndex(dates []model.DimDate, products []model.DimProduct, stores []model.DimStore, customers *Resolver) *factIndex {
	idx := &factIndex{
		dateKeys:    make(map[time.Time]int32, len(dates)),
		productKeys: make(map[string]int32, len(products)),
		storeKeys:   make(map[string]int32, len(stores)),
		customers:   customers,
	}
	for _, d := range dates {
		idx.dateKeys[DateOf(d.FullDate)] = d.DateKey
	}
	// When an inconsistent upstream id maps to several dimension rows,
	// the lowest surrogate key (first in product_id order) wins.
	for _, p := range products {
		if _, ok := idx.productKeys[p.ProductID]; !ok {
			idx.productKeys[p.ProductID] = p.ProductSK
		}
	}
	for _, s := range stores {
		idx.storeKeys[s.StoreID] = s.StoreSK
	}
	return idx
}

func (idx *factIndex) resolve(s model.SaleRecord) model.FactSale {
	day := DateOf(s.TransactionDate)

	dateKey, ok := idx.dateKeys[day]
	if !ok {
		dateKey = model.SentinelKey
	}
	productSK, ok := idx.productKeys[s.ProductID]
	if !ok {
		productSK = model.SentinelKey
	}
	storeSK, ok := idx.storeKeys[s.StoreID]
	if !ok {
		storeSK = model.SentinelKey
	}

	return model.FactSale{
		SaleID:          s.SaleID,
		TransactionID:   s.TransactionID,
		TransactionDate: s.TransactionDate,
		DateKey:         dateKey,
		ProductSK:       productSK,
		StoreSK:         storeSK,
		CustomerSK:      idx.customers.Resolve(s.CustomerID, s.TransactionDate),
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		// total_amount is carried through unchanged; recomputation is the
		// cleaning stage's responsibility.
		TotalAmount: s.TotalAmount,
		Channel:     s.Channel,
		Year:        int32(day.Year()),
		Month:       int32(day.Month()),
	}
}

// BuildFactSales resolves all four dimension keys for every cleaned sale
// record and emits one fact row per input row. Rows are never dropped: a
// failed lookup records SentinelKey on the affected column and the build
// continues, so data-quality gaps surface as -1 buckets downstream instead
// of pipeline failures.
//
// Resolution is spread across workers over disjoint slice ranges. The
// dimensions are fully built and immutable before this runs, so the
// workers share them without synchronization. workers <= 0 selects
// GOMAXPROCS.
func BuildFactSales(sales []model.SaleRecord, dates []model.DimDate, products []model.DimProduct,
	stores []model.DimStore, customers *Resolver, workers int) []model.FactSale {

	idx := newFactIndex(dates, products, stores, customers)
	facts := make([]model.FactSale, len(sales))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(sales) {
		workers = len(sales)
	}
	if workers <= 1 {
		for i, s := range sales {
			facts[i] = idx.resolve(s)
		}
		return facts
	}

	chunk := (len(sales) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(sales); lo += chunk {
		hi := min(lo+chunk, len(sales))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				facts[i] = idx.resolve(sales[i])
			}
		}(lo, hi)
	}
	wg.Wait()

	return facts
}
