//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/logging"
	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

// SeedConfig controls synthetic data generation.
type SeedConfig struct {
	Customers    int
	POSSales     int
	WebOrders    int
	StartDate    time.Time
	EndDate      time.Time
	ChangeDate   time.Time
	ChangeRatio  float64 // share of customers with a mid-period city move
	DirtyRatio   float64 // share of rows given a cleaning-rule violation
	UnknownRatio float64 // share of rows with a missing customer id
	Seed         uint64  // 0 = random
}

// DefaultSeedConfig returns the canonical demo universe.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Customers:    4000,
		POSSales:     60000,
		WebOrders:    20000,
		StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		ChangeDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		ChangeRatio:  0.10,
		DirtyRatio:   0.005,
		UnknownRatio: 0.01,
	}
}

// Seeder writes a complete synthetic Bronze layer plus the reference
// files (store universe, customer master) the Gold build needs.
type Seeder struct {
	cfg   SeedConfig
	faker *Faker
}

// NewSeeder creates a seeder. A non-zero cfg.Seed makes the output
// reproducible.
func NewSeeder(cfg SeedConfig) *Seeder {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}
	return &Seeder{cfg: cfg, faker: f}
}

// Run generates and persists the Bronze feeds and reference files.
// storesPath and customersPath receive the YAML reference data.
func (s *Seeder) Run(ctx context.Context, layout lake.Layout, storesPath, customersPath string) error {
	stores := buildStores()
	catalog := buildCatalog(s.faker)
	master := s.buildCustomerMaster()

	if err := refdata.SaveStores(storesPath, stores); err != nil {
		return err
	}
	if err := refdata.SaveCustomerMaster(customersPath, master); err != nil {
		return err
	}
	logging.Info().
		Int("stores", len(stores)).
		Int("customers", len(master.Customers)).
		Int("change_events", len(master.Changes)).
		Msg("Wrote reference data")

	if err := ctx.Err(); err != nil {
		return err
	}

	pos := s.generatePOS(stores, catalog, master)
	if err := lake.WriteTable(layout.BronzePath(model.POSSale{}.TableName()), pos); err != nil {
		return fmt.Errorf("failed to write POS sales: %w", err)
	}
	logging.Info().Int("rows", len(pos)).Msg("Wrote Bronze POS sales")

	web := s.generateWeb(catalog, master)
	if err := lake.WriteTable(layout.BronzePath(model.WebOrder{}.TableName()), web); err != nil {
		return fmt.Errorf("failed to write web orders: %w", err)
	}
	logging.Info().Int("rows", len(web)).Msg("Wrote Bronze web orders")

	return nil
}

// buildCustomerMaster assigns each customer a home city and gives
// ChangeRatio of them a single move to a different city at ChangeDate.
func (s *Seeder) buildCustomerMaster() *refdata.CustomerMaster {
	cityList := cities()
	m := &refdata.CustomerMaster{}

	for i := 1; i <= s.cfg.Customers; i++ {
		city := Choose(s.faker, cityList)
		cust := refdata.Customer{
			CustomerID: fmt.Sprintf("CUST-%04d", i),
			Name:       s.faker.Name(),
			City:       city,
			State:      cityStates[city],
		}
		m.Customers = append(m.Customers, cust)

		if s.faker.Chance(s.cfg.ChangeRatio) {
			newCity := city
			for newCity == city {
				newCity = Choose(s.faker, cityList)
			}
			m.Changes = append(m.Changes, refdata.ChangeEvent{
				CustomerID: cust.CustomerID,
				OldCity:    city,
				OldState:   cityStates[city],
				NewCity:    newCity,
				NewState:   cityStates[newCity],
				ChangeDate: s.cfg.ChangeDate,
			})
		}
	}
	return m
}

// saleDate draws a transaction timestamp with weekend and festive-season
// weighting, matching real retail seasonality.
func (s *Seeder) saleDate() time.Time {
	for {
		d := s.faker.DateRange(s.cfg.StartDate, s.cfg.EndDate)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			if s.faker.Chance(0.35) {
				return d
			}
		}
		switch d.Month() {
		case time.October, time.November, time.December, time.January:
			if s.faker.Chance(0.30) {
				return d
			}
		}
		if s.faker.Chance(0.20) {
			return d
		}
	}
}

func (s *Seeder) generatePOS(stores []refdata.Store, catalog []catalogItem, master *refdata.CustomerMaster) []model.POSSale {
	rows := make([]model.POSSale, 0, s.cfg.POSSales)
	for i := 1; i <= s.cfg.POSSales; i++ {
		store := Choose(s.faker, stores)
		item := Choose(s.faker, catalog)
		qty := int32(s.faker.Int(1, 5))
		price := round2(item.BasePrice * s.faker.Float64(0.9, 1.1))

		var customerID *string
		if !s.faker.Chance(s.cfg.UnknownRatio) {
			cust := Choose(s.faker, master.Customers)
			customerID = &cust.CustomerID
		}

		row := model.POSSale{
			InvoiceNo:   fmt.Sprintf("POS-%07d", i),
			InvoiceDate: s.saleDate(),
			StoreID:     store.StoreID,
			StoreCity:   store.City,
			CustomerID:  customerID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    qty,
			UnitPrice:   price,
			TotalAmount: round2(float64(qty) * price),
		}
		s.dirty(&row.Quantity, &row.UnitPrice)
		rows = append(rows, row)
	}
	return rows
}

func (s *Seeder) generateWeb(catalog []catalogItem, master *refdata.CustomerMaster) []model.WebOrder {
	payments := []string{"UPI", "Credit Card", "Debit Card", "Net Banking", "COD"}

	changes := make(map[string]refdata.ChangeEvent, len(master.Changes))
	for _, ch := range master.Changes {
		changes[ch.CustomerID] = ch
	}

	rows := make([]model.WebOrder, 0, s.cfg.WebOrders)
	for i := 1; i <= s.cfg.WebOrders; i++ {
		cust := Choose(s.faker, master.Customers)
		item := Choose(s.faker, catalog)
		qty := int32(s.faker.Int(1, 4))
		price := round2(item.BasePrice * s.faker.Float64(0.85, 1.05))
		orderDate := s.saleDate()

		var customerID *string
		if !s.faker.Chance(s.cfg.UnknownRatio) {
			customerID = &cust.CustomerID
		}

		row := model.WebOrder{
			OrderID:         fmt.Sprintf("WEB-%06d", i),
			OrderDate:       orderDate,
			CustomerID:      customerID,
			CustomerName:    cust.Name,
			CustomerCity:    cityAsOf(cust, changes, orderDate),
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Category:        item.Category,
			Quantity:        qty,
			UnitPrice:       price,
			TotalAmount:     round2(float64(qty) * price),
			PaymentMethod:   Choose(s.faker, payments),
			DeliveryAddress: s.faker.StreetAddress(),
		}
		s.dirty(&row.Quantity, &row.UnitPrice)
		rows = append(rows, row)
	}
	return rows
}

// cityAsOf returns the customer's city on the given date, honoring any
// recorded move so the raw feed is temporally consistent.
func cityAsOf(cust refdata.Customer, changes map[string]refdata.ChangeEvent, date time.Time) string {
	if ch, ok := changes[cust.CustomerID]; ok && !date.Before(ch.ChangeDate) {
		return ch.NewCity
	}
	return cust.City
}

// dirty corrupts a small share of rows so the cleaning stage has real
// violations to quarantine.
func (s *Seeder) dirty(quantity *int32, price *float64) {
	if !s.faker.Chance(s.cfg.DirtyRatio) {
		return
	}
	if s.faker.Chance(0.5) {
		*quantity = 0
	} else {
		*price = -*price
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
