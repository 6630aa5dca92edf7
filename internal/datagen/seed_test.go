package datagen

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retailpulse/goldflow/internal/lake"
	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

func testSeedConfig() SeedConfig {
	cfg := DefaultSeedConfig()
	cfg.Customers = 50
	cfg.POSSales = 200
	cfg.WebOrders = 100
	cfg.Seed = 42
	return cfg
}

func runSeeder(t *testing.T, cfg SeedConfig) (lake.Layout, string, string) {
	t.Helper()

	dir := t.TempDir()
	layout := lake.NewLayout(dir)
	storesPath := filepath.Join(dir, "stores.yaml")
	customersPath := filepath.Join(dir, "customers.yaml")

	if err := NewSeeder(cfg).Run(context.Background(), layout, storesPath, customersPath); err != nil {
		t.Fatalf("Seeder.Run failed: %v", err)
	}
	return layout, storesPath, customersPath
}

func TestSeederOutputs(t *testing.T) {
	cfg := testSeedConfig()
	layout, storesPath, customersPath := runSeeder(t, cfg)

	stores, err := refdata.LoadStores(storesPath)
	if err != nil {
		t.Fatalf("LoadStores failed: %v", err)
	}
	if len(stores) != len(cityStates)*storesPerCity {
		t.Errorf("Expected %d stores, got %d", len(cityStates)*storesPerCity, len(stores))
	}
	for _, s := range stores {
		if !strings.HasPrefix(s.StoreID, "STR-") {
			t.Errorf("Unexpected store id format: %s", s.StoreID)
		}
		if cityStates[s.City] != s.State {
			t.Errorf("Store %s has city/state mismatch: %s/%s", s.StoreID, s.City, s.State)
		}
	}

	master, err := refdata.LoadCustomerMaster(customersPath)
	if err != nil {
		t.Fatalf("LoadCustomerMaster failed: %v", err)
	}
	if len(master.Customers) != cfg.Customers {
		t.Errorf("Expected %d customers, got %d", cfg.Customers, len(master.Customers))
	}
	if master.Customers[0].CustomerID != "CUST-0001" {
		t.Errorf("Unexpected first customer id: %s", master.Customers[0].CustomerID)
	}

	for _, ch := range master.Changes {
		if ch.NewCity == ch.OldCity {
			t.Errorf("Change for %s moves to the same city %s", ch.CustomerID, ch.NewCity)
		}
		if !ch.ChangeDate.Equal(cfg.ChangeDate) {
			t.Errorf("Expected change_date %v, got %v", cfg.ChangeDate, ch.ChangeDate)
		}
		if cityStates[ch.NewCity] != ch.NewState {
			t.Errorf("Change for %s has city/state mismatch: %s/%s",
				ch.CustomerID, ch.NewCity, ch.NewState)
		}
	}

	pos, err := lake.ReadTable[model.POSSale](layout.BronzePath("pos_sales"))
	if err != nil {
		t.Fatalf("Failed to read POS sales: %v", err)
	}
	if len(pos) != cfg.POSSales {
		t.Errorf("Expected %d POS rows, got %d", cfg.POSSales, len(pos))
	}
	for _, r := range pos {
		if r.InvoiceDate.Before(cfg.StartDate) || r.InvoiceDate.After(cfg.EndDate.AddDate(0, 0, 1)) {
			t.Fatalf("POS date %v outside configured range", r.InvoiceDate)
		}
	}

	web, err := lake.ReadTable[model.WebOrder](layout.BronzePath("web_orders"))
	if err != nil {
		t.Fatalf("Failed to read web orders: %v", err)
	}
	if len(web) != cfg.WebOrders {
		t.Errorf("Expected %d web rows, got %d", cfg.WebOrders, len(web))
	}
}

func TestSeederReproducible(t *testing.T) {
	cfg := testSeedConfig()

	layoutA, _, customersA := runSeeder(t, cfg)
	layoutB, _, customersB := runSeeder(t, cfg)

	masterA, err := refdata.LoadCustomerMaster(customersA)
	if err != nil {
		t.Fatalf("LoadCustomerMaster failed: %v", err)
	}
	masterB, err := refdata.LoadCustomerMaster(customersB)
	if err != nil {
		t.Fatalf("LoadCustomerMaster failed: %v", err)
	}

	if len(masterA.Customers) != len(masterB.Customers) {
		t.Fatalf("Customer counts differ: %d vs %d", len(masterA.Customers), len(masterB.Customers))
	}
	for i := range masterA.Customers {
		if masterA.Customers[i] != masterB.Customers[i] {
			t.Fatalf("Customer %d differs across seeded runs", i)
		}
	}

	posA, err := lake.ReadTable[model.POSSale](layoutA.BronzePath("pos_sales"))
	if err != nil {
		t.Fatalf("Failed to read POS sales: %v", err)
	}
	posB, err := lake.ReadTable[model.POSSale](layoutB.BronzePath("pos_sales"))
	if err != nil {
		t.Fatalf("Failed to read POS sales: %v", err)
	}
	if len(posA) != len(posB) {
		t.Fatalf("POS counts differ: %d vs %d", len(posA), len(posB))
	}
	for i := range posA {
		if posA[i].InvoiceNo != posB[i].InvoiceNo ||
			!posA[i].InvoiceDate.Equal(posB[i].InvoiceDate) ||
			posA[i].ProductID != posB[i].ProductID ||
			posA[i].UnitPrice != posB[i].UnitPrice {
			t.Fatalf("POS row %d differs across seeded runs", i)
		}
	}
}

func TestSeederCleanWhenDirtyRatioZero(t *testing.T) {
	cfg := testSeedConfig()
	cfg.DirtyRatio = 0
	layout, _, _ := runSeeder(t, cfg)

	pos, err := lake.ReadTable[model.POSSale](layout.BronzePath("pos_sales"))
	if err != nil {
		t.Fatalf("Failed to read POS sales: %v", err)
	}
	for _, r := range pos {
		if r.Quantity < 1 {
			t.Fatalf("Expected only valid quantities, got %d on %s", r.Quantity, r.InvoiceNo)
		}
		if r.UnitPrice < 0 {
			t.Fatalf("Expected only valid prices, got %v on %s", r.UnitPrice, r.InvoiceNo)
		}
	}
}

func TestSeederUnknownRatioZero(t *testing.T) {
	cfg := testSeedConfig()
	cfg.UnknownRatio = 0
	layout, _, _ := runSeeder(t, cfg)

	pos, err := lake.ReadTable[model.POSSale](layout.BronzePath("pos_sales"))
	if err != nil {
		t.Fatalf("Failed to read POS sales: %v", err)
	}
	for _, r := range pos {
		if r.CustomerID == nil || *r.CustomerID == "" {
			t.Fatalf("Expected every row to carry a customer id, %s has none", r.InvoiceNo)
		}
	}
}

func TestBuildCatalog(t *testing.T) {
	items := buildCatalog(NewFakerWithSeed(7))

	wantCount := 0
	for _, spec := range categorySpecs {
		wantCount += len(spec.products)
	}
	if len(items) != wantCount {
		t.Fatalf("Expected %d catalog items, got %d", wantCount, len(items))
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ProductID] {
			t.Errorf("Duplicate product id %s", item.ProductID)
		}
		seen[item.ProductID] = true
		if item.BasePrice <= 0 {
			t.Errorf("Non-positive base price for %s", item.ProductID)
		}
	}
	if items[0].ProductID != "P0001" {
		t.Errorf("Expected first product id P0001, got %s", items[0].ProductID)
	}
}

func TestCityAsOf(t *testing.T) {
	cfg := testSeedConfig()

	cust := refdata.Customer{CustomerID: "CUST-0001", City: "Pune", State: "Maharashtra"}
	changes := map[string]refdata.ChangeEvent{
		"CUST-0001": {CustomerID: "CUST-0001", OldCity: "Pune", NewCity: "Jaipur", ChangeDate: cfg.ChangeDate},
	}

	before := cfg.ChangeDate.AddDate(0, 0, -1)
	if got := cityAsOf(cust, changes, before); got != "Pune" {
		t.Errorf("Expected old city before the move, got %s", got)
	}
	if got := cityAsOf(cust, changes, cfg.ChangeDate); got != "Jaipur" {
		t.Errorf("Expected new city on the change date, got %s", got)
	}
	if got := cityAsOf(cust, changes, cfg.ChangeDate.AddDate(0, 1, 0)); got != "Jaipur" {
		t.Errorf("Expected new city after the move, got %s", got)
	}
	unchanged := refdata.Customer{CustomerID: "CUST-0002", City: "Delhi", State: "Delhi"}
	if got := cityAsOf(unchanged, changes, cfg.ChangeDate); got != "Delhi" {
		t.Errorf("Expected baseline city for a customer with no move, got %s", got)
	}
}
