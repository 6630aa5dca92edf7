package refdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreUniverseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stores.yaml")
	stores := []Store{
		{StoreID: "STR-MUM-01", City: "Mumbai", State: "Maharashtra"},
		{StoreID: "STR-DEL-01", City: "Delhi", State: "Delhi"},
	}

	if err := SaveStores(path, stores); err != nil {
		t.Fatalf("SaveStores failed: %v", err)
	}

	got, err := LoadStores(path)
	if err != nil {
		t.Fatalf("LoadStores failed: %v", err)
	}
	if len(got) != len(stores) {
		t.Fatalf("Expected %d stores, got %d", len(stores), len(got))
	}
	for i := range stores {
		if got[i] != stores[i] {
			t.Errorf("Store %d differs: expected %+v, got %+v", i, stores[i], got[i])
		}
	}
}

func TestLoadStoresErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadStores(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("stores: []\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := LoadStores(empty); err == nil {
		t.Error("Expected error for empty store universe")
	}

	malformed := filepath.Join(dir, "malformed.yaml")
	if err := os.WriteFile(malformed, []byte("stores: [\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := LoadStores(malformed); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestCustomerMasterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.yaml")
	master := &CustomerMaster{
		Customers: []Customer{
			{CustomerID: "CUST-0001", Name: "Arjun Rao", City: "Bangalore", State: "Karnataka"},
			{CustomerID: "CUST-0002", Name: "Meera Kulkarni", City: "Pune", State: "Maharashtra"},
		},
		Changes: []ChangeEvent{
			{
				CustomerID: "CUST-0002",
				OldCity:    "Pune",
				OldState:   "Maharashtra",
				NewCity:    "Jaipur",
				NewState:   "Rajasthan",
				ChangeDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	if err := SaveCustomerMaster(path, master); err != nil {
		t.Fatalf("SaveCustomerMaster failed: %v", err)
	}

	got, err := LoadCustomerMaster(path)
	if err != nil {
		t.Fatalf("LoadCustomerMaster failed: %v", err)
	}
	if len(got.Customers) != 2 || len(got.Changes) != 1 {
		t.Fatalf("Expected 2 customers and 1 change, got %d and %d",
			len(got.Customers), len(got.Changes))
	}
	ch := got.Changes[0]
	if ch.CustomerID != "CUST-0002" || ch.NewCity != "Jaipur" || ch.NewState != "Rajasthan" {
		t.Errorf("Change round trip lost fields: %+v", ch)
	}
	if !ch.ChangeDate.Equal(master.Changes[0].ChangeDate) {
		t.Errorf("Expected change_date %v, got %v", master.Changes[0].ChangeDate, ch.ChangeDate)
	}
}

func TestLoadCustomerMasterRejectsDuplicateChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.yaml")
	master := &CustomerMaster{
		Customers: []Customer{
			{CustomerID: "CUST-0001", Name: "Arjun Rao", City: "Bangalore", State: "Karnataka"},
		},
		Changes: []ChangeEvent{
			{CustomerID: "CUST-0001", OldCity: "Bangalore", NewCity: "Pune"},
			{CustomerID: "CUST-0001", OldCity: "Pune", NewCity: "Delhi"},
		},
	}
	if err := SaveCustomerMaster(path, master); err != nil {
		t.Fatalf("SaveCustomerMaster failed: %v", err)
	}

	if _, err := LoadCustomerMaster(path); err == nil {
		t.Error("Expected error for a customer with two change events")
	}
}

func TestLoadCustomerMasterRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.yaml")
	if err := os.WriteFile(path, []byte("customers: []\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := LoadCustomerMaster(path); err == nil {
		t.Error("Expected error for empty customer master")
	}
}
