package gold

import (
	"testing"
	"time"

	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

var (
	scdStart  = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	scdCutoff = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func scdFixture() ([]refdata.Customer, []refdata.ChangeEvent) {
	customers := []refdata.Customer{
		{CustomerID: "CUST-0007", Name: "Meera Kulkarni", City: "Pune", State: "Maharashtra"},
		{CustomerID: "CUST-0001", Name: "Arjun Rao", City: "Bangalore", State: "Karnataka"},
		{CustomerID: "CUST-0003", Name: "Divya Nair", City: "Chennai", State: "Tamil Nadu"},
	}
	changes := []refdata.ChangeEvent{
		{
			CustomerID: "CUST-0007",
			OldCity:    "Pune",
			OldState:   "Maharashtra",
			NewCity:    "Jaipur",
			NewState:   "Rajasthan",
			ChangeDate: scdCutoff,
		},
	}
	return customers, changes
}

func versionsOf(dim []model.DimCustomer, customerID string) []model.DimCustomer {
	var out []model.DimCustomer
	for _, v := range dim {
		if v.CustomerID == customerID {
			out = append(out, v)
		}
	}
	return out
}

func TestBuildDimCustomerVersions(t *testing.T) {
	customers, changes := scdFixture()
	dim := BuildDimCustomer(customers, changes, scdStart)

	// 2 unchanged customers + 2 versions of the changed one.
	if len(dim) != 4 {
		t.Fatalf("Expected 4 dimension rows, got %d", len(dim))
	}

	// Keys are assigned in natural-id order regardless of input order.
	for i, v := range dim {
		if v.CustomerSK != int32(i+1) {
			t.Fatalf("Expected dense keys 1..N, got key %d at index %d", v.CustomerSK, i)
		}
	}
	if dim[0].CustomerID != "CUST-0001" {
		t.Errorf("Expected CUST-0001 first, got %s", dim[0].CustomerID)
	}

	moved := versionsOf(dim, "CUST-0007")
	if len(moved) != 2 {
		t.Fatalf("Expected 2 versions for changed customer, got %d", len(moved))
	}

	v1, v2 := moved[0], moved[1]
	if v1.Version != 1 || v2.Version != 2 {
		t.Fatalf("Expected versions 1 and 2, got %d and %d", v1.Version, v2.Version)
	}

	if v1.City != "Pune" || v1.State != "Maharashtra" {
		t.Errorf("Expected version 1 to keep old attributes, got %s/%s", v1.City, v1.State)
	}
	if v1.IsCurrent {
		t.Error("Expected version 1 of changed customer to not be current")
	}
	if !v1.ValidFrom.Equal(scdStart) {
		t.Errorf("Expected version 1 valid_from %v, got %v", scdStart, v1.ValidFrom)
	}
	if v1.ValidTo == nil {
		t.Fatal("Expected version 1 valid_to set")
	}
	wantEnd := scdCutoff.AddDate(0, 0, -1)
	if !v1.ValidTo.Equal(wantEnd) {
		t.Errorf("Expected version 1 valid_to %v (day before change), got %v", wantEnd, *v1.ValidTo)
	}

	if v2.City != "Jaipur" || v2.State != "Rajasthan" {
		t.Errorf("Expected version 2 to carry new attributes, got %s/%s", v2.City, v2.State)
	}
	if !v2.IsCurrent {
		t.Error("Expected version 2 to be current")
	}
	if !v2.ValidFrom.Equal(scdCutoff) {
		t.Errorf("Expected version 2 valid_from %v, got %v", scdCutoff, v2.ValidFrom)
	}
	if v2.ValidTo != nil {
		t.Errorf("Expected open-ended version 2, got valid_to %v", *v2.ValidTo)
	}

	// No gap: version 2 starts the day after version 1 ends.
	if !v1.ValidTo.AddDate(0, 0, 1).Equal(v2.ValidFrom) {
		t.Errorf("Gap between versions: v1 ends %v, v2 starts %v", *v1.ValidTo, v2.ValidFrom)
	}

	for _, id := range []string{"CUST-0001", "CUST-0003"} {
		vs := versionsOf(dim, id)
		if len(vs) != 1 {
			t.Fatalf("Expected 1 version for unchanged %s, got %d", id, len(vs))
		}
		v := vs[0]
		if !v.IsCurrent || v.ValidTo != nil || v.Version != 1 {
			t.Errorf("Expected single open-ended current version for %s, got current=%v valid_to=%v version=%d",
				id, v.IsCurrent, v.ValidTo, v.Version)
		}
	}
}

func TestBuildDimCustomerOrderIndependentKeys(t *testing.T) {
	customers, changes := scdFixture()

	reversed := make([]refdata.Customer, len(customers))
	for i, c := range customers {
		reversed[len(customers)-1-i] = c
	}

	a := BuildDimCustomer(customers, changes, scdStart)
	b := BuildDimCustomer(reversed, changes, scdStart)

	if len(a) != len(b) {
		t.Fatalf("Row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CustomerSK != b[i].CustomerSK || a[i].CustomerID != b[i].CustomerID {
			t.Errorf("Row %d differs across input orders: %s/%d vs %s/%d",
				i, a[i].CustomerID, a[i].CustomerSK, b[i].CustomerID, b[i].CustomerSK)
		}
	}
}

func TestResolveTemporal(t *testing.T) {
	customers, changes := scdFixture()
	dim := BuildDimCustomer(customers, changes, scdStart)
	r := NewResolver(dim)

	moved := versionsOf(dim, "CUST-0007")
	v1Key, v2Key := moved[0].CustomerSK, moved[1].CustomerSK

	tests := []struct {
		name       string
		customerID string
		date       time.Time
		want       int32
	}{
		{
			name:       "before the move resolves to version 1",
			customerID: "CUST-0007",
			date:       time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
			want:       v1Key,
		},
		{
			name:       "day before the move resolves to version 1",
			customerID: "CUST-0007",
			date:       time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC),
			want:       v1Key,
		},
		{
			name:       "change date itself resolves to version 2",
			customerID: "CUST-0007",
			date:       scdCutoff,
			want:       v2Key,
		},
		{
			name:       "after the move resolves to version 2",
			customerID: "CUST-0007",
			date:       time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC),
			want:       v2Key,
		},
		{
			name:       "unchanged customer resolves any date to its only version",
			customerID: "CUST-0001",
			date:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			want:       versionsOf(dim, "CUST-0001")[0].CustomerSK,
		},
		{
			name:       "unknown sentinel resolves to -1",
			customerID: model.UnknownCustomerID,
			date:       scdCutoff,
			want:       model.SentinelKey,
		},
		{
			name:       "empty id resolves to -1",
			customerID: "",
			date:       scdCutoff,
			want:       model.SentinelKey,
		},
		{
			name:       "id absent from dimension resolves to -1",
			customerID: "CUST-9999",
			date:       scdCutoff,
			want:       model.SentinelKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.customerID, tt.date); got != tt.want {
				t.Errorf("Expected key %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolveKeyChangesExactlyOnce(t *testing.T) {
	customers, changes := scdFixture()
	dim := BuildDimCustomer(customers, changes, scdStart)
	r := NewResolver(dim)

	// Walking day by day across the boundary, the resolved key must switch
	// exactly once, at the change date.
	prev := r.Resolve("CUST-0007", scdCutoff.AddDate(0, 0, -10))
	switches := 0
	for d := -9; d <= 10; d++ {
		key := r.Resolve("CUST-0007", scdCutoff.AddDate(0, 0, d))
		if key != prev {
			switches++
			if !scdCutoff.AddDate(0, 0, d).Equal(scdCutoff) {
				t.Errorf("Key switched on %v, expected only on %v",
					scdCutoff.AddDate(0, 0, d), scdCutoff)
			}
		}
		prev = key
	}
	if switches != 1 {
		t.Errorf("Expected exactly 1 key switch across the boundary, got %d", switches)
	}
}

func TestResolveFallsBackToCurrent(t *testing.T) {
	customers, changes := scdFixture()
	dim := BuildDimCustomer(customers, changes, scdStart)
	r := NewResolver(dim)

	moved := versionsOf(dim, "CUST-0007")
	v2Key := moved[1].CustomerSK

	// A date before every interval misses all of them; a known customer
	// still resolves, to the current version.
	got := r.Resolve("CUST-0007", scdStart.AddDate(0, 0, -30))
	if got != v2Key {
		t.Errorf("Expected fallback to current version key %d, got %d", v2Key, got)
	}
}
