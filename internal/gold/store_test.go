package gold

import (
	"testing"

	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

func TestBuildDimStore(t *testing.T) {
	stores := []refdata.Store{
		{StoreID: "STR-MUM-01", City: "Mumbai", State: "Maharashtra"},
		{StoreID: "STR-DEL-01", City: "Delhi", State: "Delhi"},
		{StoreID: "STR-GOA-01", City: "Panaji", State: "Goa"},
	}

	rows := BuildDimStore(stores)

	if len(rows) != len(stores)+1 {
		t.Fatalf("Expected %d rows (stores + web), got %d", len(stores)+1, len(rows))
	}

	wantRegions := []string{"West", "North", "Other"}
	for i, want := range wantRegions {
		if rows[i].StoreSK != int32(i+1) {
			t.Errorf("Expected key %d, got %d", i+1, rows[i].StoreSK)
		}
		if rows[i].Region != want {
			t.Errorf("Expected region '%s' for %s, got '%s'", want, rows[i].StoreID, rows[i].Region)
		}
	}

	web := rows[len(rows)-1]
	if web.StoreID != model.WebStoreID {
		t.Errorf("Expected last row '%s', got '%s'", model.WebStoreID, web.StoreID)
	}
	if web.StoreSK != int32(len(rows)) {
		t.Errorf("Expected web store key %d, got %d", len(rows), web.StoreSK)
	}
	if web.City != OnlineRegion || web.State != OnlineRegion || web.Region != OnlineRegion {
		t.Errorf("Expected Online city/state/region, got %s/%s/%s", web.City, web.State, web.Region)
	}
}

func TestRegionFor(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Maharashtra", "West"},
		{"Gujarat", "West"},
		{"Rajasthan", "West"},
		{"Delhi", "North"},
		{"Uttar Pradesh", "North"},
		{"Karnataka", "South"},
		{"Tamil Nadu", "South"},
		{"Telangana", "South"},
		{"West Bengal", "East"},
		{"Online", "Online"},
		{"Goa", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		if got := RegionFor(tt.state); got != tt.want {
			t.Errorf("RegionFor(%q): expected '%s', got '%s'", tt.state, tt.want, got)
		}
	}
}
