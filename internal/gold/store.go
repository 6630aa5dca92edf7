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
	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

// OnlineRegion labels the synthetic web store's city, state, and region.
const OnlineRegion = "Online"

// stateRegions maps the states of the store universe to broad reporting
// regions. States missing from the table resolve to "Other".
var stateRegions = map[string]string{
	"Maharashtra":   "West",
	"Gujarat":       "West",
	"Rajasthan":     "West",
	"Delhi":         "North",
	"Uttar Pradesh": "North",
	"Karnataka":     "South",
	"Tamil Nadu":    "South",
	"Telangana":     "South",
	"West Bengal":   "East",
	OnlineRegion:    OnlineRegion,
}

// RegionFor returns the reporting region for a state.
func RegionFor(state string) string {
	if r, ok := stateRegions[state]; ok {
		return r
	}
	return "Other"
}

// BuildDimStore assigns one surrogate key per physical store in universe
// order, then appends the single synthetic WEB-ONLINE row that every
// online sale resolves to.
func BuildDimStore(stores []refdata.Store) []model.DimStore {
	rows := make([]model.DimStore, 0, len(stores)+1)
	for i, s := range stores {
		rows = append(rows, model.DimStore{
			StoreSK: int32(i + 1),
			StoreID: s.StoreID,
			City:    s.City,
			State:   s.State,
			Region:  RegionFor(s.State),
		})
	}

	rows = append(rows, model.DimStore{
		StoreSK: int32(len(rows) + 1),
		StoreID: model.WebStoreID,
		City:    OnlineRegion,
		State:   OnlineRegion,
		Region:  OnlineRegion,
	})
	return rows
}
