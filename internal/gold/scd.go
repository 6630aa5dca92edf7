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
	"time"

	"github.com/retailpulse/goldflow/internal/model"
	"github.com/retailpulse/goldflow/internal/refdata"
)

// BuildDimCustomer constructs the SCD Type 2 customer dimension.
//
// A customer with a recorded change event gets two versions split at the
// event's change date: version 1 carries the old city/state and closes the
// day before the change, version 2 carries the new attributes, is
// open-ended (nil valid_to), and is the current version. A customer with
// no recorded change gets a single open-ended current version. Every
// version's validity starts no later than globalStart, so the union of a
// customer's intervals covers the whole observable range with no gaps.
//
// Surrogate keys are a single monotonic counter across all customers and
// versions. Customers are ordered by natural id before assignment, so the
// keys produced by one run do not depend on the order of the input list.
// They are still run-scoped: a rebuild from different inputs reassigns
// them, and downstream consumers must not cache them across runs.
func BuildDimCustomer(customers []refdata.Customer, changes []refdata.ChangeEvent, globalStart time.Time) []model.DimCustomer {
	changeByID := make(map[string]refdata.ChangeEvent, len(changes))
	for _, ch := range changes {
		changeByID[ch.CustomerID] = ch
	}

	ordered := make([]refdata.Customer, len(customers))
	copy(ordered, customers)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CustomerID < ordered[j].CustomerID
	})

	start := DateOf(globalStart)
	rows := make([]model.DimCustomer, 0, len(ordered)+len(changes))

	sk := int32(1)
	for _, c := range ordered {
		ch, changed := changeByID[c.CustomerID]
		if !changed {
			rows = append(rows, model.DimCustomer{
				CustomerSK:   sk,
				CustomerID:   c.CustomerID,
				CustomerName: c.Name,
				City:         c.City,
				State:        c.State,
				ValidFrom:    start,
				IsCurrent:    true,
				Version:      1,
			})
			sk++
			continue
		}

		cutoff := DateOf(ch.ChangeDate)
		v1End := cutoff.AddDate(0, 0, -1)

		rows = append(rows, model.DimCustomer{
			CustomerSK:   sk,
			CustomerID:   c.CustomerID,
			CustomerName: c.Name,
			City:         ch.OldCity,
			State:        ch.OldState,
			ValidFrom:    start,
			ValidTo:      &v1End,
			IsCurrent:    false,
			Version:      1,
		})
		sk++

		rows = append(rows, model.DimCustomer{
			CustomerSK:   sk,
			CustomerID:   c.CustomerID,
			CustomerName: c.Name,
			City:         ch.NewCity,
			State:        ch.NewState,
			ValidFrom:    cutoff,
			IsCurrent:    true,
			Version:      2,
		})
		sk++
	}
	return rows
}

// Resolver answers temporal surrogate-key lookups against a fully built
// customer dimension. Versions are pre-indexed by natural customer id, so
// each lookup touches only that customer's version list; the resolver is
// read-only after construction and safe for concurrent use.
type Resolver struct {
	versions map[string][]model.DimCustomer
}

// NewResolver indexes a customer dimension for temporal lookups.
func NewResolver(dim []model.DimCustomer) *Resolver {
	idx := make(map[string][]model.DimCustomer)
	for _, v := range dim {
		idx[v.CustomerID] = append(idx[v.CustomerID], v)
	}
	for id := range idx {
		vs := idx[id]
		sort.Slice(vs, func(i, j int) bool { return vs[i].Version < vs[j].Version })
	}
	return &Resolver{versions: idx}
}

// Resolve returns the surrogate key of the customer version whose validity
// interval contains eventDate. The unknown-customer sentinel and ids absent
// from the dimension resolve to SentinelKey. For a known customer whose
// intervals somehow exclude the date, the current version is returned,
// falling back to the first version; a known customer always resolves to a
// real key.
func (r *Resolver) Resolve(customerID string, eventDate time.Time) int32 {
	if customerID == "" || customerID == model.UnknownCustomerID {
		return model.SentinelKey
	}

	vs := r.versions[customerID]
	if len(vs) == 0 {
		return model.SentinelKey
	}

	day := DateOf(eventDate)
	for _, v := range vs {
		if day.Before(DateOf(v.ValidFrom)) {
			continue
		}
		if v.ValidTo != nil && day.After(DateOf(*v.ValidTo)) {
			continue
		}
		return v.CustomerSK
	}

	// Interval miss for a known customer: boundary bug or malformed
	// input. Attribute to the current version rather than failing.
	for _, v := range vs {
		if v.IsCurrent {
			return v.CustomerSK
		}
	}
	return vs[0].CustomerSK
}
