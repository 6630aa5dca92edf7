//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package refdata loads the static reference inputs the Gold build joins
// against: the physical store universe and the customer master with its
// recorded city-change events. Both are YAML files maintained outside the
// sales data flow.
package refdata

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Store is one physical store in the externally supplied store universe.
type Store struct {
	StoreID string `yaml:"store_id"`
	City    string `yaml:"city"`
	State   string `yaml:"state"`
}

// Customer is one entry in the customer master: the customer's baseline
// attributes before any recorded change.
type Customer struct {
	CustomerID string `yaml:"customer_id"`
	Name       string `yaml:"name"`
	City       string `yaml:"city"`
	State      string `yaml:"state"`
}

// ChangeEvent records a customer's single mid-period city move. The
// customer master models at most one change per customer.
type ChangeEvent struct {
	CustomerID string    `yaml:"customer_id"`
	OldCity    string    `yaml:"old_city"`
	OldState   string    `yaml:"old_state"`
	NewCity    string    `yaml:"new_city"`
	NewState   string    `yaml:"new_state"`
	ChangeDate time.Time `yaml:"change_date"`
}

// StoreUniverse is the on-disk shape of the store reference file.
type StoreUniverse struct {
	Stores []Store `yaml:"stores"`
}

// CustomerMaster is the on-disk shape of the customer reference file.
type CustomerMaster struct {
	Customers []Customer    `yaml:"customers"`
	Changes   []ChangeEvent `yaml:"changes"`
}

// LoadStores reads the store universe from a YAML file.
func LoadStores(path string) ([]Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store universe: %w", err)
	}

	var u StoreUniverse
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse store universe: %w", err)
	}
	if len(u.Stores) == 0 {
		return nil, fmt.Errorf("store universe %s contains no stores", path)
	}
	return u.Stores, nil
}

// LoadCustomerMaster reads the customer master from a YAML file.
func LoadCustomerMaster(path string) (*CustomerMaster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read customer master: %w", err)
	}

	var m CustomerMaster
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse customer master: %w", err)
	}
	if len(m.Customers) == 0 {
		return nil, fmt.Errorf("customer master %s contains no customers", path)
	}

	seen := make(map[string]bool, len(m.Changes))
	for _, ch := range m.Changes {
		if seen[ch.CustomerID] {
			return nil, fmt.Errorf("customer %s has more than one change event", ch.CustomerID)
		}
		seen[ch.CustomerID] = true
	}
	return &m, nil
}

// SaveStores writes the store universe as YAML.
func SaveStores(path string, stores []Store) error {
	data, err := yaml.Marshal(StoreUniverse{Stores: stores})
	if err != nil {
		return fmt.Errorf("failed to encode store universe: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store universe: %w", err)
	}
	return nil
}

// SaveCustomerMaster writes the customer master as YAML.
func SaveCustomerMaster(path string, m *CustomerMaster) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode customer master: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write customer master: %w", err)
	}
	return nil
}
