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
	"fmt"
	"sort"
	"strings"

	"github.com/retailpulse/goldflow/internal/refdata"
)

// cityStates is the retail footprint: every city the chain operates in
// and its state.
var cityStates = map[string]string{
	"Mumbai":    "Maharashtra",
	"Delhi":     "Delhi",
	"Bangalore": "Karnataka",
	"Chennai":   "Tamil Nadu",
	"Hyderabad": "Telangana",
	"Pune":      "Maharashtra",
	"Kolkata":   "West Bengal",
	"Ahmedabad": "Gujarat",
	"Jaipur":    "Rajasthan",
	"Lucknow":   "Uttar Pradesh",
}

const storesPerCity = 5

// catalogItem is one product in the synthetic catalog.
type catalogItem struct {
	ProductID   string
	ProductName string
	Category    string
	BasePrice   float64
}

// categorySpec bounds the unit prices of a category's products.
type categorySpec struct {
	name     string
	minPrice float64
	maxPrice float64
	products []string
}

var categorySpecs = []categorySpec{
	{"Electronics", 1500, 50000, []string{
		"Bluetooth Speaker", "Wireless Earbuds", "Power Bank 20000mAh",
		"Portable SSD 512GB", "Mechanical Keyboard", "Noise Cancelling Headphones",
		"Smart Plug WiFi", "Fitness Tracker",
	}},
	{"Clothing", 299, 5999, []string{
		"Cotton T-Shirt", "Slim Fit Jeans", "Kurta Set", "Hoodie Zip-Up",
		"Denim Jacket", "Winter Sweater", "Printed Kurti", "Formal Blazer",
	}},
	{"Groceries", 10, 999, []string{
		"Basmati Rice 5kg", "Toor Dal 1kg", "Sunflower Oil 1L", "Green Tea 100bags",
		"Honey Organic 500g", "Mixed Dry Fruits 500g", "Ghee 500ml", "Almonds 250g",
	}},
	{"Home & Kitchen", 149, 14999, []string{
		"Non-Stick Pan 24cm", "Pressure Cooker 5L", "Dinner Set 24pc",
		"Water Bottle Steel 1L", "Blender 750W", "Iron Steam 1200W",
	}},
	{"Beauty", 99, 4999, []string{
		"Face Wash Gel 100ml", "Sunscreen SPF 50 50ml", "Hair Oil Coconut 200ml",
		"Perfume EDT 100ml", "Facial Serum Vitamin C", "Lipstick Matte",
	}},
	{"Sports", 199, 9999, []string{
		"Yoga Mat 6mm", "Resistance Bands Set", "Cricket Bat English Willow",
		"Football Size 5", "Dumbbells 5kg Pair", "Swimming Goggles",
	}},
	{"Books", 99, 1999, []string{
		"Atomic Habits", "Sapiens", "The Alchemist", "Deep Work",
		"The Psychology of Money", "Wings of Fire APJ Kalam",
	}},
	{"Toys", 149, 3999, []string{
		"LEGO Classic 500pc", "Rubik's Cube 3x3", "Board Game Monopoly",
		"Jigsaw Puzzle 1000pc", "Remote Control Car", "Building Blocks 200pc",
	}},
}

// cities returns the footprint cities in a stable order.
func cities() []string {
	out := make([]string, 0, len(cityStates))
	for c := range cityStates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// buildStores derives the physical store universe: storesPerCity stores
// per footprint city with STR-<CITY>-<NN> identifiers.
func buildStores() []refdata.Store {
	var stores []refdata.Store
	for _, city := range cities() {
		prefix := strings.ToUpper(city[:3])
		for i := 1; i <= storesPerCity; i++ {
			stores = append(stores, refdata.Store{
				StoreID: fmt.Sprintf("STR-%s-%02d", prefix, i),
				City:    city,
				State:   cityStates[city],
			})
		}
	}
	return stores
}

// buildCatalog produces the synthetic product catalog with stable
// P-prefixed identifiers and a base price per product.
func buildCatalog(f *Faker) []catalogItem {
	var items []catalogItem
	pid := 1
	for _, spec := range categorySpecs {
		for _, name := range spec.products {
			items = append(items, catalogItem{
				ProductID:   fmt.Sprintf("P%04d", pid),
				ProductName: name,
				Category:    spec.name,
				BasePrice:   f.Float64(spec.minPrice, spec.maxPrice),
			})
			pid++
		}
	}
	return items
}
